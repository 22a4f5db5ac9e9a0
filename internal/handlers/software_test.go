// internal/handlers/software_test.go
package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SoftwareHandlerSuite struct {
	suite.Suite
	env *testEnv
}

func (s *SoftwareHandlerSuite) SetupTest() {
	s.env = newTestEnv()
}

func (s *SoftwareHandlerSuite) createSoftware(name, filename string) {
	body, contentType := multipartBody(s.T(), map[string]string{"name": name}, filename)
	w := s.env.do(s.T(), http.MethodPost, "/software", adminToken(s.T()), body, contentType)
	s.Require().Equal(http.StatusCreated, w.Code)
}

func (s *SoftwareHandlerSuite) TestCreateTitleCasesName() {
	body, contentType := multipartBody(s.T(), map[string]string{"name": "norton"}, "norton.png")
	w := s.env.do(s.T(), http.MethodPost, "/software", adminToken(s.T()), body, contentType)

	s.Equal(http.StatusCreated, w.Code)

	data := decodeBody(s.T(), w)["data"].(map[string]interface{})
	s.Equal("Norton", data["name"])
	s.Equal("norton.png", data["logo"])
	s.Nil(data["updated"])

	s.Contains(s.env.store.stored, "norton.png")
	s.Require().Len(s.env.audit.calls, 1)
	s.Equal("post", s.env.audit.calls[0].Method)
	s.Equal("Added software Norton", s.env.audit.calls[0].Description)
}

func (s *SoftwareHandlerSuite) TestCreateRejectsCaseVariantDuplicate() {
	body, contentType := multipartBody(s.T(), map[string]string{"name": "Norton"}, "norton.png")
	w := s.env.do(s.T(), http.MethodPost, "/software", adminToken(s.T()), body, contentType)
	s.Require().Equal(http.StatusCreated, w.Code)

	body, contentType = multipartBody(s.T(), map[string]string{"name": "NORTON"}, "other.png")
	w = s.env.do(s.T(), http.MethodPost, "/software", adminToken(s.T()), body, contentType)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("This software already exists!", errorMessage(s.T(), w))
}

func (s *SoftwareHandlerSuite) TestCreateRequiresName() {
	body, contentType := multipartBody(s.T(), map[string]string{}, "logo.png")
	w := s.env.do(s.T(), http.MethodPost, "/software", adminToken(s.T()), body, contentType)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("You never included a name.", errorMessage(s.T(), w))
}

func (s *SoftwareHandlerSuite) TestCreateRequiresLogo() {
	body, contentType := multipartBody(s.T(), map[string]string{"name": "Norton"}, "")
	w := s.env.do(s.T(), http.MethodPost, "/software", adminToken(s.T()), body, contentType)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("No logo was found.", errorMessage(s.T(), w))
}

func (s *SoftwareHandlerSuite) TestCreateRejectsUnknownExtension() {
	body, contentType := multipartBody(s.T(), map[string]string{"name": "Norton"}, "payload.exe")
	w := s.env.do(s.T(), http.MethodPost, "/software", adminToken(s.T()), body, contentType)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("The logo you uploaded is not recognised.", errorMessage(s.T(), w))
}

func (s *SoftwareHandlerSuite) TestCreateForbiddenWithoutToken() {
	body, contentType := multipartBody(s.T(), map[string]string{"name": "Norton"}, "norton.png")
	w := s.env.do(s.T(), http.MethodPost, "/software", "", body, contentType)

	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("You are not authorised to access this resource!", errorMessage(s.T(), w))
}

func (s *SoftwareHandlerSuite) TestCreateForbiddenForNonAdmin() {
	body, contentType := multipartBody(s.T(), map[string]string{"name": "Norton"}, "norton.png")
	w := s.env.do(s.T(), http.MethodPost, "/software", userToken(s.T()), body, contentType)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *SoftwareHandlerSuite) TestListEmptyIsNotFound() {
	w := s.env.do(s.T(), http.MethodGet, "/software", "", nil, "")

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("There are no antivirus software yet.", errorMessage(s.T(), w))
}

func (s *SoftwareHandlerSuite) TestListIncludesApplicationCounts() {
	s.createSoftware("Norton", "norton.png")

	body, contentType := multipartBody(s.T(), map[string]string{
		"software_id":   "1",
		"description":   "Norton 360 Deluxe",
		"price":         "49.99",
		"download_link": "https://example.com/norton360",
	}, "deluxe.png")
	w := s.env.do(s.T(), http.MethodPost, "/application", adminToken(s.T()), body, contentType)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.env.do(s.T(), http.MethodGet, "/software", "", nil, "")
	s.Equal(http.StatusOK, w.Code)

	data := decodeBody(s.T(), w)["data"].([]interface{})
	s.Require().Len(data, 1)

	sw := data[0].(map[string]interface{})
	s.Equal(float64(1), sw["application_count"])
	apps := sw["applications"].([]interface{})
	s.Require().Len(apps, 1)
	s.Equal(float64(0), apps[0].(map[string]interface{})["licenses"])
}

func (s *SoftwareHandlerSuite) TestGetUnknownID() {
	w := s.env.do(s.T(), http.MethodGet, "/software/99", "", nil, "")

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("This software does not exist!", errorMessage(s.T(), w))
}

func (s *SoftwareHandlerSuite) TestUpdateRenames() {
	s.createSoftware("Norton", "norton.png")

	w := s.env.doJSON(s.T(), http.MethodPut, "/software/1", adminToken(s.T()),
		map[string]string{"name": "norton security"})

	s.Equal(http.StatusOK, w.Code)
	data := decodeBody(s.T(), w)["data"].(map[string]interface{})
	s.Equal("Norton Security", data["name"])
	s.NotNil(data["updated"])
}

func (s *SoftwareHandlerSuite) TestUpdateToOwnNameIsAllowed() {
	s.createSoftware("Norton", "norton.png")

	w := s.env.doJSON(s.T(), http.MethodPut, "/software/1", adminToken(s.T()),
		map[string]string{"name": "norton"})

	s.Equal(http.StatusOK, w.Code)
}

func (s *SoftwareHandlerSuite) TestUpdateToTakenNameRejected() {
	s.createSoftware("Norton", "norton.png")
	s.createSoftware("Kaspersky", "kaspersky.png")

	w := s.env.doJSON(s.T(), http.MethodPut, "/software/2", adminToken(s.T()),
		map[string]string{"name": "Norton"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("This record already exists in the database!", errorMessage(s.T(), w))
}

func (s *SoftwareHandlerSuite) TestUpdateLogoStoresNewFile() {
	s.createSoftware("Norton", "norton.png")

	body, contentType := multipartBody(s.T(), map[string]string{}, "new logo.png")
	w := s.env.do(s.T(), http.MethodPut, "/software/logo/1", adminToken(s.T()), body, contentType)

	s.Equal(http.StatusOK, w.Code)
	data := decodeBody(s.T(), w)["data"].(map[string]interface{})
	s.Equal("new_logo.png", data["logo"])
	s.Contains(s.env.store.stored, "new_logo.png")
}

func (s *SoftwareHandlerSuite) TestDeleteLeavesApplicationsInPlace() {
	s.createSoftware("Norton", "norton.png")

	body, contentType := multipartBody(s.T(), map[string]string{
		"software_id":   "1",
		"description":   "Norton 360 Deluxe",
		"price":         "49.99",
		"download_link": "https://example.com/norton360",
	}, "deluxe.png")
	w := s.env.do(s.T(), http.MethodPost, "/application", adminToken(s.T()), body, contentType)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.env.do(s.T(), http.MethodDelete, "/software/1", adminToken(s.T()), nil, "")
	s.Equal(http.StatusOK, w.Code)

	_, err := s.env.software.FetchByID(1)
	s.Error(err)

	apps, err := s.env.apps.FetchBySoftwareID(1)
	s.NoError(err)
	s.Len(apps, 1)
}

func (s *SoftwareHandlerSuite) TestDeleteUnknownID() {
	w := s.env.do(s.T(), http.MethodDelete, "/software/42", adminToken(s.T()), nil, "")

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("This record does not exist!", errorMessage(s.T(), w))
}

func TestSoftwareHandlerSuite(t *testing.T) {
	suite.Run(t, new(SoftwareHandlerSuite))
}
