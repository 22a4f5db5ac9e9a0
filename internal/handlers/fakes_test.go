// internal/handlers/fakes_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/softrack/avcatalog-backend/internal/middleware"
	"github.com/softrack/avcatalog-backend/internal/models"
	"github.com/softrack/avcatalog-backend/internal/services"
	"github.com/softrack/avcatalog-backend/internal/utils"
)

// In-memory repository doubles. They reproduce the contract the real
// repositories hold: absence is gorm.ErrRecordNotFound, list reads come
// back ordered by id, and updates stamp the Updated column.

type fakeSoftwareRepo struct {
	rows   map[uint]models.Software
	nextID uint
}

func newFakeSoftwareRepo() *fakeSoftwareRepo {
	return &fakeSoftwareRepo{rows: make(map[uint]models.Software), nextID: 1}
}

func (r *fakeSoftwareRepo) Insert(sw *models.Software) error {
	sw.ID = r.nextID
	sw.Created = time.Now()
	r.nextID++
	r.rows[sw.ID] = *sw
	return nil
}

func (r *fakeSoftwareRepo) FetchAll() ([]models.Software, error) {
	out := make([]models.Software, 0, len(r.rows))
	for _, sw := range r.rows {
		out = append(out, sw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSoftwareRepo) FetchByID(id uint) (*models.Software, error) {
	sw, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sw, nil
}

func (r *fakeSoftwareRepo) FetchByName(name string) (*models.Software, error) {
	for _, sw := range r.rows {
		if sw.Name == name {
			return &sw, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSoftwareRepo) UpdateName(id uint, name string) error {
	sw := r.rows[id]
	sw.Name = name
	now := time.Now()
	sw.Updated = &now
	r.rows[id] = sw
	return nil
}

func (r *fakeSoftwareRepo) UpdateLogo(id uint, logo string) error {
	sw := r.rows[id]
	sw.Logo = logo
	now := time.Now()
	sw.Updated = &now
	r.rows[id] = sw
	return nil
}

func (r *fakeSoftwareRepo) DeleteByID(id uint) error {
	delete(r.rows, id)
	return nil
}

type fakeApplicationRepo struct {
	rows   map[uint]models.Application
	nextID uint
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{rows: make(map[uint]models.Application), nextID: 1}
}

func (r *fakeApplicationRepo) Insert(app *models.Application) error {
	app.ID = r.nextID
	app.Created = time.Now()
	r.nextID++
	r.rows[app.ID] = *app
	return nil
}

func (r *fakeApplicationRepo) FetchAll() ([]models.Application, error) {
	out := make([]models.Application, 0, len(r.rows))
	for _, app := range r.rows {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeApplicationRepo) FetchByID(id uint) (*models.Application, error) {
	app, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &app, nil
}

func (r *fakeApplicationRepo) FetchBySoftwareID(softwareID uint) ([]models.Application, error) {
	var out []models.Application
	for _, app := range r.rows {
		if app.SoftwareID == softwareID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeApplicationRepo) CountBySoftwareID(softwareID uint) (int64, error) {
	apps, _ := r.FetchBySoftwareID(softwareID)
	return int64(len(apps)), nil
}

func (r *fakeApplicationRepo) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	app := r.rows[id]
	if v, ok := updates["description"]; ok {
		app.Description = v.(string)
	}
	if v, ok := updates["price"]; ok {
		app.Price = v.(float64)
	}
	if v, ok := updates["download_link"]; ok {
		app.DownloadLink = v.(string)
	}
	now := time.Now()
	app.Updated = &now
	r.rows[id] = app
	return nil
}

func (r *fakeApplicationRepo) UpdateLogo(id uint, logo string) error {
	app := r.rows[id]
	app.Logo = logo
	now := time.Now()
	app.Updated = &now
	r.rows[id] = app
	return nil
}

func (r *fakeApplicationRepo) DeleteByID(id uint) error {
	delete(r.rows, id)
	return nil
}

type fakeLicenseRepo struct {
	rows   map[uint]models.License
	nextID uint
}

func newFakeLicenseRepo() *fakeLicenseRepo {
	return &fakeLicenseRepo{rows: make(map[uint]models.License), nextID: 1}
}

func (r *fakeLicenseRepo) Insert(lic *models.License) error {
	lic.ID = r.nextID
	lic.Created = time.Now()
	r.nextID++
	r.rows[lic.ID] = *lic
	return nil
}

func (r *fakeLicenseRepo) FetchAll() ([]models.License, error) {
	out := make([]models.License, 0, len(r.rows))
	for _, lic := range r.rows {
		out = append(out, lic)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeLicenseRepo) FetchByID(id uint) (*models.License, error) {
	lic, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &lic, nil
}

func (r *fakeLicenseRepo) FetchByApplicationID(applicationID uint) ([]models.License, error) {
	var out []models.License
	for _, lic := range r.rows {
		if lic.ApplicationID == applicationID {
			out = append(out, lic)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeLicenseRepo) CountByApplicationID(applicationID uint) (int64, error) {
	licenses, _ := r.FetchByApplicationID(applicationID)
	return int64(len(licenses)), nil
}

func (r *fakeLicenseRepo) UpdateKey(id uint, key string) error {
	lic := r.rows[id]
	lic.Key = key
	now := time.Now()
	lic.Updated = &now
	r.rows[id] = lic
	return nil
}

func (r *fakeLicenseRepo) UpdateStatus(id uint, status models.LicenseStatus) error {
	lic := r.rows[id]
	lic.Status = status
	now := time.Now()
	lic.Updated = &now
	r.rows[id] = lic
	return nil
}

func (r *fakeLicenseRepo) DeleteByID(id uint) error {
	delete(r.rows, id)
	return nil
}

// fakeFileStore keeps stored logos in memory.
type fakeFileStore struct {
	stored map[string][]byte
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{stored: make(map[string][]byte)}
}

func (f *fakeFileStore) AllowedExtension(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	switch strings.ToLower(filename[i+1:]) {
	case "png", "jpg", "jpeg", "gif", "svg":
		return true
	}
	return false
}

func (f *fakeFileStore) Sanitize(filename string) string {
	return strings.ReplaceAll(filename, " ", "_")
}

func (f *fakeFileStore) Store(data []byte, name string) error {
	f.stored[name] = data
	return nil
}

type auditCall struct {
	Method      string
	Description string
}

type fakeAudit struct {
	calls []auditCall
}

func (f *fakeAudit) Record(authorization, method, description string) {
	f.calls = append(f.calls, auditCall{Method: method, Description: description})
}

// testEnv wires fakes behind the real handlers and route table.
type testEnv struct {
	router   *gin.Engine
	software *fakeSoftwareRepo
	apps     *fakeApplicationRepo
	licenses *fakeLicenseRepo
	store    *fakeFileStore
	audit    *fakeAudit
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	env := &testEnv{
		software: newFakeSoftwareRepo(),
		apps:     newFakeApplicationRepo(),
		licenses: newFakeLicenseRepo(),
		store:    newFakeFileStore(),
		audit:    &fakeAudit{},
	}

	softwareService := services.NewSoftwareService(env.software, env.apps, env.licenses, env.store)
	appService := services.NewApplicationService(env.apps, env.software, env.licenses, env.store)
	licenseService := services.NewLicenseService(env.licenses, env.apps)

	softwareHandler := NewSoftwareHandler(softwareService, env.audit)
	appHandler := NewApplicationHandler(appService, env.audit)
	licenseHandler := NewLicenseHandler(licenseService, env.audit)

	r := gin.New()

	software := r.Group("/software")
	{
		software.GET("", softwareHandler.List)
		software.GET("/:id", softwareHandler.Get)
		software.POST("", middleware.AuthRequired(), middleware.AdminRequired(), softwareHandler.Create)
		software.PUT("/:id", middleware.AuthRequired(), middleware.AdminRequired(), softwareHandler.Update)
		software.PUT("/logo/:id", middleware.AuthRequired(), middleware.AdminRequired(), softwareHandler.UpdateLogo)
		software.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), softwareHandler.Delete)
	}

	application := r.Group("/application")
	{
		application.GET("", middleware.OptionalAuth(), appHandler.List)
		application.GET("/:id", appHandler.Get)
		application.GET("/software/:id", appHandler.ListBySoftware)
		application.POST("", middleware.AuthRequired(), middleware.AdminRequired(), appHandler.Create)
		application.PUT("/:id", middleware.AuthRequired(), middleware.AdminRequired(), appHandler.Update)
		application.PUT("/logo/:id", middleware.AuthRequired(), middleware.AdminRequired(), appHandler.UpdateLogo)
		application.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), appHandler.Delete)
	}

	license := r.Group("/license")
	{
		license.GET("", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.List)
		license.GET("/:id", middleware.AuthRequired(), licenseHandler.Get)
		license.GET("/application/:id", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.ListByApplication)
		license.POST("", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.Create)
		license.PUT("/:id", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.Update)
		license.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.Delete)
		license.PUT("/sell/:id", middleware.AuthRequired(), licenseHandler.Sell)
		license.PUT("/credit/:id", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.Credit)
		license.PUT("/avail/:id", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.Avail)
	}

	env.router = r
	return env
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken("1", "admin", true, 1)
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken("2", "customer", false, 1)
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return env.do(t, method, path, token, bytes.NewReader(data), "application/json")
}

// multipartBody builds a form with the given fields and one optional
// file part named "logo".
func multipartBody(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("logo", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error envelope, got %s", w.Body.String())
	msg, _ := errObj["message"].(string)
	return msg
}
