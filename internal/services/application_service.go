// internal/services/application_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/softrack/avcatalog-backend/internal/apperr"
	"github.com/softrack/avcatalog-backend/internal/models"
	"github.com/softrack/avcatalog-backend/internal/repository"
	"github.com/softrack/avcatalog-backend/internal/utils"
)

type ApplicationService struct {
	apps     repository.ApplicationRepository
	software repository.SoftwareRepository
	licenses repository.LicenseRepository
	store    FileStore
}

func NewApplicationService(apps repository.ApplicationRepository, software repository.SoftwareRepository, licenses repository.LicenseRepository, store FileStore) *ApplicationService {
	return &ApplicationService{
		apps:     apps,
		software: software,
		licenses: licenses,
		store:    store,
	}
}

// AdminApplicationView carries the raw license list instead of the public
// count projection.
type AdminApplicationView struct {
	models.Application
	Licenses []models.License `json:"licenses"`
}

type CreateApplicationRequest struct {
	SoftwareID   uint
	Description  string
	Price        float64
	DownloadLink string
	Logo         Upload
}

type UpdateApplicationRequest struct {
	Description  *string  `json:"description" validate:"omitempty,min=1"`
	Price        *float64 `json:"price" validate:"omitempty,min=0"`
	DownloadLink *string  `json:"download_link" validate:"omitempty,min=1"`
}

func (s *ApplicationService) List() ([]ApplicationView, error) {
	apps, err := s.apps.FetchAll()
	if err != nil {
		return nil, apperr.Unexpected("Could not retrieve any applications.", err)
	}
	if len(apps) == 0 {
		return nil, apperr.NotFound("There are no antivirus applications yet.")
	}

	views := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		count, err := s.licenses.CountByApplicationID(app.ID)
		if err != nil {
			return nil, apperr.Unexpected("Could not retrieve any applications.", err)
		}
		views = append(views, ApplicationView{Application: app, Licenses: count})
	}
	return views, nil
}

// ListWithLicenses is the admin projection of List: each application
// carries its raw license list rather than a count.
func (s *ApplicationService) ListWithLicenses() ([]AdminApplicationView, error) {
	apps, err := s.apps.FetchAll()
	if err != nil {
		return nil, apperr.Unexpected("Could not retrieve any applications.", err)
	}
	if len(apps) == 0 {
		return nil, apperr.NotFound("There are no antivirus applications yet.")
	}

	views := make([]AdminApplicationView, 0, len(apps))
	for _, app := range apps {
		licenses, err := s.licenses.FetchByApplicationID(app.ID)
		if err != nil {
			return nil, apperr.Unexpected("Could not retrieve any applications.", err)
		}
		views = append(views, AdminApplicationView{Application: app, Licenses: licenses})
	}
	return views, nil
}

func (s *ApplicationService) ListBySoftware(softwareID uint) ([]models.Application, error) {
	apps, err := s.apps.FetchBySoftwareID(softwareID)
	if err != nil {
		return nil, apperr.Unexpected("Could not retrieve applications.", err)
	}
	if len(apps) == 0 {
		return nil, apperr.NotFound("These records do not exist.")
	}
	return apps, nil
}

func (s *ApplicationService) Get(id uint) (*ApplicationView, error) {
	app, err := s.apps.FetchByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("This antivirus application does not exist.")
	}
	if err != nil {
		return nil, apperr.Unexpected("Could not retrieve application.", err)
	}

	count, err := s.licenses.CountByApplicationID(id)
	if err != nil {
		return nil, apperr.Unexpected("Could not retrieve application.", err)
	}

	return &ApplicationView{Application: *app, Licenses: count}, nil
}

func (s *ApplicationService) Create(req *CreateApplicationRequest) (*models.Application, error) {
	description := utils.TitleCase(req.Description)
	if description == "" {
		return nil, apperr.Validation("You never included a description.")
	}
	if req.DownloadLink == "" {
		return nil, apperr.Validation("You never included a download link.")
	}
	if req.Price < 0 {
		return nil, apperr.Validation("Price cannot be negative.")
	}

	// A dangling parent reference is a validation failure, not a 404:
	// the application itself is the resource being created.
	if _, err := s.software.FetchByID(req.SoftwareID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("The specified software does not exist for this application!")
		}
		return nil, apperr.Unexpected("Could not submit application.", err)
	}

	logo, err := storeLogo(s.store, req.Logo)
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		SoftwareID:   req.SoftwareID,
		Description:  description,
		Logo:         logo,
		Price:        req.Price,
		DownloadLink: req.DownloadLink,
	}
	if err := s.apps.Insert(app); err != nil {
		return nil, apperr.Unexpected("Could not submit application.", err)
	}
	return app, nil
}

// Update overwrites only the fields present in the request.
func (s *ApplicationService) Update(id uint, req *UpdateApplicationRequest) (*models.Application, error) {
	updates := make(map[string]interface{})
	if req.Description != nil {
		description := utils.TitleCase(*req.Description)
		if description == "" {
			return nil, apperr.Validation("You never included a description.")
		}
		updates["description"] = description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperr.Validation("Price cannot be negative.")
		}
		updates["price"] = *req.Price
	}
	if req.DownloadLink != nil {
		if *req.DownloadLink == "" {
			return nil, apperr.Validation("You never included a download link.")
		}
		updates["download_link"] = *req.DownloadLink
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("No input data detected!")
	}

	if _, err := s.apps.FetchByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("This record does not exist.")
		}
		return nil, apperr.Unexpected("Could not update application.", err)
	}

	if err := s.apps.Update(id, updates); err != nil {
		return nil, apperr.Unexpected("Could not update application.", err)
	}

	app, err := s.apps.FetchByID(id)
	if err != nil {
		return nil, apperr.Unexpected("Could not update application.", err)
	}
	return app, nil
}

func (s *ApplicationService) UpdateLogo(id uint, upload Upload) (*models.Application, error) {
	if _, err := s.apps.FetchByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("This record does not exist!")
		}
		return nil, apperr.Unexpected("Could not update application logo.", err)
	}

	logo, err := storeLogo(s.store, upload)
	if err != nil {
		return nil, err
	}

	if err := s.apps.UpdateLogo(id, logo); err != nil {
		return nil, apperr.Unexpected("Could not update application logo.", err)
	}

	app, err := s.apps.FetchByID(id)
	if err != nil {
		return nil, apperr.Unexpected("Could not update application logo.", err)
	}
	return app, nil
}

// Delete removes only the application row; owned licenses are left in
// place (no cascade).
func (s *ApplicationService) Delete(id uint) error {
	if _, err := s.apps.FetchByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("This record does not exist!")
		}
		return apperr.Unexpected("Could not delete this application.", err)
	}

	if err := s.apps.DeleteByID(id); err != nil {
		return apperr.Unexpected("Could not delete this application.", err)
	}
	return nil
}
