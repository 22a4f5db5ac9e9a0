// internal/services/license_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/softrack/avcatalog-backend/internal/apperr"
	"github.com/softrack/avcatalog-backend/internal/models"
	"github.com/softrack/avcatalog-backend/internal/repository"
)

type LicenseService struct {
	licenses repository.LicenseRepository
	apps     repository.ApplicationRepository
}

func NewLicenseService(licenses repository.LicenseRepository, apps repository.ApplicationRepository) *LicenseService {
	return &LicenseService{licenses: licenses, apps: apps}
}

// LicenseView annotates a license with the current price of its parent
// application. The price is read at view time, never stored on the
// license row; an orphaned license reports a price of zero.
type LicenseView struct {
	models.License
	Price float64 `json:"price"`
}

type CreateLicenseRequest struct {
	ApplicationID uint   `json:"application_id" validate:"required"`
	Key           string `json:"key" validate:"required"`
}

func (s *LicenseService) List() ([]models.License, error) {
	licenses, err := s.licenses.FetchAll()
	if err != nil {
		return nil, apperr.Unexpected("Could not fetch licenses.", err)
	}
	if len(licenses) == 0 {
		return nil, apperr.NotFound("There are no licenses yet.")
	}
	return licenses, nil
}

func (s *LicenseService) ListByApplication(applicationID uint) ([]models.License, error) {
	licenses, err := s.licenses.FetchByApplicationID(applicationID)
	if err != nil {
		return nil, apperr.Unexpected("Could not fetch licenses.", err)
	}
	if len(licenses) == 0 {
		return nil, apperr.NotFound("These records do not exist.")
	}
	return licenses, nil
}

func (s *LicenseService) Get(id uint) (*LicenseView, error) {
	lic, err := s.licenses.FetchByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("This license does not exist.")
	}
	if err != nil {
		return nil, apperr.Unexpected("Could not fetch this license.", err)
	}

	view := &LicenseView{License: *lic}
	app, err := s.apps.FetchByID(lic.ApplicationID)
	if err == nil {
		view.Price = app.Price
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unexpected("Could not fetch this license.", err)
	}
	return view, nil
}

func (s *LicenseService) Create(req *CreateLicenseRequest) (*models.License, error) {
	if req.Key == "" {
		return nil, apperr.Validation("You never included a license key.")
	}

	if _, err := s.apps.FetchByID(req.ApplicationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("This antivirus application does not exist.")
		}
		return nil, apperr.Unexpected("Could not submit license.", err)
	}

	lic := &models.License{
		ApplicationID: req.ApplicationID,
		Key:           req.Key,
		Status:        models.LicenseStatusAvailable,
	}
	if err := s.licenses.Insert(lic); err != nil {
		return nil, apperr.Unexpected("Could not submit license.", err)
	}
	return lic, nil
}

func (s *LicenseService) UpdateKey(id uint, key string) (*models.License, error) {
	if key == "" {
		return nil, apperr.Validation("You never included a license key.")
	}

	if _, err := s.licenses.FetchByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("This record does not exist!")
		}
		return nil, apperr.Unexpected("Could not update this license.", err)
	}

	if err := s.licenses.UpdateKey(id, key); err != nil {
		return nil, apperr.Unexpected("Could not update this license.", err)
	}

	lic, err := s.licenses.FetchByID(id)
	if err != nil {
		return nil, apperr.Unexpected("Could not update this license.", err)
	}
	return lic, nil
}

// SetStatus routes every status change through the transition registry.
func (s *LicenseService) SetStatus(id uint, to models.LicenseStatus) (*models.License, error) {
	lic, err := s.licenses.FetchByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("This record does not exist!")
	}
	if err != nil {
		return nil, apperr.Unexpected("Could not update license status.", err)
	}

	next, err := models.StatusTransition{To: to}.Apply(lic.Status)
	if err != nil {
		return nil, apperr.Validation("That license status is not recognised.")
	}

	if err := s.licenses.UpdateStatus(id, next); err != nil {
		return nil, apperr.Unexpected("Could not update license status.", err)
	}

	lic, err = s.licenses.FetchByID(id)
	if err != nil {
		return nil, apperr.Unexpected("Could not update license status.", err)
	}
	return lic, nil
}

func (s *LicenseService) Delete(id uint) error {
	if _, err := s.licenses.FetchByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("This record does not exist!")
		}
		return apperr.Unexpected("Could not delete this license.", err)
	}

	if err := s.licenses.DeleteByID(id); err != nil {
		return apperr.Unexpected("Could not delete this license.", err)
	}
	return nil
}
