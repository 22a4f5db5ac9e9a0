// internal/services/software_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/softrack/avcatalog-backend/internal/apperr"
	"github.com/softrack/avcatalog-backend/internal/models"
	"github.com/softrack/avcatalog-backend/internal/repository"
	"github.com/softrack/avcatalog-backend/internal/utils"
)

type SoftwareService struct {
	software repository.SoftwareRepository
	apps     repository.ApplicationRepository
	licenses repository.LicenseRepository
	store    FileStore
}

func NewSoftwareService(software repository.SoftwareRepository, apps repository.ApplicationRepository, licenses repository.LicenseRepository, store FileStore) *SoftwareService {
	return &SoftwareService{
		software: software,
		apps:     apps,
		licenses: licenses,
		store:    store,
	}
}

// SoftwareView annotates a software record with its derived application
// count; nested applications carry their license count. Counts come from
// aggregation queries at assembly time, never from loaded object graphs.
type SoftwareView struct {
	models.Software
	ApplicationCount int64             `json:"application_count"`
	Applications     []ApplicationView `json:"applications"`
}

// ApplicationView projects an application's license collection down to a
// count.
type ApplicationView struct {
	models.Application
	Licenses int64 `json:"licenses"`
}

type CreateSoftwareRequest struct {
	Name string
	Logo Upload
}

func (s *SoftwareService) List() ([]SoftwareView, error) {
	software, err := s.software.FetchAll()
	if err != nil {
		return nil, apperr.Unexpected("Could not retrieve any software.", err)
	}
	// Zero records is absence, not an empty list.
	if len(software) == 0 {
		return nil, apperr.NotFound("There are no antivirus software yet.")
	}

	views := make([]SoftwareView, 0, len(software))
	for _, sw := range software {
		view, err := s.buildView(sw)
		if err != nil {
			return nil, apperr.Unexpected("Could not retrieve any software.", err)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *SoftwareService) Get(id uint) (*SoftwareView, error) {
	sw, err := s.software.FetchByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("This software does not exist!")
	}
	if err != nil {
		return nil, apperr.Unexpected("Could not retrieve this software.", err)
	}

	view, err := s.buildView(*sw)
	if err != nil {
		return nil, apperr.Unexpected("Could not retrieve this software.", err)
	}
	return &view, nil
}

func (s *SoftwareService) Create(req *CreateSoftwareRequest) (*models.Software, error) {
	name := utils.TitleCase(req.Name)
	if name == "" {
		return nil, apperr.Validation("You never included a name.")
	}

	_, err := s.software.FetchByName(name)
	if err == nil {
		return nil, apperr.Validation("This software already exists!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unexpected("Could not submit software.", err)
	}

	logo, err := storeLogo(s.store, req.Logo)
	if err != nil {
		return nil, err
	}

	sw := &models.Software{Name: name, Logo: logo}
	if err := s.software.Insert(sw); err != nil {
		return nil, apperr.Unexpected("Could not submit software.", err)
	}
	return sw, nil
}

func (s *SoftwareService) UpdateName(id uint, name string) (*models.Software, error) {
	name = utils.TitleCase(name)
	if name == "" {
		return nil, apperr.Validation("You never included a name.")
	}

	if _, err := s.software.FetchByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("This record does not exist!")
		}
		return nil, apperr.Unexpected("Could not update this software.", err)
	}

	// A collision with the record's own id is not an error.
	byName, err := s.software.FetchByName(name)
	if err == nil && byName.ID != id {
		return nil, apperr.Validation("This record already exists in the database!")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unexpected("Could not update this software.", err)
	}

	if err := s.software.UpdateName(id, name); err != nil {
		return nil, apperr.Unexpected("Could not update this software.", err)
	}

	sw, err := s.software.FetchByID(id)
	if err != nil {
		return nil, apperr.Unexpected("Could not update this software.", err)
	}
	return sw, nil
}

func (s *SoftwareService) UpdateLogo(id uint, upload Upload) (*models.Software, error) {
	if _, err := s.software.FetchByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("This record does not exist!")
		}
		return nil, apperr.Unexpected("Could not update software logo.", err)
	}

	logo, err := storeLogo(s.store, upload)
	if err != nil {
		return nil, err
	}

	if err := s.software.UpdateLogo(id, logo); err != nil {
		return nil, apperr.Unexpected("Could not update software logo.", err)
	}

	sw, err := s.software.FetchByID(id)
	if err != nil {
		return nil, apperr.Unexpected("Could not update software logo.", err)
	}
	return sw, nil
}

// Delete removes only the software row. Owned applications are left in
// place; no cascade rule is defined.
func (s *SoftwareService) Delete(id uint) error {
	if _, err := s.software.FetchByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("This record does not exist!")
		}
		return apperr.Unexpected("Could not delete this software.", err)
	}

	if err := s.software.DeleteByID(id); err != nil {
		return apperr.Unexpected("Could not delete this software.", err)
	}
	return nil
}

func (s *SoftwareService) buildView(sw models.Software) (SoftwareView, error) {
	appCount, err := s.apps.CountBySoftwareID(sw.ID)
	if err != nil {
		return SoftwareView{}, err
	}

	apps, err := s.apps.FetchBySoftwareID(sw.ID)
	if err != nil {
		return SoftwareView{}, err
	}

	appViews := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		count, err := s.licenses.CountByApplicationID(app.ID)
		if err != nil {
			return SoftwareView{}, err
		}
		appViews = append(appViews, ApplicationView{Application: app, Licenses: count})
	}

	return SoftwareView{
		Software:         sw,
		ApplicationCount: appCount,
		Applications:     appViews,
	}, nil
}
