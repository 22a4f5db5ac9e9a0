// internal/repository/license.go
package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/softrack/avcatalog-backend/internal/models"
)

type LicenseRepository interface {
	Insert(lic *models.License) error
	FetchAll() ([]models.License, error)
	FetchByID(id uint) (*models.License, error)
	FetchByApplicationID(applicationID uint) ([]models.License, error)
	CountByApplicationID(applicationID uint) (int64, error)
	UpdateKey(id uint, key string) error
	UpdateStatus(id uint, status models.LicenseStatus) error
	DeleteByID(id uint) error
}

type licenseRepository struct {
	db *gorm.DB
}

func NewLicenseRepository(db *gorm.DB) LicenseRepository {
	return &licenseRepository{db: db}
}

func (r *licenseRepository) Insert(lic *models.License) error {
	return r.db.Create(lic).Error
}

func (r *licenseRepository) FetchAll() ([]models.License, error) {
	var licenses []models.License
	if err := r.db.Order("id asc").Find(&licenses).Error; err != nil {
		return nil, err
	}
	return licenses, nil
}

func (r *licenseRepository) FetchByID(id uint) (*models.License, error) {
	var lic models.License
	if err := r.db.First(&lic, id).Error; err != nil {
		return nil, err
	}
	return &lic, nil
}

func (r *licenseRepository) FetchByApplicationID(applicationID uint) ([]models.License, error) {
	var licenses []models.License
	if err := r.db.Where("application_id = ?", applicationID).Order("id asc").Find(&licenses).Error; err != nil {
		return nil, err
	}
	return licenses, nil
}

func (r *licenseRepository) CountByApplicationID(applicationID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.License{}).Where("application_id = ?", applicationID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *licenseRepository) UpdateKey(id uint, key string) error {
	return r.db.Model(&models.License{}).Where("id = ?", id).
		Updates(map[string]interface{}{"key": key, "updated": time.Now()}).Error
}

func (r *licenseRepository) UpdateStatus(id uint, status models.LicenseStatus) error {
	return r.db.Model(&models.License{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated": time.Now()}).Error
}

func (r *licenseRepository) DeleteByID(id uint) error {
	return r.db.Delete(&models.License{}, id).Error
}
