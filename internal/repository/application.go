// internal/repository/application.go
package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/softrack/avcatalog-backend/internal/models"
)

type ApplicationRepository interface {
	Insert(app *models.Application) error
	FetchAll() ([]models.Application, error)
	FetchByID(id uint) (*models.Application, error)
	FetchBySoftwareID(softwareID uint) ([]models.Application, error)
	CountBySoftwareID(softwareID uint) (int64, error)
	// Update overwrites only the fields present in updates; the updated
	// timestamp is stamped alongside.
	Update(id uint, updates map[string]interface{}) error
	UpdateLogo(id uint, logo string) error
	DeleteByID(id uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Insert(app *models.Application) error {
	return r.db.Create(app).Error
}

func (r *applicationRepository) FetchAll() ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Order("id asc").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) FetchByID(id uint) (*models.Application, error) {
	var app models.Application
	if err := r.db.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FetchBySoftwareID(softwareID uint) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("software_id = ?", softwareID).Order("id asc").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) CountBySoftwareID(softwareID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Application{}).Where("software_id = ?", softwareID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *applicationRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated"] = time.Now()
	return r.db.Model(&models.Application{}).Where("id = ?", id).Updates(updates).Error
}

func (r *applicationRepository) UpdateLogo(id uint, logo string) error {
	return r.db.Model(&models.Application{}).Where("id = ?", id).
		Updates(map[string]interface{}{"logo": logo, "updated": time.Now()}).Error
}

func (r *applicationRepository) DeleteByID(id uint) error {
	return r.db.Delete(&models.Application{}, id).Error
}
