// internal/repository/software.go
package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/softrack/avcatalog-backend/internal/models"
)

// Repositories are the only code that touches GORM. Absence is reported
// as gorm.ErrRecordNotFound, never as an empty slice; services translate
// it into the error taxonomy.

type SoftwareRepository interface {
	Insert(sw *models.Software) error
	FetchAll() ([]models.Software, error)
	FetchByID(id uint) (*models.Software, error)
	FetchByName(name string) (*models.Software, error)
	UpdateName(id uint, name string) error
	UpdateLogo(id uint, logo string) error
	DeleteByID(id uint) error
}

type softwareRepository struct {
	db *gorm.DB
}

func NewSoftwareRepository(db *gorm.DB) SoftwareRepository {
	return &softwareRepository{db: db}
}

func (r *softwareRepository) Insert(sw *models.Software) error {
	return r.db.Create(sw).Error
}

func (r *softwareRepository) FetchAll() ([]models.Software, error) {
	var software []models.Software
	if err := r.db.Order("id asc").Find(&software).Error; err != nil {
		return nil, err
	}
	return software, nil
}

func (r *softwareRepository) FetchByID(id uint) (*models.Software, error) {
	var sw models.Software
	if err := r.db.First(&sw, id).Error; err != nil {
		return nil, err
	}
	return &sw, nil
}

func (r *softwareRepository) FetchByName(name string) (*models.Software, error) {
	var sw models.Software
	if err := r.db.Where("name = ?", name).First(&sw).Error; err != nil {
		return nil, err
	}
	return &sw, nil
}

func (r *softwareRepository) UpdateName(id uint, name string) error {
	return r.db.Model(&models.Software{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "updated": time.Now()}).Error
}

func (r *softwareRepository) UpdateLogo(id uint, logo string) error {
	return r.db.Model(&models.Software{}).Where("id = ?", id).
		Updates(map[string]interface{}{"logo": logo, "updated": time.Now()}).Error
}

func (r *softwareRepository) DeleteByID(id uint) error {
	return r.db.Delete(&models.Software{}, id).Error
}
