// internal/models/application.go
package models

// Application is a concrete offering of a Software product: a described,
// priced, downloadable package. SoftwareID must resolve to an existing
// Software at creation time; the check is a lookup before insert, not a
// database constraint.
type Application struct {
	BaseModel
	SoftwareID   uint    `json:"software_id" gorm:"not null;index"`
	Description  string  `json:"description" gorm:"type:text;not null"`
	Logo         string  `json:"logo" gorm:"size:80;not null"`
	Price        float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	DownloadLink string  `json:"download_link" gorm:"type:text;not null"`
}

func (Application) TableName() string { return "applications" }
