// internal/models/software.go
package models

// Software is an antivirus product line (e.g. Norton, McAfee). Name is
// stored title-cased and is unique across the catalog.
//
// Applications reference software by foreign key only; there is no
// relationship field and no cascade rule. Child lookups and counts are
// explicit queries at read time.
type Software struct {
	BaseModel
	Name string `json:"name" gorm:"size:80;uniqueIndex;not null"`
	Logo string `json:"logo" gorm:"size:80;not null"`
}

func (Software) TableName() string { return "software" }
