// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields. Updated stays NULL until the first
// mutation, so repositories stamp it explicitly instead of relying on
// GORM's autoUpdateTime (which would also stamp creation).
type BaseModel struct {
	ID      uint       `json:"id" gorm:"primaryKey"`
	Created time.Time  `json:"created" gorm:"autoCreateTime;not null"`
	Updated *time.Time `json:"updated,omitempty"`
}
