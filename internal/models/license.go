// internal/models/license.go
package models

import "fmt"

type LicenseStatus string

const (
	LicenseStatusAvailable LicenseStatus = "available"
	LicenseStatusOnCredit  LicenseStatus = "on_credit"
	LicenseStatusSold      LicenseStatus = "sold"
)

func (s LicenseStatus) Valid() bool {
	switch s {
	case LicenseStatusAvailable, LicenseStatusOnCredit, LicenseStatusSold:
		return true
	}
	return false
}

// License is a sellable key for one Application. ApplicationID must
// resolve to an existing Application at creation time.
type License struct {
	BaseModel
	ApplicationID uint          `json:"application_id" gorm:"not null;index"`
	Key           string        `json:"key" gorm:"size:80;not null"`
	Status        LicenseStatus `json:"status" gorm:"type:varchar(25);default:'available';not null"`
}

func (License) TableName() string { return "licenses" }

// StatusTransition is the single point every status change passes
// through. The registry deliberately exposes raw setters: any target
// status may be applied from any current status, and re-applying the
// current status succeeds silently. Legality of a transition (was this
// license actually sold? to whom?) is owned by the external sales-record
// service, which is consulted by callers, not by the registry.
type StatusTransition struct {
	To LicenseStatus
}

// Apply returns the status the license should hold after the transition.
// It rejects unknown target statuses and nothing else.
func (t StatusTransition) Apply(current LicenseStatus) (LicenseStatus, error) {
	if !t.To.Valid() {
		return current, fmt.Errorf("unknown license status %q", t.To)
	}
	return t.To, nil
}
