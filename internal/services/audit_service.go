// internal/services/audit_service.go
package services

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/softrack/avcatalog-backend/internal/config"
)

// AuditRecorder forwards the caller's bearer credential together with a
// method tag and a human-readable description to the external user-log
// service. The call is fire-and-forget: failures are logged and swallowed
// and must never affect the outcome of the mutation that triggered them.
type AuditRecorder interface {
	Record(authorization, method, description string)
}

type AuditService struct {
	url    string
	client *http.Client
}

func NewAuditService(cfg *config.Config) *AuditService {
	return &AuditService{
		url:    cfg.Audit.ServiceURL,
		client: &http.Client{},
	}
}

type auditEntry struct {
	EventID     string `json:"event_id"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

func (s *AuditService) Record(authorization, method, description string) {
	if s.url == "" {
		return
	}

	payload, err := json.Marshal(auditEntry{
		EventID:     uuid.NewString(),
		Method:      method,
		Description: description,
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to encode audit entry")
		return
	}

	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Failed to build audit request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("method", method).Error("Audit log call failed")
		return
	}
	resp.Body.Close()
}
