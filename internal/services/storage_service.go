// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/softrack/avcatalog-backend/internal/apperr"
	"github.com/softrack/avcatalog-backend/internal/config"
)

// Upload carries a client-submitted file through validation and storage.
type Upload struct {
	Filename string
	Data     []byte
}

// FileStore validates and persists uploaded logos. Stored names derive
// from the sanitized client filename, so re-uploading the same name
// overwrites the previous file.
type FileStore interface {
	AllowedExtension(filename string) bool
	Sanitize(filename string) string
	Store(data []byte, name string) error
}

type StorageService struct {
	cfg      *config.Config
	s3Client *s3.S3 // nil in local mode
	allowed  map[string]struct{}
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	allowed := make(map[string]struct{}, len(cfg.Upload.AllowedExtensions))
	for _, ext := range cfg.Upload.AllowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	svc := &StorageService{cfg: cfg, allowed: allowed}

	if cfg.AWS.AccessKeyID == "" {
		// Local uploads directory for development
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

func (s *StorageService) AllowedExtension(filename string) bool {
	if !strings.Contains(filename, ".") {
		return false
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	_, ok := s.allowed[ext]
	return ok
}

// Sanitize reduces a client filename to a safe flat name: path components
// stripped, spaces collapsed to underscores, anything outside
// [A-Za-z0-9._-] dropped, leading/trailing dots and underscores trimmed.
func (s *StorageService) Sanitize(filename string) string {
	name := strings.ReplaceAll(filename, "\\", "/")
	name = path.Base(name)
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "._")
}

func (s *StorageService) Store(data []byte, name string) error {
	if name == "" {
		return fmt.Errorf("empty filename after sanitizing")
	}

	if s.s3Client != nil {
		return s.storeToS3(data, name)
	}

	if err := os.MkdirAll(s.cfg.Upload.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.cfg.Upload.Dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write upload: %w", err)
	}

	return nil
}

func (s *StorageService) storeToS3(data []byte, name string) error {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// storeLogo runs an upload through the shared validate/sanitize/store
// sequence and returns the stored name for the logo column.
func storeLogo(store FileStore, upload Upload) (string, error) {
	if upload.Filename == "" {
		return "", apperr.Validation("No logo was found.")
	}
	if !store.AllowedExtension(upload.Filename) {
		return "", apperr.Validation("The logo you uploaded is not recognised.")
	}

	name := store.Sanitize(upload.Filename)
	if err := store.Store(upload.Data, name); err != nil {
		return "", apperr.Unexpected("Could not store the logo.", err)
	}

	return name, nil
}
