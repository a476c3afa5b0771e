package export

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("export not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrExportUnavailable = errors.New("export unavailable")
)

// Export records a generated PDF kept in object storage.
type Export struct {
	ID         string
	UserID     string
	ResumeID   string
	TemplateID string
	StorageKey string
	SizeBytes  int64
	PageCount  int
	CreatedAt  time.Time
}
