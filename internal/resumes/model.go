package resumes

import (
	"errors"
	"time"

	"resume-builder/resume/model"
)

var (
	ErrNotFound     = errors.New("resume not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Resume is a stored resume owned by exactly one user.
type Resume struct {
	ID         string
	UserID     string
	Name       string
	TemplateID string
	Content    model.Content
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
