package jobs

import (
	"errors"
	"time"

	"resume-builder/internal/scoring"
)

var (
	ErrNotFound            = errors.New("job description not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAnalysisUnavailable = errors.New("job analysis unavailable")
)

// JobDescription is a pasted job posting and its analysis.
type JobDescription struct {
	ID        string
	UserID    string
	Content   string
	Analysis  scoring.JobAnalysis
	Provider  string
	Model     string
	CreatedAt time.Time
}
