package resumes

import (
	"time"

	"resume-builder/resume/model"
)

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	TemplateID string        `json:"templateId"`
	Content    model.Content `json:"content"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// ResumeSummary is returned by list endpoints.
type ResumeSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TemplateID string    `json:"templateId"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toResponse(r Resume) ResumeResponse {
	return ResumeResponse{
		ID:         r.ID,
		Name:       r.Name,
		TemplateID: r.TemplateID,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toSummary(r Resume) ResumeSummary {
	return ResumeSummary{ID: r.ID, Name: r.Name, TemplateID: r.TemplateID, UpdatedAt: r.UpdatedAt}
}
