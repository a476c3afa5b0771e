package assist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/entitlement"
	"resume-builder/internal/jobs"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/model"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/ai", middleware.RequireUser())
	grp.POST("/optimize", h.optimize)
	grp.POST("/cover-letter", h.coverLetter)
}

type optimizeRequest struct {
	BulletPoints   []string `json:"bulletPoints"`
	TargetKeywords []string `json:"targetKeywords"`
}

func (h *Handler) optimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.OptimizeBullets(c.Request.Context(), middleware.UserIDFromContext(c), req.BulletPoints, req.TargetKeywords)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"optimizedBullets": out})
}

type coverLetterRequest struct {
	ResumeID      string         `json:"resumeId"`
	ResumeContent *model.Content `json:"resumeContent"`
	JobID         string         `json:"jobId"`
	JDContent     string         `json:"jdContent"`
}

func (h *Handler) coverLetter(c *gin.Context) {
	var req coverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ResumeID != "" {
		c.Set(middleware.ResumeIDKey, req.ResumeID)
	}
	if req.JobID != "" {
		c.Set(middleware.JobIDKey, req.JobID)
	}
	letter, err := h.Svc.CoverLetter(c.Request.Context(), middleware.UserIDFromContext(c), CoverLetterInput{
		ResumeID:  req.ResumeID,
		Resume:    req.ResumeContent,
		JobID:     req.JobID,
		JDContent: req.JDContent,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"coverLetter": letter})
}

func writeError(c *gin.Context, err error) {
	if d, ok := entitlement.AsDenied(err); ok {
		respond.Denied(c, d.Code, d.Message, d.Details())
		return
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job description not found", nil)
	case errors.Is(err, ErrAIUnavailable):
		respond.Error(c, http.StatusBadGateway, "ai_unavailable", "AI assistance is temporarily unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "request failed", nil)
	}
}
