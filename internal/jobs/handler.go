package jobs

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/scoring"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/score", h.score)

	user := rg.Group("/jobs", middleware.RequireUser())
	user.POST("/analyze", h.analyze)
	user.GET("/:id", h.get)
	user.GET("/:id/report.xlsx", h.report)
}

type analyzeRequest struct {
	JDContent string `json:"jdContent"`
}

// JobResponse is the outward-facing representation of an analyzed job.
type JobResponse struct {
	ID        string              `json:"id"`
	Content   string              `json:"jdContent,omitempty"`
	Analysis  scoring.JobAnalysis `json:"analysis"`
	CreatedAt time.Time           `json:"createdAt"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	jd, err := h.Svc.Analyze(c.Request.Context(), middleware.UserIDFromContext(c), req.JDContent)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.JobIDKey, jd.ID)
	respond.Created(c, JobResponse{ID: jd.ID, Analysis: jd.Analysis, CreatedAt: jd.CreatedAt})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.JobIDKey, id)
	jd, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, JobResponse{ID: jd.ID, Content: jd.Content, Analysis: jd.Analysis, CreatedAt: jd.CreatedAt})
}

type scoreRequest struct {
	ResumeID string         `json:"resumeId"`
	JobID    string         `json:"jobId"`
	Resume   *model.Content `json:"resume"`
	Keywords []string       `json:"keywords"`
}

func (h *Handler) score(c *gin.Context) {
	var req scoreRequest
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
	res, err := h.Svc.Score(c.Request.Context(), middleware.UserIDFromContext(c), ScoreInput{
		ResumeID: req.ResumeID,
		JobID:    req.JobID,
		Resume:   req.Resume,
		Keywords: req.Keywords,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, res)
}

func (h *Handler) report(c *gin.Context) {
	id := c.Param("id")
	resumeID := strings.TrimSpace(c.Query("resumeId"))
	c.Set(middleware.JobIDKey, id)
	c.Set(middleware.ResumeIDKey, resumeID)

	rep, err := h.Svc.Report(c.Request.Context(), middleware.UserIDFromContext(c), id, resumeID)
	if err != nil {
		writeError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rep); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build report", nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="match-report.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job description not found", nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrAnalysisUnavailable):
		respond.Error(c, http.StatusBadGateway, "analysis_unavailable", "job analysis is temporarily unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "request failed", nil)
	}
}
