package resumes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/entitlement"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/model"
)

const maxPayloadSize = 1 << 20 // 1MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/resumes", middleware.RequireUser())
	grp.POST("", h.create)
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.PUT("/:id", h.update)
	grp.DELETE("/:id", h.delete)
	grp.PUT("/:id/template", h.selectTemplate)
	grp.GET("/:id/preview", h.preview)
}

type saveRequest struct {
	Name    string          `json:"name"`
	Content json.RawMessage `json:"content"`
}

func (h *Handler) create(c *gin.Context) {
	req, ok := bindSave(c)
	if !ok {
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req.Name, req.Content)
	if err != nil {
		writeError(c, err, "failed to create resume")
		return
	}
	c.Set(middleware.ResumeIDKey, res.ID)
	respond.Created(c, toResponse(res))
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to list resumes")
		return
	}
	out := make([]ResumeSummary, 0, len(items))
	for _, r := range items {
		out = append(out, toSummary(r))
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	res, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch resume")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(res))
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	req, ok := bindSave(c)
	if !ok {
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, req.Name, req.Content)
	if err != nil {
		writeError(c, err, "failed to update resume")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(res))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete resume")
		return
	}
	respond.NoContent(c)
}

type selectTemplateRequest struct {
	TemplateID string `json:"templateId"`
}

func (h *Handler) selectTemplate(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	var req selectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.TemplateID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "templateId is required", nil)
		return
	}
	res, err := h.Svc.SelectTemplate(c.Request.Context(), middleware.UserIDFromContext(c), id, req.TemplateID)
	if err != nil {
		writeError(c, err, "failed to select template")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(res))
}

func (h *Handler) preview(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	p, err := h.Svc.Preview(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to render resume")
		return
	}
	respond.JSON(c, http.StatusOK, p)
}

func bindSave(c *gin.Context) (saveRequest, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadSize)
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return saveRequest{}, false
	}
	if len(req.Content) == 0 || string(req.Content) == "null" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content is required", nil)
		return saveRequest{}, false
	}
	return req, true
}

func writeError(c *gin.Context, err error, fallback string) {
	if d, ok := entitlement.AsDenied(err); ok {
		respond.Denied(c, d.Code, d.Message, d.Details())
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, model.ErrInvalidContent), errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
