package export

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/util"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("", middleware.RequireUser())
	grp.POST("/resumes/:id/export", h.exportResume)
	grp.GET("/exports/:id", h.download)
	grp.POST("/pdf", h.exportHTML)
}

func (h *Handler) exportResume(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	doc, err := h.Svc.ExportResume(c.Request.Context(), middleware.UserIDFromContext(c), resumeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ExportIDKey, doc.Export.ID)
	c.Header("X-Export-Id", doc.Export.ID)
	c.Header("X-Template-Id", doc.Export.TemplateID)
	c.Header("X-Template-Fallback", strconv.FormatBool(doc.TemplateFallback))
	c.Header("X-Page-Count", strconv.Itoa(doc.Export.PageCount))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, pdfContentType, doc.PDF)
}

func (h *Handler) download(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ExportIDKey, id)

	exp, rc, err := h.Svc.Open(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()

	c.Header("X-Page-Count", strconv.Itoa(exp.PageCount))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", util.ExportFileName("resume-"+exp.ID, "pdf")))
	c.Header("Content-Type", pdfContentType)
	c.Header("Content-Length", strconv.FormatInt(exp.SizeBytes, 10))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

type htmlRequest struct {
	HTMLContent string `json:"htmlContent"`
}

func (h *Handler) exportHTML(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRawHTMLSize+1024)
	var req htmlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	data, pages, err := h.Svc.ExportHTML(c.Request.Context(), req.HTMLContent)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("X-Page-Count", strconv.Itoa(pages))
	c.Header("Content-Disposition", `attachment; filename="resume.pdf"`)
	c.Data(http.StatusOK, pdfContentType, data)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
	case errors.Is(err, ErrExportUnavailable):
		respond.Error(c, http.StatusBadGateway, "export_unavailable", "PDF export is temporarily unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "export failed", nil)
	}
}
