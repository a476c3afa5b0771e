// Package catalog serves the template catalog over HTTP.
package catalog

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/entitlement"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/plan"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/templates"
)

// TierSource resolves a user's plan tier.
type TierSource interface {
	Tier(ctx context.Context, userID string) (plan.Tier, error)
}

// Handler exposes the template registry.
type Handler struct {
	Registry *templates.Registry
	Tiers    TierSource
	Metrics  *metrics.Collector
}

// NewHandler constructs a Handler.
func NewHandler(registry *templates.Registry, tiers TierSource, m *metrics.Collector) *Handler {
	return &Handler{Registry: registry, Tiers: tiers, Metrics: m}
}

// RegisterRoutes attaches template routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.list)
	rg.POST("/templates/:id/select", h.selectTemplate)
}

// TemplateResponse is one catalog entry as seen by the caller.
type TemplateResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	IsPaid      bool                  `json:"isPaid"`
	Accessible  bool                  `json:"accessible"`
	Styles      templates.StyleTokens `json:"styles"`
	Labels      map[string]string     `json:"labels,omitempty"`
}

func toResponse(p templates.Profile, tier plan.Tier) TemplateResponse {
	return TemplateResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsPaid:      p.IsPaid,
		Accessible:  templates.IsAccessible(p, tier),
		Styles:      p.Styles,
		Labels:      p.Labels(),
	}
}

func (h *Handler) list(c *gin.Context) {
	tier, ok := h.tier(c)
	if !ok {
		return
	}
	profiles := h.Registry.List()
	out := make([]TemplateResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toResponse(p, tier))
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) selectTemplate(c *gin.Context) {
	p, found := h.Registry.Lookup(c.Param("id"))
	if !found {
		respond.Error(c, http.StatusNotFound, "not_found", "template not found", nil)
		return
	}
	tier, ok := h.tier(c)
	if !ok {
		return
	}
	d := entitlement.Authorize(entitlement.Subject{Tier: tier}, entitlement.SelectTemplate(p))
	if !d.Allowed {
		h.Metrics.IncEntitlementDenied(d.Code)
		respond.Denied(c, d.Code, d.Message, d.Details())
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(p, tier))
}

func (h *Handler) tier(c *gin.Context) (plan.Tier, bool) {
	if h.Tiers == nil {
		return plan.Free, true
	}
	tier, err := h.Tiers.Tier(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load plan", nil)
		return plan.Free, false
	}
	return tier, true
}
