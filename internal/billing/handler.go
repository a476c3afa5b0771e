package billing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/billing", middleware.RequireUser())
	grp.POST("/checkout", h.checkout)
	grp.POST("/confirm", h.confirm)
}

func (h *Handler) checkout(c *gin.Context) {
	co, err := h.Svc.Checkout(c.Request.Context(), middleware.UserIDFromContext(c), middleware.UserEmailFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, co)
}

type confirmRequest struct {
	SessionID string `json:"sessionId"`
}

func (h *Handler) confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	tier, err := h.Svc.Confirm(c.Request.Context(), middleware.UserIDFromContext(c), req.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"tier": tier, "upgraded": tier.IsPro()})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "payments_not_configured", "payments are not configured", nil)
	case errors.Is(err, ErrPaymentIncomplete):
		respond.Error(c, http.StatusPaymentRequired, "payment_incomplete", "payment has not been completed", nil)
	case errors.Is(err, ErrSessionMismatch):
		respond.Error(c, http.StatusForbidden, "session_mismatch", "checkout session belongs to another account", nil)
	case errors.Is(err, ErrPaymentUnavailable):
		respond.Error(c, http.StatusBadGateway, "payment_unavailable", "payment provider is temporarily unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "billing request failed", nil)
	}
}
