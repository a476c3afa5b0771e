package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/entitlement"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// ResumeCounter reports how many resumes a user owns.
type ResumeCounter interface {
	CountByUser(ctx context.Context, userID string) (int, error)
}

type Handler struct {
	Svc     *Service
	Resumes ResumeCounter
}

func NewHandler(svc *Service, resumes ResumeCounter) *Handler {
	return &Handler{Svc: svc, Resumes: resumes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}
	ctx := c.Request.Context()
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}

	count := 0
	if h.Resumes != nil {
		count, err = h.Resumes.CountByUser(ctx, userID)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to count resumes", nil)
			return
		}
	}

	limits := gin.H{"maxResumes": nil, "aiFeatures": user.Tier.IsPro(), "paidTemplates": user.Tier.IsPro()}
	if !user.Tier.IsPro() {
		limits["maxResumes"] = entitlement.FreeResumeLimit
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"fullName":    user.FullName,
		"pictureUrl":  user.PictureURL,
		"tier":        user.Tier,
		"resumeCount": count,
		"limits":      limits,
	})
}
