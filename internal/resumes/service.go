package resumes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/entitlement"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/plan"
	"resume-builder/internal/templates"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

const defaultName = "Untitled resume"

// TierSource resolves a user's plan tier.
type TierSource interface {
	Tier(ctx context.Context, userID string) (plan.Tier, error)
}

// Service contains business logic for resumes.
type Service struct {
	Repo      Repo
	Tiers     TierSource
	Templates *templates.Registry
	Metrics   *metrics.Collector
	Now       func() time.Time
}

// Preview is a rendered resume plus how its template was resolved.
type Preview struct {
	View              render.DocumentView `json:"view"`
	RequestedTemplate string              `json:"requestedTemplate"`
	TemplateFallback  bool                `json:"templateFallback"`
}

// Create validates the payload, applies the entitlement checks and stores a new resume.
func (s *Service) Create(ctx context.Context, userID, name string, raw json.RawMessage) (Resume, error) {
	content, err := model.DecodeContent(raw)
	if err != nil {
		return Resume{}, err
	}
	tier, err := s.tier(ctx, userID)
	if err != nil {
		return Resume{}, err
	}
	templateID, err := s.chooseTemplate(content.TemplateID, tier)
	if err != nil {
		return Resume{}, err
	}
	content.TemplateID = templateID

	now := s.now()
	res := Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       resumeName(name, content),
		TemplateID: templateID,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = s.Repo.Create(ctx, res, func(count int) error {
		return entitlement.Authorize(entitlement.Subject{Tier: tier, ResumeCount: count}, entitlement.CreateResume()).Err()
	})
	if err != nil {
		s.recordDenial(err)
		return Resume{}, err
	}
	return res, nil
}

// Get returns one of the user's resumes.
func (s *Service) Get(ctx context.Context, userID, id string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's resumes.
func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Count returns how many resumes the user owns.
func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	return s.Repo.CountByUser(ctx, userID)
}

// Update replaces the content of a resume. A template change in the payload
// goes through the same checks as SelectTemplate, so an unknown id is
// rejected rather than replaced by the fallback.
func (s *Service) Update(ctx context.Context, userID, id, name string, raw json.RawMessage) (Resume, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	content, err := model.DecodeContent(raw)
	if err != nil {
		return Resume{}, err
	}

	templateID := existing.TemplateID
	if requested := strings.TrimSpace(content.TemplateID); requested != "" && requested != existing.TemplateID {
		if _, ok := s.Templates.Lookup(requested); !ok {
			return Resume{}, fmt.Errorf("%w: unknown template %q", ErrInvalidInput, requested)
		}
		tier, err := s.tier(ctx, userID)
		if err != nil {
			return Resume{}, err
		}
		if templateID, err = s.chooseTemplate(requested, tier); err != nil {
			s.recordDenial(err)
			return Resume{}, err
		}
	}
	content.TemplateID = templateID

	existing.Content = content
	existing.TemplateID = templateID
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		existing.Name = trimmed
	}
	existing.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, existing); err != nil {
		return Resume{}, err
	}
	return existing, nil
}

// SelectTemplate applies a template to a resume after the entitlement check.
func (s *Service) SelectTemplate(ctx context.Context, userID, id, templateID string) (Resume, error) {
	res, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	profile, ok := s.Templates.Lookup(strings.TrimSpace(templateID))
	if !ok {
		return Resume{}, fmt.Errorf("%w: unknown template %q", ErrInvalidInput, templateID)
	}
	tier, err := s.tier(ctx, userID)
	if err != nil {
		return Resume{}, err
	}
	if err := entitlement.Authorize(entitlement.Subject{Tier: tier}, entitlement.SelectTemplate(profile)).Err(); err != nil {
		s.recordDenial(err)
		return Resume{}, err
	}

	res.TemplateID = profile.ID
	res.Content.TemplateID = profile.ID
	res.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, res); err != nil {
		return Resume{}, err
	}
	return res, nil
}

// Delete removes a resume.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, userID, id)
}

// Resolve returns the template profile a resume renders with for its owner.
// Unknown or no-longer-accessible templates fall back to the default free one.
func (s *Service) Resolve(ctx context.Context, res Resume) (templates.Profile, bool, error) {
	tier, err := s.tier(ctx, res.UserID)
	if err != nil {
		return templates.Profile{}, false, err
	}
	profile, fellBack := s.Templates.Resolve(res.TemplateID, tier)
	if fellBack {
		s.Metrics.IncTemplateFallback()
	}
	return profile, fellBack, nil
}

// Preview renders a stored resume into its document view.
func (s *Service) Preview(ctx context.Context, userID, id string) (Preview, error) {
	res, err := s.Get(ctx, userID, id)
	if err != nil {
		return Preview{}, err
	}
	profile, fellBack, err := s.Resolve(ctx, res)
	if err != nil {
		return Preview{}, err
	}
	return Preview{
		View:              render.Render(res.Content, profile),
		RequestedTemplate: res.TemplateID,
		TemplateFallback:  fellBack,
	}, nil
}

// chooseTemplate picks the stored template id for a requested one. Blank or
// unknown ids store the fallback; a paid template needs an entitled tier.
func (s *Service) chooseTemplate(requested string, tier plan.Tier) (string, error) {
	profile, ok := s.Templates.Lookup(strings.TrimSpace(requested))
	if !ok {
		return s.Templates.Fallback().ID, nil
	}
	if err := entitlement.Authorize(entitlement.Subject{Tier: tier}, entitlement.SelectTemplate(profile)).Err(); err != nil {
		return "", err
	}
	return profile.ID, nil
}

func (s *Service) tier(ctx context.Context, userID string) (plan.Tier, error) {
	if s.Tiers == nil {
		return plan.Free, nil
	}
	return s.Tiers.Tier(ctx, userID)
}

func (s *Service) recordDenial(err error) {
	if d, ok := entitlement.AsDenied(err); ok {
		s.Metrics.IncEntitlementDenied(d.Code)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func resumeName(name string, content model.Content) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	if full := strings.TrimSpace(content.PersonalInfo.FullName); full != "" {
		return full
	}
	return defaultName
}
