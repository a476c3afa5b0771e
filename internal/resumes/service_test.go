package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"resume-builder/internal/entitlement"
	"resume-builder/internal/shared/plan"
	"resume-builder/internal/templates"
	"resume-builder/resume/model"
)

type tierMap map[string]plan.Tier

func (m tierMap) Tier(ctx context.Context, userID string) (plan.Tier, error) {
	if t, ok := m[userID]; ok {
		return t, nil
	}
	return plan.Free, nil
}

func newTestService(tiers tierMap) *Service {
	return &Service{
		Repo:      NewMemoryRepo(),
		Tiers:     tiers,
		Templates: templates.Default(),
		Now:       func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func payload(t *testing.T, templateID string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"personalInfo": map[string]any{"fullName": "Jordan Lee"},
		"summary":      "Builds APIs.",
		"templateId":   templateID,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func TestCreateEnforcesFreeLimit(t *testing.T) {
	svc := newTestService(tierMap{"u1": plan.Free})
	ctx := context.Background()

	for i := 0; i < entitlement.FreeResumeLimit; i++ {
		if _, err := svc.Create(ctx, "u1", "", payload(t, "")); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	_, err := svc.Create(ctx, "u1", "", payload(t, ""))
	d, ok := entitlement.AsDenied(err)
	if !ok || d.Code != entitlement.CodeResumeLimitReached || d.Limit != entitlement.FreeResumeLimit {
		t.Fatalf("expected resume_limit_reached, got %v", err)
	}
	if n, _ := svc.Count(ctx, "u1"); n != entitlement.FreeResumeLimit {
		t.Fatalf("denied create must not persist, count = %d", n)
	}
}

func TestCreateProUnlimited(t *testing.T) {
	svc := newTestService(tierMap{"u1": plan.Pro})
	for i := 0; i < entitlement.FreeResumeLimit+2; i++ {
		if _, err := svc.Create(context.Background(), "u1", "", payload(t, templates.Executive)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
}

func TestCreateTemplateRules(t *testing.T) {
	svc := newTestService(tierMap{"u1": plan.Free})
	ctx := context.Background()

	res, err := svc.Create(ctx, "u1", "", payload(t, ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.TemplateID != templates.Minimal || res.Content.TemplateID != templates.Minimal {
		t.Fatalf("blank template should default to minimal, got %q", res.TemplateID)
	}
	if res.Name != "Jordan Lee" {
		t.Fatalf("name should default to full name, got %q", res.Name)
	}

	res, err = svc.Create(ctx, "u1", "CV", payload(t, "no-such-template"))
	if err != nil || res.TemplateID != templates.Minimal {
		t.Fatalf("unknown template should fall back, got %q, %v", res.TemplateID, err)
	}

	_, err = svc.Create(ctx, "u1", "", payload(t, templates.Modern))
	if d, ok := entitlement.AsDenied(err); !ok || d.Code != entitlement.CodeTemplateRequiresUpgrade {
		t.Fatalf("expected template_requires_upgrade, got %v", err)
	}
}

func TestCreateRejectsInvalidContent(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Create(context.Background(), "u1", "", json.RawMessage(`{"skills":"go"}`))
	if !errors.Is(err, model.ErrInvalidContent) {
		t.Fatalf("expected ErrInvalidContent, got %v", err)
	}
}

func TestOwnerScoping(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	res, err := svc.Create(ctx, "owner", "", payload(t, ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(ctx, "intruder", res.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign get, got %v", err)
	}
	if err := svc.Delete(ctx, "intruder", res.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
	if _, err := svc.Update(ctx, "intruder", res.ID, "", payload(t, "")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign update, got %v", err)
	}
}

func TestSelectTemplate(t *testing.T) {
	tiers := tierMap{"u1": plan.Free}
	svc := newTestService(tiers)
	ctx := context.Background()
	res, _ := svc.Create(ctx, "u1", "", payload(t, ""))

	if _, err := svc.SelectTemplate(ctx, "u1", res.ID, "nope"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.SelectTemplate(ctx, "u1", res.ID, templates.Creative); !isDenied(err) {
		t.Fatalf("expected denial, got %v", err)
	}

	tiers["u1"] = plan.Pro
	updated, err := svc.SelectTemplate(ctx, "u1", res.ID, templates.Creative)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if updated.TemplateID != templates.Creative || updated.Content.TemplateID != templates.Creative {
		t.Fatalf("template not applied: %+v", updated)
	}
}

func TestUpdateKeepsTemplateUnlessChanged(t *testing.T) {
	tiers := tierMap{"u1": plan.Pro}
	svc := newTestService(tiers)
	ctx := context.Background()
	res, err := svc.Create(ctx, "u1", "", payload(t, templates.Classic))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	tiers["u1"] = plan.Free

	updated, err := svc.Update(ctx, "u1", res.ID, "Renamed", payload(t, ""))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TemplateID != templates.Classic || updated.Name != "Renamed" {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if _, err := svc.Update(ctx, "u1", res.ID, "", payload(t, templates.Professional)); !isDenied(err) {
		t.Fatalf("expected denial switching to paid template, got %v", err)
	}

	tiers["u1"] = plan.Pro
	if _, err := svc.Update(ctx, "u1", res.ID, "", payload(t, templates.Executive)); err != nil {
		t.Fatalf("pro switch to executive: %v", err)
	}
	if _, err := svc.Update(ctx, "u1", res.ID, "", payload(t, "executiv")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown template, got %v", err)
	}
	stored, err := svc.Get(ctx, "u1", res.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.TemplateID != templates.Executive {
		t.Fatalf("unknown template must not replace the selection, got %q", stored.TemplateID)
	}
}

func TestPreviewFallsBackForUnknownTemplate(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	repo := svc.Repo.(*MemoryRepo)
	stored := Resume{
		ID:         "r1",
		UserID:     "u1",
		Name:       "Old",
		TemplateID: "retired",
		Content:    model.Content{Summary: "Hello"},
	}
	if err := repo.Create(ctx, stored, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	p, err := svc.Preview(ctx, "u1", "r1")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !p.TemplateFallback || p.View.TemplateID != templates.Minimal || p.RequestedTemplate != "retired" {
		t.Fatalf("unexpected preview %+v", p)
	}
	if len(p.View.Sections) != 1 || p.View.Sections[0].Text != "Hello" {
		t.Fatalf("unexpected sections %+v", p.View.Sections)
	}
}

func isDenied(err error) bool {
	_, ok := entitlement.AsDenied(err)
	return ok
}
