package entitlement

import (
	"errors"
	"fmt"

	"resume-builder/internal/shared/plan"
	"resume-builder/internal/templates"
)

// FreeResumeLimit is the number of resumes a free account may keep.
const FreeResumeLimit = 3

// Reason codes carried by denials.
const (
	CodeResumeLimitReached      = "resume_limit_reached"
	CodeTemplateRequiresUpgrade = "template_requires_upgrade"
	CodeFeatureRequiresUpgrade  = "feature_requires_upgrade"
)

// UpgradeMessage is shown to users hitting a paid feature.
const UpgradeMessage = "Upgrade to Pro to unlock AI optimization, cover letter generation, and unlimited exports."

// Feature names a pro-only capability.
type Feature string

const (
	FeatureBulletOptimization Feature = "bullet_optimization"
	FeatureCoverLetter        Feature = "cover_letter"
)

// Subject is what the gate knows about the caller.
type Subject struct {
	Tier        plan.Tier
	ResumeCount int
}

type actionKind int

const (
	actionCreateResume actionKind = iota + 1
	actionSelectTemplate
	actionInvokeAIFeature
)

// Action is a request to be authorized. Build one with CreateResume,
// SelectTemplate or InvokeAIFeature.
type Action struct {
	kind     actionKind
	template templates.Profile
	feature  Feature
}

// CreateResume asks to persist one more resume.
func CreateResume() Action { return Action{kind: actionCreateResume} }

// SelectTemplate asks to apply a template profile.
func SelectTemplate(p templates.Profile) Action {
	return Action{kind: actionSelectTemplate, template: p}
}

// InvokeAIFeature asks to use an AI capability.
func InvokeAIFeature(f Feature) Action {
	return Action{kind: actionInvokeAIFeature, feature: f}
}

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed  bool
	Code     string
	Message  string
	Limit    int
	Feature  Feature
	Template string
}

// Err returns nil for allowed decisions and a *DeniedError otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Decision: d}
}

// Details returns the machine-readable payload of a denial.
func (d Decision) Details() map[string]any {
	if d.Allowed {
		return nil
	}
	out := map[string]any{}
	if d.Limit > 0 {
		out["limit"] = d.Limit
	}
	if d.Feature != "" {
		out["feature"] = string(d.Feature)
	}
	if d.Template != "" {
		out["templateId"] = d.Template
	}
	return out
}

var allow = Decision{Allowed: true}

// Authorize evaluates a subject's tier against an action. It has no side
// effects; callers own counting and persistence.
func Authorize(s Subject, a Action) Decision {
	switch a.kind {
	case actionCreateResume:
		if !s.Tier.IsPro() && s.ResumeCount >= FreeResumeLimit {
			return Decision{
				Code:    CodeResumeLimitReached,
				Message: fmt.Sprintf("Free accounts can keep up to %d resumes. %s", FreeResumeLimit, UpgradeMessage),
				Limit:   FreeResumeLimit,
			}
		}
		return allow
	case actionSelectTemplate:
		if !templates.IsAccessible(a.template, s.Tier) {
			return Decision{
				Code:     CodeTemplateRequiresUpgrade,
				Message:  fmt.Sprintf("The %s template is available on Pro. %s", a.template.Name, UpgradeMessage),
				Template: a.template.ID,
			}
		}
		return allow
	case actionInvokeAIFeature:
		if !s.Tier.IsPro() {
			return Decision{
				Code:    CodeFeatureRequiresUpgrade,
				Message: UpgradeMessage,
				Feature: a.feature,
			}
		}
		return allow
	}
	return Decision{Code: "unknown_action", Message: "action not recognized"}
}

// DeniedError wraps a denial so it can travel through error returns.
type DeniedError struct {
	Decision Decision
}

func (e *DeniedError) Error() string {
	return "entitlement denied: " + e.Decision.Code
}

// AsDenied extracts a denial from an error chain.
func AsDenied(err error) (Decision, bool) {
	var denied *DeniedError
	if errors.As(err, &denied) {
		return denied.Decision, true
	}
	return Decision{}, false
}
