package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/entitlement"
	"resume-builder/internal/jobs"
	"resume-builder/internal/llm"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/plan"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
)

// MaxBullets bounds one optimization request.
const MaxBullets = 30

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrAIUnavailable = errors.New("ai assistance unavailable")
)

type TierSource interface {
	Tier(ctx context.Context, userID string) (plan.Tier, error)
}

type ResumeSource interface {
	Get(ctx context.Context, userID, id string) (resumes.Resume, error)
}

type JobSource interface {
	Get(ctx context.Context, userID, id string) (jobs.JobDescription, error)
}

// Service runs the pro-only AI writing features.
type Service struct {
	LLM     llm.Client
	Tiers   TierSource
	Resumes ResumeSource
	Jobs    JobSource
	Metrics *metrics.Collector
}

// OptimizeBullets rewrites bullet points toward the target keywords.
func (s *Service) OptimizeBullets(ctx context.Context, userID string, bullets, keywords []string) ([]string, error) {
	bullets = compact(bullets)
	if len(bullets) == 0 {
		return nil, fmt.Errorf("%w: bulletPoints is required", ErrInvalidInput)
	}
	if len(bullets) > MaxBullets {
		return nil, fmt.Errorf("%w: at most %d bullet points per request", ErrInvalidInput, MaxBullets)
	}
	if err := s.authorize(ctx, userID, entitlement.FeatureBulletOptimization); err != nil {
		return nil, err
	}

	return complete(ctx, s, entitlement.FeatureBulletOptimization, llm.BulletOptimizationPrompt(bullets, compact(keywords)), llm.ParseBullets)
}

// CoverLetterInput names the resume and job a letter is written for. Stored
// ids take precedence over inline values.
type CoverLetterInput struct {
	ResumeID  string
	Resume    *model.Content
	JobID     string
	JDContent string
}

// CoverLetter drafts a cover letter from a resume and a job description.
func (s *Service) CoverLetter(ctx context.Context, userID string, in CoverLetterInput) (string, error) {
	content, err := s.resolveResume(ctx, userID, in)
	if err != nil {
		return "", err
	}
	jd, err := s.resolveJob(ctx, userID, in)
	if err != nil {
		return "", err
	}
	if err := s.authorize(ctx, userID, entitlement.FeatureCoverLetter); err != nil {
		return "", err
	}

	resumeJSON, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("encode resume: %w", err)
	}
	return complete(ctx, s, entitlement.FeatureCoverLetter, llm.CoverLetterPrompt(string(resumeJSON), jd), llm.ParseCoverLetter)
}

func (s *Service) authorize(ctx context.Context, userID string, f entitlement.Feature) error {
	tier := plan.Free
	if s.Tiers != nil {
		var err error
		if tier, err = s.Tiers.Tier(ctx, userID); err != nil {
			return err
		}
	}
	d := entitlement.Authorize(entitlement.Subject{Tier: tier}, entitlement.InvokeAIFeature(f))
	if !d.Allowed {
		s.Metrics.IncEntitlementDenied(d.Code)
	}
	return d.Err()
}

// complete runs one prompt and parses the answer. Upstream and parse
// failures both surface as ErrAIUnavailable.
func complete[T any](ctx context.Context, s *Service, f entitlement.Feature, prompt string, parse func(string) (T, error)) (T, error) {
	var zero T
	client := s.LLM
	if client == nil {
		client = llm.Disabled{}
	}
	raw, err := client.Complete(ctx, prompt)
	if err == nil {
		var out T
		if out, err = parse(raw); err == nil {
			s.Metrics.IncAIRequest(string(f), metrics.OutcomeSuccess)
			return out, nil
		}
	}
	s.Metrics.IncAIRequest(string(f), metrics.OutcomeFailure)
	telemetry.Error("assist.failed", map[string]any{"feature": string(f), "error": err})
	return zero, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
}

func (s *Service) resolveResume(ctx context.Context, userID string, in CoverLetterInput) (model.Content, error) {
	if id := strings.TrimSpace(in.ResumeID); id != "" {
		if s.Resumes == nil {
			return model.Content{}, resumes.ErrNotFound
		}
		res, err := s.Resumes.Get(ctx, userID, id)
		if err != nil {
			return model.Content{}, err
		}
		return res.Content, nil
	}
	if in.Resume != nil {
		return *in.Resume, nil
	}
	return model.Content{}, fmt.Errorf("%w: resumeId or resumeContent is required", ErrInvalidInput)
}

func (s *Service) resolveJob(ctx context.Context, userID string, in CoverLetterInput) (string, error) {
	if id := strings.TrimSpace(in.JobID); id != "" {
		if s.Jobs == nil {
			return "", jobs.ErrNotFound
		}
		jd, err := s.Jobs.Get(ctx, userID, id)
		if err != nil {
			return "", err
		}
		return jd.Content, nil
	}
	if jd := strings.TrimSpace(in.JDContent); jd != "" {
		if len([]rune(jd)) > jobs.MaxJobDescriptionLength {
			return "", fmt.Errorf("%w: jdContent exceeds %d characters", ErrInvalidInput, jobs.MaxJobDescriptionLength)
		}
		return jd, nil
	}
	return "", fmt.Errorf("%w: jobId or jdContent is required", ErrInvalidInput)
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
