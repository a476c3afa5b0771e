package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"resume-builder/internal/llm"
	"resume-builder/internal/resumes"
	"resume-builder/internal/scoring"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
)

// MaxJobDescriptionLength bounds pasted job descriptions, in characters.
const MaxJobDescriptionLength = 20000

// ResumeSource loads a user's stored resume.
type ResumeSource interface {
	Get(ctx context.Context, userID, id string) (resumes.Resume, error)
}

// Service analyzes job descriptions and scores resumes against them.
type Service struct {
	Repo     Repo
	Resumes  ResumeSource
	LLM      llm.Client
	Engine   scoring.Engine
	Metrics  *metrics.Collector
	Provider string
	Model    string
	Now      func() time.Time
}

// Analyze extracts keywords from a job description and stores the result.
// Any analyzer failure is reported as ErrAnalysisUnavailable; nothing is stored.
func (s *Service) Analyze(ctx context.Context, userID, content string) (JobDescription, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return JobDescription{}, fmt.Errorf("%w: jdContent is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > MaxJobDescriptionLength {
		return JobDescription{}, fmt.Errorf("%w: jdContent exceeds %d characters", ErrInvalidInput, MaxJobDescriptionLength)
	}

	analysis, err := s.analyze(ctx, content)
	if err != nil {
		s.Metrics.IncAnalysis(metrics.OutcomeFailure)
		telemetry.Error("jobs.analysis_failed", map[string]any{
			"user_id":  userID,
			"provider": s.Provider,
			"error":    err,
		})
		return JobDescription{}, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}
	s.Metrics.IncAnalysis(metrics.OutcomeSuccess)

	jd := JobDescription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Analysis:  analysis,
		Provider:  s.Provider,
		Model:     s.Model,
		CreatedAt: s.now(),
	}
	if err := s.Repo.Create(ctx, jd); err != nil {
		return JobDescription{}, err
	}
	telemetry.Info("jobs.analyzed", map[string]any{
		"user_id":  userID,
		"job_id":   jd.ID,
		"keywords": len(analysis.Keywords),
	})
	return jd, nil
}

func (s *Service) analyze(ctx context.Context, content string) (scoring.JobAnalysis, error) {
	if s.LLM == nil {
		return scoring.JobAnalysis{}, llm.ErrNotConfigured
	}
	raw, err := s.LLM.Complete(ctx, llm.JobAnalysisPrompt(content))
	if err != nil {
		return scoring.JobAnalysis{}, err
	}
	return scoring.ParseAnalysis([]byte(llm.StripFences(raw)))
}

// Get returns one of the user's analyzed job descriptions.
func (s *Service) Get(ctx context.Context, userID, id string) (JobDescription, error) {
	if strings.TrimSpace(id) == "" {
		return JobDescription{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// ScoreInput names what to score. Stored ids take precedence over inline values.
type ScoreInput struct {
	ResumeID string
	JobID    string
	Resume   *model.Content
	Keywords []string
}

// Score computes the match between a resume and a keyword list.
func (s *Service) Score(ctx context.Context, userID string, in ScoreInput) (scoring.Result, error) {
	content, err := s.resolveResume(ctx, userID, in)
	if err != nil {
		return scoring.Result{}, err
	}
	keywords, err := s.resolveKeywords(ctx, userID, in)
	if err != nil {
		return scoring.Result{}, err
	}
	s.Metrics.IncScoreRequests()
	return s.Engine.Score(content, keywords), nil
}

func (s *Service) resolveResume(ctx context.Context, userID string, in ScoreInput) (model.Content, error) {
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
	return model.Content{}, fmt.Errorf("%w: resumeId or resume is required", ErrInvalidInput)
}

func (s *Service) resolveKeywords(ctx context.Context, userID string, in ScoreInput) ([]string, error) {
	if id := strings.TrimSpace(in.JobID); id != "" {
		jd, err := s.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		return jd.Analysis.Keywords, nil
	}
	if in.Keywords != nil {
		return scoring.NormalizeKeywords(in.Keywords), nil
	}
	return nil, fmt.Errorf("%w: jobId or keywords is required", ErrInvalidInput)
}

// Report scores a stored resume against a stored job description.
func (s *Service) Report(ctx context.Context, userID, jobID, resumeID string) (Report, error) {
	jd, err := s.Get(ctx, userID, jobID)
	if err != nil {
		return Report{}, err
	}
	if strings.TrimSpace(resumeID) == "" {
		return Report{}, fmt.Errorf("%w: resumeId is required", ErrInvalidInput)
	}
	if s.Resumes == nil {
		return Report{}, resumes.ErrNotFound
	}
	res, err := s.Resumes.Get(ctx, userID, resumeID)
	if err != nil {
		return Report{}, err
	}
	s.Metrics.IncScoreRequests()
	return Report{
		ResumeName:  res.Name,
		Job:         jd,
		Result:      s.Engine.Score(res.Content, jd.Analysis.Keywords),
		GeneratedAt: s.now(),
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
