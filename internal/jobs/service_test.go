package jobs

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"resume-builder/internal/llm"
	"resume-builder/internal/resumes"
	"resume-builder/internal/scoring"
	"resume-builder/resume/model"
)

type stubResumes map[string]resumes.Resume

func (s stubResumes) Get(ctx context.Context, userID, id string) (resumes.Resume, error) {
	r, ok := s[id]
	if !ok || r.UserID != userID {
		return resumes.Resume{}, resumes.ErrNotFound
	}
	return r, nil
}

func replying(reply string, err error) llm.Client {
	return llm.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return reply, err
	})
}

func newTestService(client llm.Client) *Service {
	return &Service{
		Repo: NewMemoryRepo(),
		Resumes: stubResumes{"r1": {
			ID:      "r1",
			UserID:  "u1",
			Name:    "Backend CV",
			Content: model.Content{Summary: "Built Go services and improved latency.", Skills: []string{"Go", "Docker"}},
		}},
		LLM:      client,
		Provider: "openai",
		Model:    "gpt-4o-mini",
		Now:      func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	}
}

func TestAnalyzeStoresNormalizedKeywords(t *testing.T) {
	svc := newTestService(replying("```json\n"+`{"technical_skills":["Go","docker"],"technologies":["Docker","Kubernetes"],"keywords":["go","APIs"],"ideal_profile":"Backend"}`+"\n```", nil))

	jd, err := svc.Analyze(context.Background(), "u1", "  Senior Go engineer  ")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []string{"Go", "docker", "Kubernetes", "APIs"}
	if !reflect.DeepEqual(jd.Analysis.Keywords, want) {
		t.Fatalf("keywords = %v, want %v", jd.Analysis.Keywords, want)
	}
	if jd.Content != "Senior Go engineer" || jd.Analysis.IdealProfile != "Backend" {
		t.Fatalf("unexpected job %+v", jd)
	}
	stored, err := svc.Get(context.Background(), "u1", jd.ID)
	if err != nil || stored.ID != jd.ID {
		t.Fatalf("Get = %+v, %v", stored, err)
	}
	if _, err := svc.Get(context.Background(), "u2", jd.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign Get should be ErrNotFound, got %v", err)
	}
}

func TestAnalyzeFailures(t *testing.T) {
	tests := []struct {
		name   string
		client llm.Client
	}{
		{name: "upstream error", client: replying("", errors.New("503"))},
		{name: "not an object", client: replying(`["go"]`, nil)},
		{name: "not configured", client: llm.Disabled{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.client)
			_, err := svc.Analyze(context.Background(), "u1", "JD")
			if !errors.Is(err, ErrAnalysisUnavailable) {
				t.Fatalf("expected ErrAnalysisUnavailable, got %v", err)
			}
		})
	}
}

func TestAnalyzeValidatesInput(t *testing.T) {
	svc := newTestService(replying(`{}`, nil))
	for _, content := range []string{"   ", strings.Repeat("a", MaxJobDescriptionLength+1)} {
		if _, err := svc.Analyze(context.Background(), "u1", content); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	}
}

func TestScoreSources(t *testing.T) {
	svc := newTestService(replying(`{"skills":["Go","Rust"]}`, nil))
	ctx := context.Background()
	jd, err := svc.Analyze(ctx, "u1", "JD")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	res, err := svc.Score(ctx, "u1", ScoreInput{ResumeID: "r1", JobID: jd.ID})
	if err != nil {
		t.Fatalf("Score stored: %v", err)
	}
	if res.Score != 50 || !reflect.DeepEqual(res.MatchedKeywords, []string{"Go"}) {
		t.Fatalf("unexpected stored score %+v", res)
	}

	inline := &model.Content{Skills: []string{"Kafka"}}
	res, err = svc.Score(ctx, "guest:x", ScoreInput{Resume: inline, Keywords: []string{"kafka", "KAFKA", "Go"}})
	if err != nil {
		t.Fatalf("Score inline: %v", err)
	}
	if res.Score != 50 || len(res.MatchedKeywords)+len(res.MissingKeywords) != 2 {
		t.Fatalf("unexpected inline score %+v", res)
	}

	if _, err := svc.Score(ctx, "u1", ScoreInput{Keywords: []string{"go"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing resume should be ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Score(ctx, "u2", ScoreInput{ResumeID: "r1", Keywords: []string{"go"}}); !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("foreign resume should be not found, got %v", err)
	}
}

func TestScoreEmptyKeywords(t *testing.T) {
	svc := newTestService(nil)
	res, err := svc.Score(context.Background(), "u1", ScoreInput{Resume: &model.Content{}, Keywords: []string{}})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Score != 0 || len(res.MatchedKeywords) != 0 || len(res.MissingKeywords) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestWriteXLSX(t *testing.T) {
	analysis := scoring.NewJobAnalysis([]string{"Go"}, []string{"Rust", "go"}, nil)
	analysis.IdealProfile = "Backend"
	if !reflect.DeepEqual(analysis.Keywords, []string{"Go", "Rust"}) {
		t.Fatalf("keywords = %v", analysis.Keywords)
	}
	rep := Report{
		ResumeName:  "Backend CV",
		Job:         JobDescription{ID: "j1", Content: "JD", Analysis: analysis},
		Result:      scoring.CalculateScore(model.Content{Skills: []string{"Go"}}, analysis.Keywords),
		GeneratedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rep); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{summarySheet, keywordsSheet}) {
		t.Fatalf("sheets = %v", got)
	}
	score, err := f.GetCellValue(summarySheet, "B6")
	if err != nil || score != "50" {
		t.Fatalf("score cell = %q, %v", score, err)
	}
	rows, err := f.GetRows(keywordsSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := [][]string{{"Keyword", "Status"}, {"Go", "matched"}, {"Rust", "missing"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("keyword rows = %v", rows)
	}
}
