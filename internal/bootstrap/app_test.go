package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/users"
)

type failingPrinter struct{}

func (failingPrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	return nil, errors.New("chrome not installed")
}

func newTestApp(t *testing.T, client llm.Client) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := config.Config{
		Env:              "dev",
		ObjectStoreType:  "local",
		LocalStoreDir:    t.TempDir(),
		LLMProvider:      "openai",
		RateLimitDefault: 1000,
		RateLimitAI:      1000,
		ExportTimeout:    time.Second,
	}
	app, err := BuildWith(context.Background(), cfg, Options{
		LLM:      client,
		Printer:  failingPrinter{},
		Registry: prometheus.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("BuildWith: %v", err)
	}
	return app
}

func call(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := auth.SignJWT(auth.Claims{Sub: userID})
		if err != nil {
			t.Fatalf("SignJWT: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("X-Guest-Id", "guest-1")
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", resp.Body.String(), err)
	}
}

func TestBuildServesHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, llm.Disabled{})
	if app.DB != nil {
		t.Fatalf("expected memory repositories without DATABASE_URL")
	}

	if resp := call(t, app.Router, http.MethodGet, "/api/v1/health", "", nil); resp.Code != http.StatusOK {
		t.Fatalf("health status %d", resp.Code)
	}

	call(t, app.Router, http.MethodPost, "/api/v1/jobs/score", "", gin.H{
		"resume":   gin.H{"skills": []string{"Go"}},
		"keywords": []string{"go"},
	})
	resp := call(t, app.Router, http.MethodGet, "/metrics", "", nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "resume_builder_score_requests_total 1") {
		t.Fatalf("metrics status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestFreeUserJourney(t *testing.T) {
	analyzer := llm.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return `{"skills":["Go","Kubernetes"],"technologies":["PostgreSQL"],"focusAreas":[]}`, nil
	})
	app := newTestApp(t, analyzer)
	user := "google:e2e"
	if err := app.UsersService.UpsertFromAuth(context.Background(), users.User{ID: user, Email: "e2e@example.com"}); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}

	resp := call(t, app.Router, http.MethodPost, "/api/v1/resumes", user, gin.H{
		"name":    "Backend",
		"content": gin.H{"summary": "Go services on PostgreSQL.", "skills": []string{"Go"}},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create resume %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID         string `json:"id"`
		TemplateID string `json:"templateId"`
	}
	decode(t, resp, &created)
	if created.TemplateID != "minimal" {
		t.Fatalf("templateId = %q", created.TemplateID)
	}

	resp = call(t, app.Router, http.MethodPost, "/api/v1/resumes", user, gin.H{"content": gin.H{}})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("second resume on free tier: %d", resp.Code)
	}

	resp = call(t, app.Router, http.MethodPost, "/api/v1/jobs/analyze", user, gin.H{"jdContent": "Senior Go engineer with Kubernetes"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("analyze %d: %s", resp.Code, resp.Body.String())
	}
	var job struct {
		ID string `json:"id"`
	}
	decode(t, resp, &job)

	resp = call(t, app.Router, http.MethodPost, "/api/v1/jobs/score", user, gin.H{"resumeId": created.ID, "jobId": job.ID})
	if resp.Code != http.StatusOK {
		t.Fatalf("score %d: %s", resp.Code, resp.Body.String())
	}
	var result struct {
		Score           int      `json:"score"`
		MissingKeywords []string `json:"missingKeywords"`
	}
	decode(t, resp, &result)
	if result.Score != 67 || len(result.MissingKeywords) != 1 || result.MissingKeywords[0] != "Kubernetes" {
		t.Fatalf("unexpected score %+v", result)
	}

	resp = call(t, app.Router, http.MethodPost, "/api/v1/ai/optimize", user, gin.H{"bulletPoints": []string{"Built APIs"}})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("ai on free tier: %d", resp.Code)
	}

	resp = call(t, app.Router, http.MethodPost, "/api/v1/resumes/"+created.ID+"/export", user, nil)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("export with broken printer: %d", resp.Code)
	}

	resp = call(t, app.Router, http.MethodPost, "/api/v1/billing/confirm", user, gin.H{"sessionId": "cs_1"})
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("billing without provider: %d", resp.Code)
	}

	resp = call(t, app.Router, http.MethodGet, "/api/v1/me", user, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("me %d: %s", resp.Code, resp.Body.String())
	}
	var me struct {
		Tier        string `json:"tier"`
		ResumeCount int    `json:"resumeCount"`
	}
	decode(t, resp, &me)
	if me.Tier != "free" || me.ResumeCount != 1 {
		t.Fatalf("unexpected /me %+v", me)
	}
}

func TestBuildRejectsIncompleteS3Config(t *testing.T) {
	_, err := BuildWith(context.Background(), config.Config{Env: "dev", ObjectStoreType: "s3"}, Options{LLM: llm.Disabled{}, Printer: failingPrinter{}})
	if err == nil {
		t.Fatalf("expected error for s3 without bucket")
	}
}

func TestProductionRequiresDatabase(t *testing.T) {
	_, err := BuildWith(context.Background(), config.Config{Env: "production"}, Options{LLM: llm.Disabled{}, Printer: failingPrinter{}})
	if err == nil {
		t.Fatalf("expected DATABASE_URL error")
	}
}
