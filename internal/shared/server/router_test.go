package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/config"
)

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	rg.POST("/jobs/analyze", ok)
	rg.POST("/jobs/score", ok)
	rg.POST("/resumes/:id/export", ok)
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		Config:   config.Config{Env: "dev", RateLimitDefault: 5, RateLimitAI: 1},
		Handlers: []RouteRegistrar{pingRoutes{}},
	})
}

func hit(r http.Handler, method, path string) int {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp.Code
}

func TestHealth(t *testing.T) {
	if code := hit(newRouter(t), http.MethodGet, "/api/v1/health"); code != http.StatusOK {
		t.Fatalf("health status %d", code)
	}
}

func TestAIRoutesUseStricterLimit(t *testing.T) {
	r := newRouter(t)

	if code := hit(r, http.MethodPost, "/api/v1/jobs/analyze"); code != http.StatusNoContent {
		t.Fatalf("first analyze: %d", code)
	}
	if code := hit(r, http.MethodPost, "/api/v1/resumes/r1/export"); code != http.StatusTooManyRequests {
		t.Fatalf("second AI call should be limited, got %d", code)
	}
	for i := 0; i < 5; i++ {
		if code := hit(r, http.MethodPost, "/api/v1/jobs/score"); code != http.StatusNoContent {
			t.Fatalf("score #%d: %d", i, code)
		}
	}
	if code := hit(r, http.MethodPost, "/api/v1/jobs/score"); code != http.StatusTooManyRequests {
		t.Fatalf("default group should be limited, got %d", code)
	}
}

func TestAddr(t *testing.T) {
	for in, want := range map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"} {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
