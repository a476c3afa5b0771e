package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestAppendToken(t *testing.T) {
	got, err := appendToken("https://app.example/auth?next=%2Fresumes", "abc")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Query().Get("token") != "abc" || u.Query().Get("next") != "/resumes" {
		t.Fatalf("unexpected url %s", got)
	}
	if _, err := appendToken("", "abc"); err == nil {
		t.Fatalf("expected error for empty redirect")
	}
}

func TestStateStoreConsumesOnce(t *testing.T) {
	s := newStateStore()
	s.put("live", time.Now().Add(time.Minute))
	s.put("stale", time.Now().Add(-time.Minute))

	if !s.consume("live") {
		t.Fatalf("live state rejected")
	}
	if s.consume("live") {
		t.Fatalf("state reused")
	}
	if s.consume("stale") {
		t.Fatalf("expired state accepted")
	}
}

func TestUserInfoToUser(t *testing.T) {
	u := googleUserInfo{Sub: "42", Email: "a@example.com", Name: "Ada L", GivenName: "Ada", Picture: "https://img"}.toUser()
	if u.ID != "google:42" || u.FullName != "Ada L" || u.GivenName != "Ada" || u.PictureURL != "https://img" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestStartRedirectsToGoogle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewGoogleService("client", "secret", "http://localhost/cb", "http://localhost/ui", nil).RegisterRoutes(r.Group("/api/v1"))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil))
	if resp.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); !strings.HasPrefix(loc, "https://accounts.google.com/") || !strings.Contains(loc, "state=") {
		t.Fatalf("unexpected location %s", loc)
	}
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewGoogleService("client", "secret", "http://localhost/cb", "http://localhost/ui", nil).RegisterRoutes(r.Group("/api/v1"))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=nope&code=x", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
