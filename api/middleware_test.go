package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/capeval/internal/config"
)

func TestNewServerRequiresAuthConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("CAPEVAL_API_KEY", "")
	t.Setenv("CAPEVAL_DISABLE_AUTH", "")

	if _, err := NewServer(config.Default(), &fakeStore{}, &fakeProvider{}); err == nil {
		t.Fatal("expected error without auth configuration")
	}
}

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("CAPEVAL_API_KEY", "secret")
	t.Setenv("CAPEVAL_DISABLE_AUTH", "")

	s, err := NewServer(config.Default(), &fakeStore{}, &fakeProvider{})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without key: got %d want %d", rec.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key: got %d want %d", rec.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid key: got %d want %d", rec.Code, http.StatusOK)
	}
}

func TestCORSOrigins(t *testing.T) {
	t.Parallel()

	allowAll, origins := corsOrigins("*")
	if !allowAll {
		t.Fatal("bare * should allow every origin")
	}
	if origins != nil {
		t.Fatalf("allow-all origin set = %v, want nil", origins)
	}

	allowAll, origins = corsOrigins("https://a.example.com, , https://b.example.com")
	if allowAll {
		t.Fatal("explicit list should not allow every origin")
	}
	if len(origins) != 2 {
		t.Fatalf("origin set = %v, want two entries", origins)
	}
	if _, ok := origins["https://b.example.com"]; !ok {
		t.Fatal("trimmed origin missing from set")
	}

	if allowAll, _ = corsOrigins("https://a.example.com,*"); !allowAll {
		t.Fatal("* anywhere in the list should allow every origin")
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("CAPEVAL_API_KEY", "")
	t.Setenv("CAPEVAL_DISABLE_AUTH", "true")
	t.Setenv("CAPEVAL_CORS_ORIGINS", "https://eval.example.com")

	s, err := NewServer(config.Default(), &fakeStore{}, &fakeProvider{})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://eval.example.com")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://eval.example.com" {
		t.Fatalf("allow-origin: got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://other.example.com")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin for denied origin: %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", "https://eval.example.com")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status: got %d want %d", rec.Code, http.StatusNoContent)
	}
}
