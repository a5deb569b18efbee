package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithOfficer(req *http.Request, officerID int64) *http.Request {
	ctx := context.WithValue(req.Context(), OfficerIDKey, officerID)
	return req.WithContext(ctx)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow(1) {
			t.Errorf("Request %d should be allowed within burst", i+1)
		}
	}
	if rl.Allow(1) {
		t.Error("Request beyond burst should be denied")
	}
}

func TestRateLimiter_PerOfficerIsolation(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	if !rl.Allow(1) {
		t.Error("First request for officer 1 should be allowed")
	}
	if rl.Allow(1) {
		t.Error("Second request for officer 1 should be denied")
	}
	if !rl.Allow(2) {
		t.Error("Officer 2 should have its own limiter")
	}
}

func TestRateLimitMiddleware_Exceeded(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}
	mw := RateLimitMiddleware(rl)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)
	req = contextWithOfficer(req, 5)
	rec := httptest.NewRecorder()
	if err := mw(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("Expected rate limit headers on success")
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)
	req = contextWithOfficer(req, 5)
	if err := mw(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
}

func TestRateLimitMiddleware_SkipsUnauthenticated(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}
	mw := RateLimitMiddleware(rl)(handler)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		if err := mw(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Unauthenticated request %d should not be rate limited", i+1)
		}
	}
}
