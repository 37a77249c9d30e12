package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	owner := "anna@example.com"

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow(owner) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	if rl.Allow(owner) {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentOwners(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	owner1 := "anna@example.com"
	owner2 := "bea@example.com"

	// Exhaust owner1's burst
	for i := 0; i < 3; i++ {
		if !rl.Allow(owner1) {
			t.Errorf("Owner1 request %d should be allowed", i+1)
		}
	}

	// Owner1 should be rate limited
	if rl.Allow(owner1) {
		t.Error("Owner1 should be rate limited")
	}

	// Owner2 should still have its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow(owner2) {
			t.Errorf("Owner2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimitMiddleware_SkipsAnonymous(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		return c.String(http.StatusOK, "OK")
	}

	// No owner email in context - should pass through without rate limiting
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/prestations", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		handlerCalled = false

		err := RateLimitMiddleware(rl)(handler)(c)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !handlerCalled {
			t.Error("Handler should be called for anonymous requests")
		}
	}
}

func TestRateLimitMiddleware_LimitsOwner(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 2) // Small burst for testing
	defer rl.Stop()

	owner := "anna@example.com"
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	newOwnerContext := func() (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/prestations", nil)
		rec := httptest.NewRecorder()
		ctx := context.WithValue(req.Context(), OwnerEmailKey, owner)
		return e.NewContext(req.WithContext(ctx), rec), rec
	}

	// First 2 requests should succeed (burst)
	for i := 0; i < 2; i++ {
		c, rec := newOwnerContext()
		if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: expected 200, got %d", i+1, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Remaining") == "" {
			t.Error("Expected X-RateLimit-Remaining header")
		}
	}

	// Third request should be rejected
	c, rec := newOwnerContext()
	if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
}
