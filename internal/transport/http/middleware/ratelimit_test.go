package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leaveadmin/internal/domain/auth"
)

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	handler := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestRateLimitKeysByEmployee(t *testing.T) {
	handler := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(employeeID string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req = req.WithContext(WithUser(req.Context(), auth.UserContext{EmployeeID: employeeID, Role: auth.RoleEmployee}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("e1"); code != http.StatusOK {
		t.Fatalf("first e1 request = %d", code)
	}
	if code := send("e1"); code != http.StatusTooManyRequests {
		t.Fatalf("second e1 request = %d, want 429", code)
	}
	// A different employee from the same IP has an independent budget.
	if code := send("e2"); code != http.StatusOK {
		t.Fatalf("first e2 request = %d, want 200", code)
	}
}

func TestLoginRateLimitKeysByEmail(t *testing.T) {
	handler := LoginRateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip, email string) int {
		body := strings.NewReader(`{"email":"` + email + `","password":"x"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("10.0.0.1", "a@example.com"); code != http.StatusOK {
		t.Fatalf("first attempt = %d", code)
	}
	// Same email from a different IP still hits the per-email bucket.
	if code := send("10.0.0.2", "a@example.com"); code != http.StatusTooManyRequests {
		t.Fatalf("second attempt = %d, want 429", code)
	}
}
