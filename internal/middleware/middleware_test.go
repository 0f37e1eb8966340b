package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/invotrack/invotrack/internal/auth"
)

func TestLoggingSetsRequestID(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invoices", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status not passed through: got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header")
	}
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("middleware-test-secret", time.Hour)

	var seenUserID int64
	handler := RequireAuth(jwtManager, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r.Context())
		if !ok {
			t.Error("expected user ID in context")
		}
		seenUserID = id
	}))

	t.Run("valid token passes user ID through", func(t *testing.T) {
		token, err := jwtManager.Issue(7)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("got %d, want 200", rec.Code)
		}
		if seenUserID != 7 {
			t.Errorf("user ID mismatch: got %d, want 7", seenUserID)
		}
	})

	t.Run("rejections are JSON with a message", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got %d, want 401", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: got %s", ct)
		}
		if !strings.Contains(rec.Body.String(), "message") {
			t.Errorf("expected message field, got %s", rec.Body.String())
		}
	})
}

func TestMetricsHandlerServes(t *testing.T) {
	instrumented := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	instrumented.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invoices", nil))

	rec = httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics endpoint: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invotrack_http_requests_total") {
		t.Error("expected http request counter in metrics output")
	}
}
