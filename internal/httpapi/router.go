// Package httpapi maps HTTP requests onto store operations.
//
// Each request moves through a fixed pipeline: token validation (for
// protected routes), body validation, store execution, response. A failure
// at any stage short-circuits to a JSON error response; nothing is retried.
package httpapi

import (
	"net/http"

	"github.com/invotrack/invotrack/internal/auth"
	"github.com/invotrack/invotrack/internal/middleware"
)

// NewRouter builds the route table. Method-qualified patterns make the mux
// answer 405 for wrong methods on known paths.
func NewRouter(authH *AuthHandler, invH *InvoiceHandler, healthH *HealthHandler, jwtManager *auth.JWTManager) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", authH.Register)
	mux.HandleFunc("POST /login", authH.Login)

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(jwtManager, h)
	}

	mux.Handle("GET /me", protected(authH.Me))
	mux.Handle("GET /invoices", protected(invH.List))
	mux.Handle("POST /invoices", protected(invH.Create))
	mux.Handle("GET /invoices/{id}", protected(invH.Get))
	mux.Handle("PUT /invoices/{id}", protected(invH.Update))
	mux.Handle("DELETE /invoices/{id}", protected(invH.Delete))

	mux.HandleFunc("GET /healthz", healthH.Check)
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	return mux
}
