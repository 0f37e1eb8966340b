package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/invotrack/invotrack/internal/auth"
	"github.com/invotrack/invotrack/internal/httpapi/respond"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// userIDKey is the context key for storing the authenticated user ID.
const userIDKey contextKey = "user_id"

// UserID extracts the authenticated user ID from the context.
// The second return is false if the request did not pass RequireAuth.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID returns a context carrying the authenticated user ID.
// Exported for handler tests.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequireAuth wraps a handler so it only runs for requests carrying a valid
// bearer token. The token is validated before the handler can touch any
// state; on failure the request is rejected with 401 and no side effects.
func RequireAuth(jwtManager *auth.JWTManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respond.Error(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respond.Error(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}

		userID, err := jwtManager.Validate(parts[1])
		if err != nil {
			msg := auth.ErrInvalidToken.Error()
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = auth.ErrExpiredToken.Error()
			}
			respond.Error(w, http.StatusUnauthorized, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}
