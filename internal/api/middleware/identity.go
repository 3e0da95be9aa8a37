package middleware

import (
	"context"
	"net/http"
)

// Identity headers set by the upstream gateway after token verification.
// This service trusts them; it never sees credentials.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "user_role"
)

// IdentityMiddleware extracts the caller identity from gateway headers into
// the request context. Requests without identity still pass through; role
// enforcement happens per-handler via RequireRole.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if userID := r.Header.Get(HeaderUserID); userID != "" {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}
		if role := r.Header.Get(HeaderUserRole); role != "" {
			ctx = context.WithValue(ctx, userRoleKey, role)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the caller's user ID, or "" when unauthenticated
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// UserRole returns the caller's role, or "" when unauthenticated
func UserRole(ctx context.Context) string {
	if role, ok := ctx.Value(userRoleKey).(string); ok {
		return role
	}
	return ""
}
