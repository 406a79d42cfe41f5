package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
)

type contextKey string

const (
	// UserContextKey is the context key for storing the authenticated user
	UserContextKey contextKey = "user"

	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "thriftalley_session"
)

// SessionToken extracts the session token from the Authorization header
// (Bearer scheme) or the session cookie. Header wins when both are present.
func SessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// WithUser extracts the user from the session token and adds it to the request context.
// This middleware is optional - it adds the user if present but doesn't require authentication
func WithUser(userService domain.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				// No session, continue without user
				next.ServeHTTP(w, r)
				return
			}

			// Get user from session
			user, err := userService.GetUserBySessionToken(r.Context(), token)
			if err != nil {
				// Invalid session, continue without user
				next.ServeHTTP(w, r)
				return
			}

			// Add user to context
			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the user is authenticated, returning 401 if not
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			respondUnauthorized(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retrieves the user from the request context
// Returns nil if no user is authenticated
func GetUserFromContext(ctx context.Context) *domain.User {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
