package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id between client, proxy, and
	// server.
	RequestIDHeader = "X-Request-ID"

	// RequestIDContextKey is the context key for the request id
	RequestIDContextKey contextKey = "request_id"
)

// RequestID tags every request with a UUID. An incoming X-Request-ID set by
// an upstream proxy is kept only if it parses as a UUID; anything else is
// replaced so clients cannot inject arbitrary strings into log lines.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), RequestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request id from the context, or "" when the
// middleware did not run.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}
