// Package shared provides helpers used across API handlers and middleware.
package shared

import (
	"context"
	"net/http"
)

type contextKey string

// UserContextKey is the context key under which authentication middleware
// stores the authenticated *domain.User.
const UserContextKey contextKey = "user"

// TraceIDKey is the context key for the per-request trace ID.
const TraceIDKey contextKey = "trace_id"

// WithTraceID returns a copy of the request with the trace ID stored in its
// context.
func WithTraceID(r *http.Request, traceID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), TraceIDKey, traceID))
}

// GetTraceID extracts the trace ID from the context, returning an empty
// string when none is set.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}
