// Package middleware contains HTTP middleware for authentication,
// authorization, and request tracing.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shrhawk/sprintsync-api/internal/api/shared"
	"github.com/shrhawk/sprintsync-api/internal/platform/logger"
)

// TraceHeaderName is the response header carrying the request trace ID.
const TraceHeaderName = "X-Trace-ID"

// NewTraceMiddleware assigns each request a trace ID, attaches a logger
// carrying that ID to the request context, and logs request completion.
func NewTraceMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceHeaderName)
			if traceID == "" {
				traceID = uuid.New().String()
			}
			w.Header().Set(TraceHeaderName, traceID)

			requestLogger := baseLogger.With(slog.String("trace_id", traceID))
			r = shared.WithTraceID(r, traceID)
			r = r.WithContext(logger.WithLogger(r.Context(), requestLogger))

			start := time.Now()
			next.ServeHTTP(w, r)

			requestLogger.Debug("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
