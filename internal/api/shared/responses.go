package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shrhawk/sprintsync-api/internal/redact"
)

// ErrorResponse is the standard error body returned by every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RespondWithJSON writes data as a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already written, nothing more we can do for the client.
		slog.Default().Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithError writes a standard error body with the given status code.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, status, ErrorResponse{Detail: message})
}

// RespondWithErrorAndLog logs the underlying error with redaction applied,
// then writes a safe message to the client. The logged error never reaches
// the response body.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, status int, message string) {
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{
		slog.Int("status", status),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", redact.Error(err)))
	}
	if traceID := GetTraceID(r.Context()); traceID != "" {
		attrs = append(attrs, slog.String("trace_id", traceID))
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}

	RespondWithError(w, r, status, message)
}
