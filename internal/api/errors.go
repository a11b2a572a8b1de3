package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shrhawk/sprintsync-api/internal/api/shared"
	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

// MapErrorToStatusCode translates domain and store sentinel errors into HTTP
// status codes. Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondMappedError maps err through MapErrorToStatusCode and writes the
// route's response. Not-found wording varies by route, so the caller
// supplies it; the only duplicate in the system is a taken email, and
// validation sentinels carry text safe to return. Anything unrecognized is
// logged in full and answered with a generic 500 body.
func respondMappedError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, notFoundMessage string) {
	switch status := MapErrorToStatusCode(err); status {
	case http.StatusNotFound:
		shared.RespondWithError(w, r, status, notFoundMessage)
	case http.StatusBadRequest:
		shared.RespondWithError(w, r, status, "Email already registered")
	case http.StatusUnprocessableEntity:
		shared.RespondWithError(w, r, status, err.Error())
	default:
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
	}
}

// ValidationErrorMessage renders a validator failure as a client-facing
// message. Non-validator errors get a generic wording so internals never
// leak into responses.
func ValidationErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "Invalid request payload"
	}

	parts := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		parts = append(parts, fieldMessage(fieldErr))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fieldErr.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
