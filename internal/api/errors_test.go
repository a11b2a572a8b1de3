package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"bare not found", store.ErrNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusUnprocessableEntity},
		{"domain validation", domain.ErrEmptyTitle, http.StatusUnprocessableEntity},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantStatus, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCodeUnwrapsChains(t *testing.T) {
	wrapped := fmt.Errorf("updating task: %w", store.ErrTaskNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(wrapped))

	nested := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", store.ErrEmailExists))
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(nested))

	// String concatenation loses the sentinel.
	concatenated := errors.New("updating task: " + store.ErrTaskNotFound.Error())
	assert.Equal(t, http.StatusInternalServerError, MapErrorToStatusCode(concatenated))
}

func TestRespondMappedError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"not found uses route wording", store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"duplicate email", store.ErrEmailExists, http.StatusBadRequest, "Email already registered"},
		{"validation carries sentinel text", domain.ErrEmptyTitle, http.StatusUnprocessableEntity, domain.ErrEmptyTitle.Error()},
		{"unknown stays generic", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)

			respondMappedError(rec, req, nil, tc.err, "Task not found")

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantDetail, errorDetail(t, rec))
		})
	}
}

func TestDomainValidationErrorsWrapSentinel(t *testing.T) {
	for _, err := range []error{
		domain.ErrEmptyTitle,
		domain.ErrInvalidStatus,
		domain.ErrInvalidTimeIncrement,
		domain.ErrEmptyEmail,
		domain.ErrPasswordTooShort,
	} {
		assert.ErrorIs(t, err, domain.ErrValidation, "sentinel %v", err)
	}
}
