package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/shrhawk/sprintsync-api/internal/api/shared"
	"github.com/shrhawk/sprintsync-api/internal/domain"
)

// newTestUser builds a valid user for handler tests.
func newTestUser(t *testing.T, email string, isAdmin bool) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "Test User", "password123")
	require.NoError(t, err)
	user.PasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
	user.IsAdmin = isAdmin
	return user
}

// newAuthenticatedRequest builds a request with an optional JSON body, the
// given user injected as the authenticated principal, and chi URL params.
func newAuthenticatedRequest(t *testing.T, method, target string, body interface{}, user *domain.User, params map[string]string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := req.Context()
	if user != nil {
		ctx = context.WithValue(ctx, shared.UserContextKey, user)
	}
	if len(params) > 0 {
		routeCtx := chi.NewRouteContext()
		for key, value := range params {
			routeCtx.URLParams.Add(key, value)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}
	return req.WithContext(ctx)
}

// decodeResponse unmarshals the recorded JSON body into dst.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// errorDetail extracts the detail message from a recorded error body.
func errorDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.ErrorResponse
	decodeResponse(t, rec, &body)
	return body.Detail
}
