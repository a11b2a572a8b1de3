package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/mocks"
	"github.com/shrhawk/sprintsync-api/internal/service/auth"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

func newAuthHandlerForTest(userStore *mocks.MockUserStore) *AuthHandler {
	if userStore == nil {
		userStore = &mocks.MockUserStore{}
	}
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	jwtService := &mocks.MockJWTService{Token: "signed-token"}
	return NewAuthHandler(userStore, jwtService, hasher, hasher, time.Hour, NewValidator(), nil)
}

func loginForm(username, password string) *http.Request {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestRegisterCreatesUser(t *testing.T) {
	var created *domain.User
	userStore := &mocks.MockUserStore{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}
	handler := newAuthHandlerForTest(userStore)

	req := newAuthenticatedRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"email":     "new@example.com",
		"full_name": "New User",
		"password":  "password123",
	}, nil, nil)
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, "new@example.com", created.Email)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.False(t, created.IsAdmin)

	var resp UserResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "new@example.com", resp.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userStore := &mocks.MockUserStore{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			return store.ErrEmailExists
		},
	}
	handler := newAuthHandlerForTest(userStore)

	req := newAuthenticatedRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"email":     "taken@example.com",
		"full_name": "New User",
		"password":  "password123",
	}, nil, nil)
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", errorDetail(t, rec))
}

func TestRegisterValidation(t *testing.T) {
	handler := newAuthHandlerForTest(nil)

	req := newAuthenticatedRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"email":     "not-an-email",
		"full_name": "New User",
		"password":  "password123",
	}, nil, nil)
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLoginSuccess(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	user := newTestUser(t, "login@example.com", false)
	user.PasswordHash = hash
	handler := newAuthHandlerForTest(&mocks.MockUserStore{User: user})

	rec := httptest.NewRecorder()
	handler.Login(rec, loginForm("login@example.com", "password123"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp LoginResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	require.NotNil(t, resp.User)
	assert.Equal(t, "login@example.com", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	user := newTestUser(t, "login@example.com", false)
	user.PasswordHash = hash
	handler := newAuthHandlerForTest(&mocks.MockUserStore{User: user})

	rec := httptest.NewRecorder()
	handler.Login(rec, loginForm("login@example.com", "wrong-password"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", errorDetail(t, rec))
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestLoginUnknownEmail(t *testing.T) {
	handler := newAuthHandlerForTest(&mocks.MockUserStore{})

	rec := httptest.NewRecorder()
	handler.Login(rec, loginForm("nobody@example.com", "password123"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", errorDetail(t, rec))
}

func TestLoginMissingFields(t *testing.T) {
	handler := newAuthHandlerForTest(nil)

	rec := httptest.NewRecorder()
	handler.Login(rec, loginForm("", ""))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	user := newTestUser(t, "me@example.com", false)
	handler := newAuthHandlerForTest(nil)

	req := newAuthenticatedRequest(t, http.MethodGet, "/auth/me", nil, user, nil)
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp UserResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, user.ID, resp.ID)
}

func TestRefreshOmitsUser(t *testing.T) {
	user := newTestUser(t, "me@example.com", false)
	handler := newAuthHandlerForTest(nil)

	req := newAuthenticatedRequest(t, http.MethodPost, "/auth/refresh", nil, user, nil)
	rec := httptest.NewRecorder()
	handler.Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"user"`)

	var resp LoginResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Nil(t, resp.User)
}
