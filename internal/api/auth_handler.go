package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shrhawk/sprintsync-api/internal/api/middleware"
	"github.com/shrhawk/sprintsync-api/internal/api/shared"
	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/platform/logger"
	"github.com/shrhawk/sprintsync-api/internal/service/auth"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

// AuthHandler serves registration, login, and token refresh.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	tokenLifetime    time.Duration
	validate         *validator.Validate
	logger           *slog.Logger
}

// NewAuthHandler creates an AuthHandler with its dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
	tokenLifetime time.Duration,
	validate *validator.Validate,
	baseLogger *slog.Logger,
) *AuthHandler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		tokenLifetime:    tokenLifetime,
		validate:         validate,
		logger:           baseLogger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, ValidationErrorMessage(err))
		return
	}

	user, err := domain.NewUser(req.Email, req.FullName, req.Password)
	if err != nil {
		respondMappedError(w, r, log, err, "User not found")
		return
	}

	hash, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	user.PasswordHash = hash

	if err := h.userStore.Create(r.Context(), user); err != nil {
		respondMappedError(w, r, log, err, "User not found")
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, http.StatusCreated, NewUserResponse(user))
}

// Login handles POST /auth/login. The body is an OAuth2 password form:
// the username field carries the email address.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), email)
	if err != nil {
		if store.IsNotFoundError(err) {
			h.respondBadCredentials(w, r)
			return
		}
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.passwordVerifier.Compare(user.PasswordHash, password); err != nil {
		h.respondBadCredentials(w, r)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, h.tokenLifetime)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	userResp := NewUserResponse(user)
	shared.RespondWithJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        &userResp,
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}
	shared.RespondWithJSON(w, http.StatusOK, NewUserResponse(user))
}

// Refresh handles POST /auth/refresh, issuing a fresh token for the
// authenticated user.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, h.tokenLifetime)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *AuthHandler) respondBadCredentials(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	shared.RespondWithError(w, r, http.StatusUnauthorized, "Incorrect email or password")
}
