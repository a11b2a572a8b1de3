package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shrhawk/sprintsync-api/internal/api/middleware"
	"github.com/shrhawk/sprintsync-api/internal/api/shared"
	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/platform/logger"
	"github.com/shrhawk/sprintsync-api/internal/service/auth"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

// UserHandler serves user profile and admin user-management endpoints.
type UserHandler struct {
	userStore      store.UserStore
	passwordHasher auth.PasswordHasher
	validate       *validator.Validate
	logger         *slog.Logger
}

// NewUserHandler creates a UserHandler with its dependencies.
func NewUserHandler(
	userStore store.UserStore,
	passwordHasher auth.PasswordHasher,
	validate *validator.Validate,
	baseLogger *slog.Logger,
) *UserHandler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	return &UserHandler{
		userStore:      userStore,
		passwordHasher: passwordHasher,
		validate:       validate,
		logger:         baseLogger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /users (admin only).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	users, err := h.userStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, NewUserResponse(u))
	}
	shared.RespondWithJSON(w, http.StatusOK, responses)
}

// Create handles POST /users (admin only). Unlike self-registration it can
// grant the admin flag.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req UserCreateRequest
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
	user.IsAdmin = req.IsAdmin

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

	log.Info("user created", slog.String("user_id", user.ID.String()),
		slog.Bool("is_admin", user.IsAdmin))
	shared.RespondWithJSON(w, http.StatusCreated, NewUserResponse(user))
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}
	shared.RespondWithJSON(w, http.StatusOK, NewUserResponse(user))
}

// UpdateMe handles PUT /users/me.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}
	h.applyUpdate(w, r, user)
}

// Get handles GET /users/{userID} (admin only).
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		respondMappedError(w, r, log, err, "User not found")
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, NewUserResponse(user))
}

// Update handles PUT /users/{userID} (admin only).
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		respondMappedError(w, r, log, err, "User not found")
		return
	}

	h.applyUpdate(w, r, user)
}

// Delete handles DELETE /users/{userID} (admin only). Admin accounts cannot
// be deleted through the API.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		respondMappedError(w, r, log, err, "User not found")
		return
	}

	if user.IsAdmin {
		shared.RespondWithError(w, r, http.StatusForbidden, "Cannot delete admin users")
		return
	}

	if err := h.userStore.Delete(r.Context(), userID); err != nil {
		respondMappedError(w, r, log, err, "User not found")
		return
	}

	log.Info("user deleted", slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, http.StatusNoContent, nil)
}

// applyUpdate merges an allow-listed set of fields into the given user and
// persists the result. Email changes are checked for uniqueness, passwords
// are re-hashed.
func (h *UserHandler) applyUpdate(w http.ResponseWriter, r *http.Request, user *domain.User) {
	log := logger.FromContext(r.Context())

	var req UserUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, ValidationErrorMessage(err))
		return
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := h.userStore.GetByEmail(r.Context(), *req.Email); err == nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Email already registered")
			return
		} else if !store.IsNotFoundError(err) {
			shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
			return
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hash, err := h.passwordHasher.Hash(*req.Password)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
			return
		}
		user.PasswordHash = hash
	}

	if err := h.userStore.Update(r.Context(), user); err != nil {
		respondMappedError(w, r, log, err, "User not found")
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, NewUserResponse(user))
}

func parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		return uuid.Nil, false
	}
	return id, true
}
