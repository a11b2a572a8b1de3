package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shrhawk/sprintsync-api/internal/api/shared"
	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/platform/logger"
	"github.com/shrhawk/sprintsync-api/internal/service/auth"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

const adminRequiredMessage = "The user doesn't have enough privileges"

// AuthMiddleware validates bearer tokens and resolves the authenticated user.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates an AuthMiddleware backed by the given token
// validator and user store.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate requires a valid bearer token resolving to an active user.
// Every failure mode maps to 401: a missing or malformed header, an invalid
// or expired token, an unknown user, and a deactivated account all look the
// same to the client. On success the user is stored in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		tokenString, err := extractBearerToken(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), tokenString)
		if err != nil {
			log.Debug("token validation failed", slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if store.IsNotFoundError(err) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Could not validate credentials")
				return
			}
			shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
			return
		}

		if !user.IsActive {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Inactive user")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin users with 403. It must run after
// Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if !user.IsAdmin {
			shared.RespondWithError(w, r, http.StatusForbidden, adminRequiredMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user stored by Authenticate.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(shared.UserContextKey).(*domain.User)
	return user, ok
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}
