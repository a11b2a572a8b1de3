package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shrhawk/sprintsync-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user's PasswordHash must
	// already be set; plaintext passwords are never persisted.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)

	// Update persists the user's current email, full name, password hash,
	// admin flag, and active flag, bumping the updated timestamp.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists when updating to an email already in use.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user and, via the schema's cascade, the tasks they
	// created. Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the provided transaction so
	// multiple operations can commit atomically.
	WithTx(tx *sql.Tx) UserStore
}
