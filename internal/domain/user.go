package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User validation errors. All wrap ErrValidation.
var (
	ErrEmptyUserID       = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyEmail        = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail      = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyFullName     = fmt.Errorf("%w: full name cannot be empty", ErrValidation)
	ErrFullNameTooLong   = fmt.Errorf("%w: full name must be at most 100 characters long", ErrValidation)
	ErrPasswordTooShort  = fmt.Errorf("%w: password must be at least 6 characters long", ErrValidation)
	ErrPasswordTooLong   = fmt.Errorf("%w: password must be at most 100 characters long", ErrValidation)
	ErrEmptyPasswordHash = fmt.Errorf("%w: password hash cannot be empty", ErrValidation)
)

// User represents a registered account.
// It contains essential profile information and authentication details.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Password     string    `json:"-"` // Plaintext, only populated transiently during create/update
	PasswordHash string    `json:"-"` // Never expose the hash in JSON
	IsAdmin      bool      `json:"is_admin"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email, full name, and plaintext
// password. It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(email, fullName, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  fullName,
		Password:  password,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns a sentinel error for the first field that fails.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if strings.TrimSpace(u.FullName) == "" {
		return ErrEmptyFullName
	}
	if len(u.FullName) > 100 {
		return ErrFullNameTooLong
	}

	if u.Password != "" {
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 100 {
			return ErrPasswordTooLong
		}
	} else if u.PasswordHash == "" {
		// Users loaded from storage carry only the hash.
		return ErrEmptyPasswordHash
	}

	return nil
}

// validEmailFormat performs a structural check of the email address:
// a local part, a single @, and a dotted domain part.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}

	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
