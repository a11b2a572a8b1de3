// Package domain defines the core business entities and errors.
package domain

import "errors"

// ErrValidation is the sentinel every entity validation error wraps, so
// callers can match the whole family with errors.Is.
var ErrValidation = errors.New("validation failed")
