// Package apperr defines the three error kinds every domain service
// reports: a referenced entity is absent, a write collides with an
// existing row, or a field combination is malformed. Services build
// these with a human-readable message; handlers unwrap the kind to
// pick an HTTP status.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing referenced entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness or cross-owner violation.
	ErrConflict = errors.New("conflict")
	// ErrValidation marks a malformed field combination.
	ErrValidation = errors.New("validation failed")
)

// Error carries a caller-facing message tagged with one of the
// sentinel kinds.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// NotFound builds a missing-entity error.
func NotFound(format string, args ...interface{}) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a uniqueness/ownership error.
func Conflict(format string, args ...interface{}) error {
	return &Error{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

// Validation builds a malformed-input error.
func Validation(format string, args ...interface{}) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err wraps ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation reports whether err wraps ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
