// Package common defines shared constants and sentinel errors used across
// the client and server layers of the blog service. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Registration errors.
	ErrEmailTaken        = errors.New("Email is already registered")
	ErrPasswordsMismatch = errors.New("Passwords do not match")

	// Login errors.
	ErrUserNotFound      = errors.New("User with this email does not exist")
	ErrIncorrectPassword = errors.New("Incorrect password")

	// Auth gate errors. Expired, malformed and badly signed tokens all
	// collapse into ErrInvalidToken.
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidToken      = errors.New("invalid token")

	// Ownership errors. A resource that does not exist and a resource owned
	// by someone else are reported identically.
	ErrNotFoundOrUnauthorized = errors.New("not found or unauthorized")

	// Upload errors.
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrUploadTooLarge   = errors.New("upload too large")
)

// ValidationError is a client mistake whose message is safe to return as is.
// It matches ErrorValidation under errors.Is.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrorValidation }
