// Package errs holds the error values shared between the core packages and
// the HTTP layer. Everything below the handlers wraps these with %w and the
// handlers map them back with errors.Is.
package errs

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("user account is inactive")
	ErrDuplicateEmail     = errors.New("email already registered")

	ErrUnauthenticated = errors.New("authorization token invalid")
	ErrForbidden       = errors.New("insufficient permissions")

	ErrValidationRejected = errors.New("validation rejected")
	ErrSizeExceeded       = errors.New("file too large")

	ErrNotFound = errors.New("not found")

	// ErrStorageFailure marks I/O errors on the storage backend. Callers may retry.
	ErrStorageFailure = errors.New("storage failure")
)
