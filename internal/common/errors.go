// Package common defines the sentinel errors shared across the identity
// backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorUnsupported  = errors.New("operation not supported")

	// Validation errors (malformed input caught at the boundary).
	ErrorValidation = errors.New("validation error")
)
