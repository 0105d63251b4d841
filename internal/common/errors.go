// Package common defines shared constants and sentinel errors used across
// the receipt service layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrorDuplicateName   = errors.New("name already exists")
	ErrorAccountNotFound = errors.New("account does not exist")

	// Service-level errors. ErrorStorage is what callers see for any
	// transaction or connectivity failure; the cause is only logged.
	ErrorStorage      = errors.New("storage error")
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
