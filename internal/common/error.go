// Package common defines shared constants and sentinel errors used across
// accountdesk components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound           = errors.New("not found")
	ErrorDuplicateEmail     = errors.New("email already registered")
	ErrorStorageUnavailable = errors.New("storage unavailable")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Account lifecycle errors. ErrorInvalidCredentials deliberately covers
	// both "no such user" and "wrong password" so callers cannot enumerate
	// registered emails.
	ErrorInvalidCredentials    = errors.New("invalid email/password")
	ErrorInvalidOrExpiredToken = errors.New("invalid or expired token")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")
)
