package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	// Validation failures, raised at value-object construction.
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrWeakPassword   = errors.New("password must be at least 8 characters with one uppercase letter, one lowercase letter and one digit")
	ErrEmptyHash      = errors.New("password hash cannot be empty")
	ErrInvalidID      = errors.New("invalid identifier format")
	ErrMalformedToken = errors.New("malformed token")

	// Authentication failures. Wrong password and nonexistent user both
	// surface ErrInvalidCredentials so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("user account is inactive")
	ErrPasswordMismatch   = errors.New("current password is incorrect")

	ErrEmailTaken = errors.New("user with this email already exists")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionInvalid  = errors.New("session is invalid")

	// Token signature/decoding failures from the token service.
	ErrInvalidToken = errors.New("invalid or expired token")
)
