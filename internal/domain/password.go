package domain

import (
	"unicode"

	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

// MinPasswordLength is the minimum accepted plaintext password length.
const MinPasswordLength = 8

// Password is a transient plaintext password. It exists only during
// registration and authentication and is never persisted. Its String
// form is masked so it cannot leak through logs.
type Password struct {
	value string
}

// NewPassword validates password strength: minimum length plus at least
// one uppercase letter, one lowercase letter and one digit.
func NewPassword(s string) (Password, error) {
	if len(s) < MinPasswordLength {
		return Password{}, domerrors.ErrWeakPassword
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return Password{}, domerrors.ErrWeakPassword
	}
	return Password{value: s}, nil
}

// Value returns the plaintext. Only hashers should call this.
func (p Password) Value() string { return p.value }

func (p Password) String() string { return "********" }

// PasswordHash is an opaque one-way digest of a Password.
type PasswordHash struct {
	value string
}

// NewPasswordHash wraps an encoded hash loaded from storage.
func NewPasswordHash(s string) (PasswordHash, error) {
	if s == "" {
		return PasswordHash{}, domerrors.ErrEmptyHash
	}
	return PasswordHash{value: s}, nil
}

// Value returns the encoded hash string for persistence.
func (h PasswordHash) Value() string { return h.value }

func (h PasswordHash) String() string {
	if len(h.value) <= 6 {
		return "PasswordHash(...)"
	}
	return "PasswordHash(..." + h.value[len(h.value)-6:] + ")"
}

// PasswordHasher hashes and verifies passwords (Argon2id in production).
// It is a domain service so entities can enforce authentication rules
// without depending on a concrete algorithm.
type PasswordHasher interface {
	Hash(password Password) (PasswordHash, error)
	Verify(password Password, hash PasswordHash) bool
}
