package domain

import (
	"slices"
	"time"

	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

// User is the aggregate root for authentication. It owns the business
// rules: authenticating credentials, permission management and account
// activation state.
type User struct {
	ID           UserID
	Email        Email
	PasswordHash PasswordHash
	Active       bool
	Verified     bool
	Permissions  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// NewUser creates a user with a fresh ID and the password hashed.
func NewUser(email Email, password Password, hasher PasswordHasher) (*User, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:           NewUserID(),
		Email:        email,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Authenticate verifies the password and, on success, records the login
// time and returns a new session carrying a snapshot of the user's
// permissions. Persisting the mutated user and the session is the
// caller's responsibility.
func (u *User) Authenticate(password Password, hasher PasswordHasher) (*Session, error) {
	if !u.Active {
		return nil, domerrors.ErrAccountInactive
	}
	if !hasher.Verify(password, u.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	now := time.Now().UTC()
	u.LastLoginAt = &now
	return NewSessionForUser(u.ID, u.Email, u.Permissions), nil
}

// ChangePassword replaces the password hash after verifying the current
// password.
func (u *User) ChangePassword(current, next Password, hasher PasswordHasher) error {
	if !hasher.Verify(current, u.PasswordHash) {
		return domerrors.ErrPasswordMismatch
	}
	hash, err := hasher.Hash(next)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.touch()
	return nil
}

// GrantPermission adds a permission. Granting twice has no effect.
func (u *User) GrantPermission(permission string) {
	if slices.Contains(u.Permissions, permission) {
		return
	}
	u.Permissions = append(u.Permissions, permission)
	u.touch()
}

// RevokePermission removes a permission. Revoking an absent permission
// is a no-op.
func (u *User) RevokePermission(permission string) {
	i := slices.Index(u.Permissions, permission)
	if i < 0 {
		return
	}
	u.Permissions = slices.Delete(u.Permissions, i, i+1)
	u.touch()
}

// Deactivate disables the account; Authenticate fails until Activate.
func (u *User) Deactivate() {
	u.Active = false
	u.touch()
}

// Activate re-enables the account.
func (u *User) Activate() {
	u.Active = true
	u.touch()
}

// Verify marks the user's email as verified.
func (u *User) Verify() {
	u.Verified = true
	u.touch()
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}
