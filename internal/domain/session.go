package domain

import "time"

// DefaultSessionTTL is the lifetime of a freshly created session.
const DefaultSessionTTL = 24 * time.Hour

// Session represents an active user session. It is created only by
// User.Authenticate but persisted and looked up independently, which is
// what keeps the validation hot path away from the users store.
type Session struct {
	ID     SessionID
	UserID UserID
	Email  Email
	// Permissions is a snapshot copied at creation time. Later changes
	// to the user's permissions do not affect already-issued sessions.
	Permissions []string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Active      bool
}

// NewSessionForUser creates a session with a fresh ID and a copy of the
// user's permissions.
func NewSessionForUser(userID UserID, email Email, permissions []string) *Session {
	now := time.Now().UTC()
	perms := make([]string, len(permissions))
	copy(perms, permissions)
	return &Session{
		ID:          NewSessionID(),
		UserID:      userID,
		Email:       email,
		Permissions: perms,
		CreatedAt:   now,
		ExpiresAt:   now.Add(DefaultSessionTTL),
		Active:      true,
	}
}

// IsExpired reports whether the session lifetime has passed.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValid reports whether the session is active and not expired.
func (s *Session) IsValid() bool {
	return s.Active && !s.IsExpired()
}

// Invalidate deactivates the session. This is a one-way transition.
func (s *Session) Invalidate() {
	s.Active = false
}

// TokenClaims projects the session into a claims snapshot for signing.
func (s *Session) TokenClaims() TokenClaims {
	return NewTokenClaims(s.UserID.String(), s.ID.String(), s.Email.Value(), s.Permissions)
}
