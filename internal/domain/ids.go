package domain

import (
	"github.com/google/uuid"

	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID generates a fresh random UserID.
func NewUserID() UserID { return UserID{UUID: uuid.New()} }

// ParseUserID validates a UUID string and returns a UserID.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, domerrors.ErrInvalidID
	}
	return UserID{UUID: id}, nil
}

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// SessionID is a value object for session identity.
type SessionID struct{ uuid.UUID }

// NewSessionID generates a fresh random SessionID.
func NewSessionID() SessionID { return SessionID{UUID: uuid.New()} }

// ParseSessionID validates a UUID string and returns a SessionID.
func ParseSessionID(s string) (SessionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, domerrors.ErrInvalidID
	}
	return SessionID{UUID: id}, nil
}

// String returns the canonical string form.
func (s SessionID) String() string { return s.UUID.String() }
