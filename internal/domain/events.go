package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record of something that happened in the domain,
// published for side-effect consumers. All events share one envelope; the
// payload is a flat string map so transports stay trivial.
type Event struct {
	ID         string
	Type       string
	OccurredAt time.Time
	Data       map[string]string
}

func newEvent(eventType string, data map[string]string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Event type names.
const (
	EventUserCreated           = "UserCreated"
	EventUserLoggedIn          = "UserLoggedIn"
	EventUserLoggedOut         = "UserLoggedOut"
	EventUserPasswordChanged   = "UserPasswordChanged"
	EventUserPermissionGranted = "UserPermissionGranted"
	EventUserPermissionRevoked = "UserPermissionRevoked"
	EventUserDeactivated       = "UserDeactivated"
	EventUserActivated         = "UserActivated"
)

// UserCreated records a successful registration.
func UserCreated(userID UserID, email Email) Event {
	return newEvent(EventUserCreated, map[string]string{
		"user_id": userID.String(),
		"email":   email.Value(),
	})
}

// UserLoggedIn records a successful login and the session it produced.
func UserLoggedIn(userID UserID, sessionID SessionID, email Email) Event {
	return newEvent(EventUserLoggedIn, map[string]string{
		"user_id":    userID.String(),
		"session_id": sessionID.String(),
		"email":      email.Value(),
	})
}

// UserLoggedOut records an explicit session invalidation.
func UserLoggedOut(userID UserID, sessionID SessionID) Event {
	return newEvent(EventUserLoggedOut, map[string]string{
		"user_id":    userID.String(),
		"session_id": sessionID.String(),
	})
}

// UserPasswordChanged records a password change.
func UserPasswordChanged(userID UserID) Event {
	return newEvent(EventUserPasswordChanged, map[string]string{
		"user_id": userID.String(),
	})
}

// UserPermissionGranted records a permission grant.
func UserPermissionGranted(userID UserID, permission string) Event {
	return newEvent(EventUserPermissionGranted, map[string]string{
		"user_id":    userID.String(),
		"permission": permission,
	})
}

// UserPermissionRevoked records a permission revocation.
func UserPermissionRevoked(userID UserID, permission string) Event {
	return newEvent(EventUserPermissionRevoked, map[string]string{
		"user_id":    userID.String(),
		"permission": permission,
	})
}

// UserDeactivated records an account deactivation. Reason may be empty.
func UserDeactivated(userID UserID, reason string) Event {
	data := map[string]string{"user_id": userID.String()}
	if reason != "" {
		data["reason"] = reason
	}
	return newEvent(EventUserDeactivated, data)
}

// UserActivated records an account reactivation.
func UserActivated(userID UserID) Event {
	return newEvent(EventUserActivated, map[string]string{
		"user_id": userID.String(),
	})
}
