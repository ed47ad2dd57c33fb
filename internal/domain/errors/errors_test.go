package errors

import "testing"

func TestSentinelErrors(t *testing.T) {
	if ErrInvalidCredentials == nil {
		t.Error("ErrInvalidCredentials should not be nil")
	}
	if ErrEmailTaken == nil {
		t.Error("ErrEmailTaken should not be nil")
	}
	if ErrSessionNotFound == nil {
		t.Error("ErrSessionNotFound should not be nil")
	}
}

func TestInvalidCredentialsMessageIsGeneric(t *testing.T) {
	// The login boundary surfaces this for both wrong-password and
	// nonexistent-user; the message must not name either cause.
	if msg := ErrInvalidCredentials.Error(); msg != "invalid credentials" {
		t.Errorf("unexpected message: %q", msg)
	}
}
