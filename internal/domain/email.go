package domain

import (
	"regexp"
	"strings"

	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a lowercase-normalized email address. Two emails compare equal
// iff their normalized forms are equal, so == works on the type.
type Email struct {
	value string
}

// NewEmail validates and normalizes an email address.
func NewEmail(s string) (Email, error) {
	if s == "" {
		return Email{}, domerrors.ErrInvalidEmail
	}
	normalized := strings.ToLower(s)
	if !emailRegex.MatchString(normalized) {
		return Email{}, domerrors.ErrInvalidEmail
	}
	return Email{value: normalized}, nil
}

// Value returns the normalized address.
func (e Email) Value() string { return e.value }

// Domain returns the part after the @.
func (e Email) Domain() string {
	at := strings.LastIndex(e.value, "@")
	return e.value[at+1:]
}

func (e Email) String() string { return e.value }
