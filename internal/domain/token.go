package domain

import (
	"strings"
	"time"

	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

// DefaultClaimsTTL is how long issued token claims stay valid.
const DefaultClaimsTTL = 15 * time.Minute

// TokenClaims is the decoded payload of an access token: who, which
// session, what permissions and when it expires.
type TokenClaims struct {
	UserID      string
	SessionID   string
	Email       string
	Permissions []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// NewTokenClaims builds claims issued now, expiring after DefaultClaimsTTL.
func NewTokenClaims(userID, sessionID, email string, permissions []string) TokenClaims {
	now := time.Now().UTC()
	perms := make([]string, len(permissions))
	copy(perms, permissions)
	return TokenClaims{
		UserID:      userID,
		SessionID:   sessionID,
		Email:       email,
		Permissions: perms,
		IssuedAt:    now,
		ExpiresAt:   now.Add(DefaultClaimsTTL),
	}
}

// IsExpired reports whether the claims expiry has passed.
func (c TokenClaims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// Token is an opaque signed claims set: three dot-separated segments,
// optionally carrying decoded claims alongside. Signature verification
// is the token service's job, not the value object's.
type Token struct {
	value  string
	claims *TokenClaims
}

// NewToken validates the structural shape of a token string.
func NewToken(s string) (Token, error) {
	if s == "" {
		return Token{}, domerrors.ErrMalformedToken
	}
	if len(strings.Split(s, ".")) != 3 {
		return Token{}, domerrors.ErrMalformedToken
	}
	return Token{value: s}, nil
}

// NewTokenWithClaims wraps a token string together with its decoded claims.
func NewTokenWithClaims(s string, claims TokenClaims) (Token, error) {
	t, err := NewToken(s)
	if err != nil {
		return Token{}, err
	}
	t.claims = &claims
	return t, nil
}

// Value returns the raw token string.
func (t Token) Value() string { return t.value }

// Claims returns the decoded claims when present, nil otherwise.
func (t Token) Claims() *TokenClaims { return t.claims }

func (t Token) String() string {
	if len(t.value) <= 10 {
		return "Token(...)"
	}
	return "Token(..." + t.value[len(t.value)-10:] + ")"
}
