package queries

import (
	"context"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
)

// ValidateResult carries every outcome of token validation. There is no
// error channel: failures are encoded in IsValid and Error.
type ValidateResult struct {
	IsValid     bool
	UserID      string
	Email       string
	Permissions []string
	Error       string
}

// ValidateToken is the hot-path query. It is wired with only the read
// session repository and the token service; the user repository and the
// event bus are structurally absent so the read path cannot write or
// publish by accident.
type ValidateToken struct {
	sessions ports.ReadSessionRepository
	tokens   ports.TokenService
}

func NewValidateToken(sessions ports.ReadSessionRepository, tokens ports.TokenService) *ValidateToken {
	return &ValidateToken{sessions: sessions, tokens: tokens}
}

// Execute validates a raw token string. It never returns an error: any
// failure, including malformed input, becomes an invalid result.
func (q *ValidateToken) Execute(ctx context.Context, raw string) ValidateResult {
	token, err := domain.NewToken(raw)
	if err != nil {
		return invalid(err.Error())
	}

	claims, err := q.tokens.ValidateToken(token)
	if err != nil {
		return invalid(err.Error())
	}

	sessionID, err := domain.ParseSessionID(claims.SessionID)
	if err != nil {
		return invalid("Invalid session")
	}
	session, err := q.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return invalid(err.Error())
	}
	if session == nil || !session.IsValid() {
		return invalid("Invalid session")
	}

	permissions := claims.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return ValidateResult{
		IsValid:     true,
		UserID:      claims.UserID,
		Email:       claims.Email,
		Permissions: permissions,
	}
}

func invalid(msg string) ValidateResult {
	return ValidateResult{IsValid: false, Error: msg}
}
