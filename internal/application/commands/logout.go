package commands

import (
	"context"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

// Logout invalidates the session named by a token.
type Logout struct {
	sessions ports.WriteSessionRepository
	tokens   ports.TokenService
	bus      ports.EventBus
}

func NewLogout(sessions ports.WriteSessionRepository, tokens ports.TokenService, bus ports.EventBus) *Logout {
	return &Logout{sessions: sessions, tokens: tokens, bus: bus}
}

// Execute decodes the token, invalidates its session and publishes
// UserLoggedOut. A missing session fails with ErrSessionNotFound and an
// already-invalid one with ErrSessionInvalid; logout does not silently
// succeed on dead sessions.
func (uc *Logout) Execute(ctx context.Context, token domain.Token) error {
	claims, err := uc.tokens.ValidateToken(token)
	if err != nil {
		return err
	}

	sessionID, err := domain.ParseSessionID(claims.SessionID)
	if err != nil {
		return err
	}
	session, err := uc.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return domerrors.ErrSessionNotFound
	}
	if !session.IsValid() {
		return domerrors.ErrSessionInvalid
	}

	session.Invalidate()
	if err := uc.sessions.Save(ctx, session); err != nil {
		return err
	}

	return uc.bus.Publish(ctx, domain.UserLoggedOut(session.UserID, session.ID))
}
