package commands

import (
	"context"
	"time"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

type RefreshResult struct {
	AccessToken string
	ExpiresIn   int64
}

// Refresh re-issues an access token for a still-valid session. It reads
// but never writes: the session keeps its original expiry, only the
// token's claims window moves.
type Refresh struct {
	sessions ports.ReadSessionRepository
	tokens   ports.TokenService
}

func NewRefresh(sessions ports.ReadSessionRepository, tokens ports.TokenService) *Refresh {
	return &Refresh{sessions: sessions, tokens: tokens}
}

// Execute verifies the incoming token and its session, then signs fresh
// claims for the same session. A logged-out or expired session fails
// with ErrSessionInvalid; refresh never resurrects a dead session.
func (uc *Refresh) Execute(ctx context.Context, token domain.Token) (*RefreshResult, error) {
	claims, err := uc.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	sessionID, err := domain.ParseSessionID(claims.SessionID)
	if err != nil {
		return nil, err
	}
	session, err := uc.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.IsValid() {
		return nil, domerrors.ErrSessionInvalid
	}

	fresh, err := uc.tokens.RefreshToken(token)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		AccessToken: fresh.Value(),
		ExpiresIn:   int64(domain.DefaultClaimsTTL / time.Second),
	}, nil
}
