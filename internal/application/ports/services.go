package ports

import (
	"context"

	"github.com/fandangolas/heimdall/internal/domain"
)

// TokenService signs sessions into tokens and verifies them back into
// claims. Validation fails on malformed, unsigned or expired tokens.
type TokenService interface {
	GenerateToken(session *domain.Session) (domain.Token, error)
	ValidateToken(token domain.Token) (domain.TokenClaims, error)
	RefreshToken(token domain.Token) (domain.Token, error)
}

// EventBus publishes domain events for side-effect consumers. Commands
// publish only after their writes have been persisted.
type EventBus interface {
	Publish(ctx context.Context, event domain.Event) error
}
