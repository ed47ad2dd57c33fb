package ports

import (
	"context"

	"github.com/fandangolas/heimdall/internal/domain"
)

// WriteUserRepository is the full user persistence contract used by
// commands. Lookups return (nil, nil) when no row matches.
type WriteUserRepository interface {
	FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email domain.Email) (bool, error)
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// Save inserts or updates by ID. Implementations must surface
	// errors.ErrEmailTaken when a concurrent insert wins the email
	// uniqueness race.
	Save(ctx context.Context, user *domain.User) error
}

// WriteSessionRepository is the session persistence contract used by
// commands.
type WriteSessionRepository interface {
	FindByID(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

// ReadSessionRepository is the single-lookup contract for the validation
// hot path. It is deliberately minimal: implementations may serve from a
// cache or replica, since staleness only delays invalidation and never
// produces a false positive beyond the replication window.
type ReadSessionRepository interface {
	FindByID(ctx context.Context, id domain.SessionID) (*domain.Session, error)
}
