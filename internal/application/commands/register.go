package commands

import (
	"context"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

type RegisterInput struct {
	Email    string
	Password string
}

type RegisterResult struct {
	UserID string
	Email  string
}

// Register creates a new user account and announces it on the event bus.
type Register struct {
	users  ports.WriteUserRepository
	hasher domain.PasswordHasher
	bus    ports.EventBus
}

func NewRegister(users ports.WriteUserRepository, hasher domain.PasswordHasher, bus ports.EventBus) *Register {
	return &Register{users: users, hasher: hasher, bus: bus}
}

// Execute validates input, rejects duplicate emails, persists the user
// and publishes exactly one UserCreated event. No event is published on
// failure.
func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	password, err := domain.NewPassword(input.Password)
	if err != nil {
		return nil, err
	}

	exists, err := uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domerrors.ErrEmailTaken
	}

	user, err := domain.NewUser(email, password, uc.hasher)
	if err != nil {
		return nil, err
	}
	// The existence pre-check races with concurrent registrations; the
	// store's unique constraint is the authority and Save surfaces
	// ErrEmailTaken when this call loses.
	if err := uc.users.Save(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.bus.Publish(ctx, domain.UserCreated(user.ID, user.Email)); err != nil {
		return nil, err
	}

	return &RegisterResult{
		UserID: user.ID.String(),
		Email:  user.Email.Value(),
	}, nil
}
