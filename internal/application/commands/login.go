package commands

import (
	"context"
	"time"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
}

// Login authenticates credentials, persists the resulting session and
// returns a signed access token.
type Login struct {
	users    ports.WriteUserRepository
	sessions ports.WriteSessionRepository
	hasher   domain.PasswordHasher
	tokens   ports.TokenService
	bus      ports.EventBus
}

func NewLogin(users ports.WriteUserRepository, sessions ports.WriteSessionRepository, hasher domain.PasswordHasher, tokens ports.TokenService, bus ports.EventBus) *Login {
	return &Login{users: users, sessions: sessions, hasher: hasher, tokens: tokens, bus: bus}
}

// Execute runs the login command. A nonexistent user fails with the same
// ErrInvalidCredentials as a wrong password. Ordering is persist user,
// persist session, generate token, publish event: a token-generation
// failure leaves a persisted session behind but never a stray event.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	password, err := domain.NewPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrInvalidCredentials
	}

	session, err := user.Authenticate(password, uc.hasher)
	if err != nil {
		return nil, err
	}

	// Save the user first so last_login_at survives.
	if err := uc.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.tokens.GenerateToken(session)
	if err != nil {
		return nil, err
	}

	if err := uc.bus.Publish(ctx, domain.UserLoggedIn(user.ID, session.ID, user.Email)); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token.Value(),
		ExpiresIn:   int64(domain.DefaultClaimsTTL / time.Second),
	}, nil
}
