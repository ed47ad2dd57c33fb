package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
	"github.com/fandangolas/heimdall/internal/infrastructure/persistence/memory"
)

type loginFixture struct {
	users    *memory.UserRepository
	sessions *memory.SessionRepository
	tokens   *fakeTokenService
	bus      *memory.EventBus
	login    *Login
}

func newLoginFixture(t *testing.T) *loginFixture {
	t.Helper()
	f := &loginFixture{
		users:    memory.NewUserRepository(),
		sessions: memory.NewSessionRepository(),
		tokens:   newFakeTokenService(),
		bus:      memory.NewEventBus(),
	}
	f.login = NewLogin(f.users, f.sessions, plainHasher{}, f.tokens, f.bus)
	return f
}

func (f *loginFixture) registerUser(t *testing.T, emailAddr, password string) *domain.User {
	t.Helper()
	register := NewRegister(f.users, plainHasher{}, memory.NewEventBus())
	result, err := register.Execute(context.Background(), RegisterInput{Email: emailAddr, Password: password})
	require.NoError(t, err)

	email, err := domain.NewEmail(result.Email)
	require.NoError(t, err)
	user, err := f.users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func TestLoginSuccess(t *testing.T) {
	f := newLoginFixture(t)
	user := f.registerUser(t, "login@example.com", "ValidPass123")
	user.GrantPermission("read")
	require.NoError(t, f.users.Save(context.Background(), user))

	result, err := f.login.Execute(context.Background(), LoginInput{
		Email:    "login@example.com",
		Password: "ValidPass123",
	})
	require.NoError(t, err)
	assert.Len(t, strings.Split(result.AccessToken, "."), 3)
	assert.Equal(t, int64(15*60), result.ExpiresIn)

	events := f.bus.Published()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventUserLoggedIn, events[0].Type)
	assert.Equal(t, user.ID.String(), events[0].Data["user_id"])
	assert.Equal(t, "login@example.com", events[0].Data["email"])

	// The event names the persisted session and that session carries the
	// permission snapshot.
	sessionID, err := domain.ParseSessionID(events[0].Data["session_id"])
	require.NoError(t, err)
	session, err := f.sessions.FindByID(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.True(t, session.IsValid())
	assert.Equal(t, []string{"read"}, session.Permissions)

	// Login recorded last_login_at on the persisted user.
	saved, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.LastLoginAt)
}

func TestLoginWrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	f := newLoginFixture(t)
	f.registerUser(t, "known@example.com", "ValidPass123")

	_, wrongPassErr := f.login.Execute(context.Background(), LoginInput{
		Email:    "known@example.com",
		Password: "WrongPass123",
	})
	_, unknownErr := f.login.Execute(context.Background(), LoginInput{
		Email:    "unknown@example.com",
		Password: "ValidPass123",
	})

	assert.ErrorIs(t, wrongPassErr, domerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownErr, domerrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr.Error(), unknownErr.Error())
	assert.Empty(t, f.bus.Published())
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newLoginFixture(t)
	user := f.registerUser(t, "inactive@example.com", "ValidPass123")
	user.Deactivate()
	require.NoError(t, f.users.Save(context.Background(), user))

	_, err := f.login.Execute(context.Background(), LoginInput{
		Email:    "inactive@example.com",
		Password: "ValidPass123",
	})
	assert.ErrorIs(t, err, domerrors.ErrAccountInactive)
	assert.Empty(t, f.bus.Published())
}

func TestLoginTokenFailurePublishesNothing(t *testing.T) {
	f := newLoginFixture(t)
	f.registerUser(t, "login@example.com", "ValidPass123")
	f.tokens.genErr = errBroken

	_, err := f.login.Execute(context.Background(), LoginInput{
		Email:    "login@example.com",
		Password: "ValidPass123",
	})
	assert.ErrorIs(t, err, errBroken)
	assert.Empty(t, f.bus.Published())
}
