package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
	"github.com/fandangolas/heimdall/internal/infrastructure/persistence/memory"
)

func TestLogoutSuccess(t *testing.T) {
	sessions := memory.NewSessionRepository()
	tokens := newFakeTokenService()
	bus := memory.NewEventBus()
	logout := NewLogout(sessions, tokens, bus)

	email, err := domain.NewEmail("user@example.com")
	require.NoError(t, err)
	session := domain.NewSessionForUser(domain.NewUserID(), email, nil)
	require.NoError(t, sessions.Save(context.Background(), session))
	token, err := tokens.GenerateToken(session)
	require.NoError(t, err)

	require.NoError(t, logout.Execute(context.Background(), token))

	stored, err := sessions.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Active)

	events := bus.Published()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventUserLoggedOut, events[0].Type)
	assert.Equal(t, session.ID.String(), events[0].Data["session_id"])
	assert.Equal(t, session.UserID.String(), events[0].Data["user_id"])
}

func TestLogoutUnknownSession(t *testing.T) {
	sessions := memory.NewSessionRepository()
	tokens := newFakeTokenService()
	bus := memory.NewEventBus()
	logout := NewLogout(sessions, tokens, bus)

	// Token is valid but the session was never persisted.
	email, err := domain.NewEmail("user@example.com")
	require.NoError(t, err)
	session := domain.NewSessionForUser(domain.NewUserID(), email, nil)
	token, err := tokens.GenerateToken(session)
	require.NoError(t, err)

	err = logout.Execute(context.Background(), token)
	assert.ErrorIs(t, err, domerrors.ErrSessionNotFound)
	assert.Empty(t, bus.Published())
}

func TestLogoutTwice(t *testing.T) {
	sessions := memory.NewSessionRepository()
	tokens := newFakeTokenService()
	bus := memory.NewEventBus()
	logout := NewLogout(sessions, tokens, bus)

	email, err := domain.NewEmail("user@example.com")
	require.NoError(t, err)
	session := domain.NewSessionForUser(domain.NewUserID(), email, nil)
	require.NoError(t, sessions.Save(context.Background(), session))
	token, err := tokens.GenerateToken(session)
	require.NoError(t, err)

	require.NoError(t, logout.Execute(context.Background(), token))
	err = logout.Execute(context.Background(), token)
	assert.ErrorIs(t, err, domerrors.ErrSessionInvalid)

	// Only the first logout announced itself.
	assert.Len(t, bus.Published(), 1)
}

func TestLogoutInvalidToken(t *testing.T) {
	logout := NewLogout(memory.NewSessionRepository(), newFakeTokenService(), memory.NewEventBus())

	token, err := domain.NewToken("a.b.c")
	require.NoError(t, err)

	err = logout.Execute(context.Background(), token)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}
