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

func TestRefreshSuccess(t *testing.T) {
	sessions := memory.NewSessionRepository()
	tokens := newFakeTokenService()
	refresh := NewRefresh(sessions.ReadView(), tokens)

	email, err := domain.NewEmail("user@example.com")
	require.NoError(t, err)
	session := domain.NewSessionForUser(domain.NewUserID(), email, []string{"read"})
	require.NoError(t, sessions.Save(context.Background(), session))
	token, err := tokens.GenerateToken(session)
	require.NoError(t, err)

	result, err := refresh.Execute(context.Background(), token)
	require.NoError(t, err)
	assert.NotEqual(t, token.Value(), result.AccessToken)
	assert.Len(t, strings.Split(result.AccessToken, "."), 3)
	assert.Equal(t, int64(15*60), result.ExpiresIn)

	// The re-issued token names the same session and user.
	fresh, err := domain.NewToken(result.AccessToken)
	require.NoError(t, err)
	claims, err := tokens.ValidateToken(fresh)
	require.NoError(t, err)
	assert.Equal(t, session.ID.String(), claims.SessionID)
	assert.Equal(t, session.UserID.String(), claims.UserID)
	assert.Equal(t, []string{"read"}, claims.Permissions)
}

func TestRefreshAfterLogout(t *testing.T) {
	sessions := memory.NewSessionRepository()
	tokens := newFakeTokenService()
	bus := memory.NewEventBus()
	refresh := NewRefresh(sessions.ReadView(), tokens)
	logout := NewLogout(sessions, tokens, bus)

	email, err := domain.NewEmail("user@example.com")
	require.NoError(t, err)
	session := domain.NewSessionForUser(domain.NewUserID(), email, nil)
	require.NoError(t, sessions.Save(context.Background(), session))
	token, err := tokens.GenerateToken(session)
	require.NoError(t, err)

	require.NoError(t, logout.Execute(context.Background(), token))

	_, err = refresh.Execute(context.Background(), token)
	assert.ErrorIs(t, err, domerrors.ErrSessionInvalid)
}

func TestRefreshUnknownSession(t *testing.T) {
	sessions := memory.NewSessionRepository()
	tokens := newFakeTokenService()
	refresh := NewRefresh(sessions.ReadView(), tokens)

	// Token verifies but its session was never persisted.
	email, err := domain.NewEmail("user@example.com")
	require.NoError(t, err)
	session := domain.NewSessionForUser(domain.NewUserID(), email, nil)
	token, err := tokens.GenerateToken(session)
	require.NoError(t, err)

	_, err = refresh.Execute(context.Background(), token)
	assert.ErrorIs(t, err, domerrors.ErrSessionInvalid)
}

func TestRefreshInvalidToken(t *testing.T) {
	refresh := NewRefresh(memory.NewSessionRepository().ReadView(), newFakeTokenService())

	token, err := domain.NewToken("a.b.c")
	require.NoError(t, err)

	_, err = refresh.Execute(context.Background(), token)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}
