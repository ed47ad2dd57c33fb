package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

func TestNewUserIDIsFreshUUID(t *testing.T) {
	a := NewUserID()
	b := NewUserID()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a.String())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestParseUserID(t *testing.T) {
	id := NewUserID()
	parsed, err := ParseUserID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseUserID("not-a-uuid")
	assert.ErrorIs(t, err, domerrors.ErrInvalidID)
}

func TestParseSessionID(t *testing.T) {
	id := NewSessionID()
	parsed, err := ParseSessionID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseSessionID("")
	assert.ErrorIs(t, err, domerrors.ErrInvalidID)
}
