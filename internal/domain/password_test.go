package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

func TestNewPassword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid", "ValidPass123", true},
		{"empty", "", false},
		{"too short", "Abc1234", false},
		{"no uppercase", "validpass123", false},
		{"no lowercase", "VALIDPASS123", false},
		{"no digit", "ValidPassword", false},
		{"exactly eight", "Abcdefg1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPassword(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domerrors.ErrWeakPassword)
			}
		})
	}
}

func TestPasswordStringIsMasked(t *testing.T) {
	password, err := NewPassword("SuperSecret1")
	require.NoError(t, err)
	assert.Equal(t, "********", password.String())
	assert.NotContains(t, fmt.Sprintf("%v", password), "SuperSecret1")
}

func TestNewPasswordHashRejectsEmpty(t *testing.T) {
	_, err := NewPasswordHash("")
	assert.ErrorIs(t, err, domerrors.ErrEmptyHash)
}

func TestPasswordHashStringIsTruncated(t *testing.T) {
	hash, err := NewPasswordHash("$argon2id$v=19$m=65536,t=3,p=2$saltsalt$hashhash")
	require.NoError(t, err)
	assert.Equal(t, "PasswordHash(...shhash)", hash.String())
	assert.NotEqual(t, hash.Value(), hash.String())
}
