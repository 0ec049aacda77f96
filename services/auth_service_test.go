package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	svc, err := NewAuthService("chamallow", "test-secret", zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, svc.Enabled())

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrBadPassword)

	token, err := svc.Login("chamallow")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The issued token verifies against the configured secret.
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestAuthServiceDisabledGate(t *testing.T) {
	t.Parallel()

	svc, err := NewAuthService("", "test-secret", zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, svc.Enabled())

	// Without a configured password any login succeeds.
	token, err := svc.Login("anything")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
