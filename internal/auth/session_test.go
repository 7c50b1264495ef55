// internal/auth/session_test.go
package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndAuthenticateJWT(t *testing.T) {
	t.Setenv("TOKEN_EXPIRE_TIME", "never")
	Init()

	id := uuid.New().String()
	token, err := CreateJWT(id)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, id, sub)
}

func TestAuthenticateJWTRejectsGarbage(t *testing.T) {
	t.Setenv("TOKEN_EXPIRE_TIME", "never")
	Init()

	_, err := AuthenticateJWT("not.a.token")
	assert.Error(t, err)
}

func TestAuthenticateJWTRejectsForeignKey(t *testing.T) {
	t.Setenv("TOKEN_EXPIRE_TIME", "never")
	Init()
	token, err := CreateJWT(uuid.New().String())
	require.NoError(t, err)

	// Rotating the key pair invalidates everything minted before it.
	Init()
	_, err = AuthenticateJWT(token)
	assert.Error(t, err)
}

func TestTokenExpirationParsing(t *testing.T) {
	t.Setenv("TOKEN_EXPIRE_TIME", "24h")
	Init()

	token, err := CreateJWT(uuid.New().String())
	require.NoError(t, err)

	// Far from expiry, the token still verifies.
	_, err = AuthenticateJWT(token)
	assert.NoError(t, err)
}
