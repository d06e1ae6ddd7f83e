package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/client/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	id := Identity{UserID: "user-123", Username: "admin", Roles: []string{"admin"}}

	tok, err := GenerateToken(id, secret, time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken(Identity{UserID: "u1"}, secret, -time.Second, time.Now())
	require.NoError(t, err)

	_, err = ParseToken(tok, secret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(Identity{UserID: "u1"}, []byte("right"), time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong"))
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not-a-token", []byte("k"))
	require.Error(t, err)
}

// The admin client decodes the same token without the secret.
func TestToken_ReadableByClient(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tok, err := GenerateToken(Identity{UserID: "7", Username: "ops", Roles: []string{"editor"}}, []byte("k"), time.Hour, now)
	require.NoError(t, err)

	claims, ok := session.ParseClaims(tok)
	require.True(t, ok)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, "ops", claims.Username)
	assert.Equal(t, []string{"editor"}, claims.Roles)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}
