package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword("s3cret-pass", hash))
	assert.False(t, VerifyPassword("wrong-pass", hash))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", 30, 1440)

	tok, err := tokens.Access("user@example.net")
	require.NoError(t, err)

	sub, err := tokens.Subject(tok)
	require.NoError(t, err)
	assert.Equal(t, "user@example.net", sub)
}

func TestConfirmationTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", 30, 1440)

	tok, err := tokens.Confirmation("user@example.net")
	require.NoError(t, err)

	sub, err := tokens.Subject(tok)
	require.NoError(t, err)
	assert.Equal(t, "user@example.net", sub)
}

func TestExpiredTokenIsDistinctFromInvalid(t *testing.T) {
	expired := NewTokens("test-secret", -1, -1)
	tok, err := expired.Access("user@example.net")
	require.NoError(t, err)

	_, err = expired.Subject(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = expired.Subject("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenSignedWithOtherSecretIsInvalid(t *testing.T) {
	a := NewTokens("secret-a", 30, 1440)
	b := NewTokens("secret-b", 30, 1440)

	tok, err := a.Access("user@example.net")
	require.NoError(t, err)

	_, err = b.Subject(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenWithoutSubjectIsInvalid(t *testing.T) {
	tokens := NewTokens("test-secret", 30, 1440)
	tok, err := tokens.Access("")
	require.NoError(t, err)

	_, err = tokens.Subject(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
