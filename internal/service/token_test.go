package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.GenerateToken("session-abc")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-abc", claims.SessionID)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").GenerateToken("session-abc")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenGarbageInput(t *testing.T) {
	svc := NewTokenService("test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
}

func TestTokenTampered(t *testing.T) {
	svc := NewTokenService("test-secret")
	token, err := svc.GenerateToken("session-abc")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.ValidateToken(tampered)
	assert.Error(t, err)
}
