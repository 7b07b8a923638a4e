package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceTokenRoundTrip(t *testing.T) {
	tm := NewServiceTokenManager("test-secret", 5)

	token, expiresAt, err := tm.Issue()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	require.NoError(t, tm.Verify(token))
}

func TestServiceTokenWrongSecret(t *testing.T) {
	issuer := NewServiceTokenManager("secret-a", 5)
	verifier := NewServiceTokenManager("secret-b", 5)

	token, _, err := issuer.Issue()
	require.NoError(t, err)

	assert.Error(t, verifier.Verify(token))
}

func TestServiceTokenGarbage(t *testing.T) {
	tm := NewServiceTokenManager("test-secret", 5)
	assert.Error(t, tm.Verify("not-a-token"))
}
