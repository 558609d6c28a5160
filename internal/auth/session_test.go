package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken(t *testing.T) {
	token, hash, err := GenerateSessionToken()
	require.NoError(t, err)

	// 32 random bytes hex-encoded
	assert.Len(t, token, 64)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, token, hash)

	// Hashing the token reproduces the stored hash
	assert.Equal(t, hash, HashSessionToken(token))

	// Tokens are unique per call
	token2, _, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
}
