package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", digest)

	assert.NoError(t, ComparePasswords(digest, "password123"))
	assert.Error(t, ComparePasswords(digest, "password124"))
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	require.NoError(t, err)
	b, err := GenerateSecureToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)

	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("Mozilla/5.0", "10.0.0.1")
	assert.Equal(t, fp, Fingerprint("Mozilla/5.0", "10.0.0.1"))
	assert.NotEqual(t, fp, Fingerprint("Mozilla/5.0", "10.0.0.2"))
	assert.NotEqual(t, fp, Fingerprint("curl/8.0", "10.0.0.1"))
	assert.Len(t, fp, 64)
}
