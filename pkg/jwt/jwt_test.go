package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	secret := []byte("s3cret")

	token, err := GenerateToken(secret, "alice", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Operator)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidate(t *testing.T) {
	secret := []byte("s3cret")
	token, err := GenerateToken(secret, "alice", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken([]byte("other"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateToken(secret, "")
	assert.ErrorIs(t, err, ErrMissingToken)

	// non-positive ttl falls back to the default
	fallback, err := GenerateToken(secret, "alice", -time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken(secret, fallback)
	assert.NoError(t, err)
}

func TestGenerateRequiresSecret(t *testing.T) {
	_, err := GenerateToken(nil, "alice", time.Hour)
	assert.ErrorIs(t, err, ErrMissingKey)
}
