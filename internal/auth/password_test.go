package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies", func(t *testing.T) {
		hash, err := HashPassword("correct-horse-battery", bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotEqual(t, "correct-horse-battery", hash)

		assert.NoError(t, CheckPassword("correct-horse-battery", hash))
		assert.ErrorIs(t, CheckPassword("wrong-password-entirely", hash), ErrInvalidPassword)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := HashPassword("short", bcrypt.MinCost)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects passwords over bcrypt limit", func(t *testing.T) {
		long := make([]byte, 80)
		for i := range long {
			long[i] = 'a'
		}
		_, err := HashPassword(string(long), bcrypt.MinCost)
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})
}

func TestGenerateAPIToken(t *testing.T) {
	plaintext, hash, err := GenerateAPIToken()
	require.NoError(t, err)

	assert.Len(t, plaintext, 64) // 32 random bytes, hex encoded
	assert.Equal(t, HashToken(plaintext), hash)
	assert.NotEqual(t, plaintext, hash)

	// Tokens must be unique across calls
	plaintext2, _, err := GenerateAPIToken()
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, plaintext2)
}
