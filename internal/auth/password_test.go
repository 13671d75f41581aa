package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, ComparePassword(hash, "hunter2"))
	assert.False(t, ComparePassword(hash, "hunter3"))

	again, err := HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes are salted")
}

func TestComparePasswordRejectsMalformedHash(t *testing.T) {
	assert.False(t, ComparePassword("not-a-bcrypt-hash", "hunter2"))
}
