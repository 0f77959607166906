package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cretpass", hash)
	assert.NoError(t, VerifyPassword(hash, "s3cretpass"))
	assert.Error(t, VerifyPassword(hash, "wrongpass"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	second, err := HashPassword("s3cretpass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
