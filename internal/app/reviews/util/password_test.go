package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin1234")
	require.NoError(t, err)
	assert.NotEqual(t, "admin1234", hash)

	assert.NoError(t, CheckPassword("admin1234", hash))
	assert.Error(t, CheckPassword("wrong-password", hash))
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)

	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
