package service

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateToken_Format(t *testing.T) {
	token, err := generateToken()

	assert.NoError(t, err)
	assert.Len(t, token, 48)

	_, err = hex.DecodeString(token)
	assert.NoError(t, err)
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := generateToken()
		assert.NoError(t, err)
		assert.False(t, seen[token], "token generated twice")
		seen[token] = true
	}
}

func TestGenerateRedirectID_Format(t *testing.T) {
	id, err := generateRedirectID()

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "r-"))
	assert.Len(t, id, 18)

	_, err = hex.DecodeString(strings.TrimPrefix(id, "r-"))
	assert.NoError(t, err)
}
