package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken("user-1", "ada@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := GenerateToken("user-1", "ada@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("token-a")
	assert.Equal(t, a, HashToken("token-a"))
	assert.NotEqual(t, a, HashToken("token-b"))
	assert.Len(t, a, 64)
}
