package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}
