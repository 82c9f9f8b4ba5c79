package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	access, err := NewAccessToken("test-secret", "alice", 42, "organizer", 60)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)

	assert.WithinDuration(t, time.Now().UTC().Add(60*time.Minute), access.Exp, 5*time.Second)

	claims, err := ParseAccessToken("test-secret", access.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "organizer", claims["role"])
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	access, err := NewAccessToken("secret-a", "bob", 1, "user", 60)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret-b", access.Token)
	assert.Error(t, err)
}

func TestParseAccessTokenExpired(t *testing.T) {
	access, err := NewAccessToken("test-secret", "carol", 7, "user", -1)
	require.NoError(t, err)

	_, err = ParseAccessToken("test-secret", access.Token)
	assert.Error(t, err)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken("test-secret", "not.a.jwt")
	assert.Error(t, err)
}
