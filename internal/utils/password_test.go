package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, VerifyPassword(hash, "s3cret-pass"))
	require.False(t, VerifyPassword(hash, "wrong-pass"))
}

func TestHashPasswordDefaultsCost(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 0)
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "s3cret-pass"))
}
