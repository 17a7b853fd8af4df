package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("access-secret", 42, 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)

	userID, exp, err := VerifyToken("access-secret", tok.Value)
	require.NoError(t, err)
	require.Equal(t, uint64(42), userID)
	require.WithinDuration(t, time.Now().Add(15*time.Minute), exp, time.Minute)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("access-secret", 7, 15)
	require.NoError(t, err)

	_, _, err = VerifyToken("other-secret", tok.Value)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenDoesNotValidateAsAccess(t *testing.T) {
	refresh, err := NewRefreshToken("refresh-secret", 7, 7)
	require.NoError(t, err)

	_, _, err = VerifyToken("access-secret", refresh.Value)
	require.Error(t, err)

	userID, _, err := VerifyToken("refresh-secret", refresh.Value)
	require.NoError(t, err)
	require.Equal(t, uint64(7), userID)
}

func TestExpiredTokenReportsExpiry(t *testing.T) {
	tok, err := NewAccessToken("access-secret", 42, -1)
	require.NoError(t, err)

	_, exp, err := VerifyToken("access-secret", tok.Value)
	require.True(t, errors.Is(err, ErrTokenExpired))
	require.False(t, exp.IsZero())
	require.True(t, exp.Before(time.Now()))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, _, err := VerifyToken("access-secret", "not.a.jwt")
	require.Error(t, err)
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := HashRefreshRaw("some-token")
	h2 := HashRefreshRaw("some-token")
	require.Equal(t, h1, h2)
	require.Len(t, h1, 64)
	require.NotEqual(t, h1, HashRefreshRaw("other-token"))
}
