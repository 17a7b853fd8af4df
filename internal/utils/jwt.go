package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/sha256" // SHA-256 hashing for stored refresh tokens
	"encoding/hex"  // hex encoding of digests
	"errors"        // sentinel error comparisons
	"time"          // expiry arithmetic

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrTokenExpired is returned by VerifyToken when the token was well
// formed and correctly signed but its expiry has passed. Callers can
// use this to tell an expired credential apart from a forged one and
// offer the client a refresh instead of a plain rejection.
var ErrTokenExpired = errors.New("token expired")

// Token is a signed JWT along with its expiry. Access and refresh
// tokens share this shape; they differ only in TTL and in the secret
// used to sign them. The two secrets are disjoint so a token of one
// class never validates as the other.
type Token struct {
	Value string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT identifying a user.
// The TTL is expressed in minutes; access tokens are short-lived and
// carried in the Authorization header of protected requests.
func NewAccessToken(secret string, userID uint64, ttlMin int) (Token, error) {
	return signToken(secret, userID, time.Duration(ttlMin)*time.Minute)
}

// NewRefreshToken builds and signs an HS256 JWT used to obtain fresh
// token pairs. The TTL is expressed in days. Refresh tokens must be
// signed with the refresh secret, never the access secret.
func NewRefreshToken(secret string, userID uint64, ttlDays int) (Token, error) {
	return signToken(secret, userID, time.Duration(ttlDays)*24*time.Hour)
}

func signToken(secret string, userID uint64, ttl time.Duration) (Token, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, Exp: exp}, nil
}

// VerifyToken checks the signature and expiry of a token against one
// secret and returns the user id it identifies. When the token is
// valid except for its expiry, the error is ErrTokenExpired and the
// expiry time is still returned so callers can report it. Any other
// failure (bad signature, wrong signing method, malformed claims)
// yields a generic error.
func VerifyToken(secret, raw string) (uint64, time.Time, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// Signature checked out; surface the expiry so the caller
			// can tell the client when the token died.
			exp, _ := claims.GetExpirationTime()
			var at time.Time
			if exp != nil {
				at = exp.Time
			}
			return 0, at, ErrTokenExpired
		}
		return 0, time.Time{}, err
	}
	if !tok.Valid {
		return 0, time.Time{}, errors.New("invalid token")
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, time.Time{}, errors.New("missing subject claim")
	}
	exp, _ := claims.GetExpirationTime()
	var at time.Time
	if exp != nil {
		at = exp.Time
	}
	return uint64(sub), at, nil
}

// HashRefreshRaw returns the SHA-256 hash of a refresh token as a hex
// string. Only the hash is persisted, so database leaks cannot be
// replayed as live sessions.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
