package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/gowheels/go-wheels/internal/utils"
)

func runJWT(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	mw := JWTAuth("access-secret", nil)
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, handler(c))
	return rec
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec := runJWT(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token missing")
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec := runJWT(t, "Bearer not.a.token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token failed")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 1, 15)
	require.NoError(t, err)
	rec := runJWT(t, "Bearer "+tok.Value)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token failed")
}

func TestJWTAuthExpiredTokenReportsExpiry(t *testing.T) {
	tok, err := utils.NewAccessToken("access-secret", 1, -1)
	require.NoError(t, err)
	rec := runJWT(t, "Bearer "+tok.Value)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token expired")
	require.Contains(t, rec.Body.String(), "expiredAt")
}

func TestRequireAdmin(t *testing.T) {
	mw := RequireAdmin()
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = echo.New().NewContext(req, rec)
	c.Set("is_admin", true)
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)
}
