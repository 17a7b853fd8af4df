package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gowheels/go-wheels/internal/config"
	"github.com/gowheels/go-wheels/internal/utils"
)

func TestRegisterValidation(t *testing.T) {
	h := &AuthHandler{}
	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"missing fields", `{"name":"","email":"","password":""}`, "all fields are required"},
		{"whitespace name", `{"name":"   ","email":"a@b.co","password":"longenough"}`, "all fields are required"},
		{"bad email", `{"name":"Jane","email":"not-an-email","password":"longenough"}`, "invalid email"},
		{"seven char password", `{"name":"Jane","email":"a@b.co","password":"1234567"}`, "password must be at least 8 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/", tc.body)
			require.NoError(t, h.Register(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), tc.msg)
		})
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	h := &AuthHandler{}
	c, rec := newJSONContext(t, http.MethodPost, "/", `{"email":"","password":""}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshRejectsMissingToken(t *testing.T) {
	h := &AuthHandler{}
	c, rec := newJSONContext(t, http.MethodPost, "/", `{}`)
	require.NoError(t, h.Refresh(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "no refresh token provided")
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	// A token signed with the access secret must never pass the
	// refresh path, even though both are HS256 JWTs.
	h := &AuthHandler{Cfg: config.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	}}
	tok, err := utils.NewAccessToken("access-secret", 1, 15)
	require.NoError(t, err)

	c, rec := newJSONContext(t, http.MethodPost, "/", `{"refreshToken":"`+tok.Value+`"}`)
	require.NoError(t, h.Refresh(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid refresh token")
}

func TestLogoutRejectsForgedToken(t *testing.T) {
	h := &AuthHandler{Cfg: config.Config{RefreshSecret: "refresh-secret"}}
	c, rec := newJSONContext(t, http.MethodPost, "/", `{"refreshToken":"garbage"}`)
	require.NoError(t, h.Logout(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestValidateWithoutIdentity(t *testing.T) {
	h := &AuthHandler{}
	c, rec := newJSONContext(t, http.MethodGet, "/", "")
	require.NoError(t, h.Validate(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
