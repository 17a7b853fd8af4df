package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/config"
	"github.com/gowheels/go-wheels/internal/model"
	"github.com/gowheels/go-wheels/internal/repository"
	"github.com/gowheels/go-wheels/internal/utils"
)

// emailPattern is the basic address shape check used at registration
// and when validating email updates on bookings.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TokenStore persists refresh token hashes for rotation and logout.
// *repository.TokenRepo is the production implementation.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type userPart struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

// issuePair signs a fresh access/refresh pair for the user and records
// the refresh hash so it can later be revoked. Every call produces a
// brand-new pair; refresh issuance always rotates both tokens.
func (h *AuthHandler) issuePair(ctx context.Context, userID uint64) (access, refresh utils.Token, err error) {
	access, err = utils.NewAccessToken(h.Cfg.AccessSecret, userID, h.Cfg.AccessTTLMin)
	if err != nil {
		return
	}
	refresh, err = utils.NewRefreshToken(h.Cfg.RefreshSecret, userID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return
	}
	err = h.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(refresh.Value), refresh.Exp)
	return
}

// Register creates an account and returns a token pair immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := req.Password

	if name == "" || email == "" || password == "" {
		return fail(c, http.StatusBadRequest, "all fields are required")
	}
	if !emailPattern.MatchString(email) {
		return fail(c, http.StatusBadRequest, "invalid email")
	}
	if len(password) < 8 {
		return fail(c, http.StatusBadRequest, "password must be at least 8 characters")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Pre-check gives a clean message; the unique index on email is
	// the real guarantee and maps to the same response on a race.
	if _, err := h.Users.GetByEmail(ctx, email); err == nil {
		return fail(c, http.StatusConflict, "user already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	uid, err := h.Users.Create(ctx, name, email, password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusConflict, "user already exists")
		}
		return fail(c, http.StatusInternalServerError, "server error")
	}

	access, refresh, err := h.issuePair(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to issue tokens")
	}

	return respond(c, http.StatusCreated, "account created successfully", echo.Map{
		"accessToken":  access.Value,
		"refreshToken": refresh.Value,
		"user":         userPart{ID: uid, Name: name, Email: email},
	})
}

// Login verifies credentials and returns a fresh pair. Any mismatch,
// unknown email included, produces the same generic message so
// accounts cannot be enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "all fields are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusUnauthorized, "invalid email or password")
		}
		return fail(c, http.StatusInternalServerError, "server error")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "invalid email or password")
	}

	access, refresh, err := h.issuePair(ctx, u.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to issue tokens")
	}

	return respond(c, http.StatusOK, "login successful", echo.Map{
		"accessToken":  access.Value,
		"refreshToken": refresh.Value,
		"user":         toUserPart(u),
	})
}

// Refresh validates a refresh token against the refresh secret and
// rotates the pair: the presented token is revoked and a brand-new
// pair is returned. Invalid, expired or revoked tokens yield 403.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return fail(c, http.StatusUnauthorized, "no refresh token provided")
	}
	raw := strings.TrimSpace(req.RefreshToken)

	userID, _, err := utils.VerifyToken(h.Cfg.RefreshSecret, raw)
	if err != nil {
		return fail(c, http.StatusForbidden, "invalid refresh token")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash := utils.HashRefreshRaw(raw)
	revoked, err := h.Tokens.IsRevoked(ctx, hash)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	if revoked {
		return fail(c, http.StatusForbidden, "invalid refresh token")
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusForbidden, "invalid refresh token")
		}
		return fail(c, http.StatusInternalServerError, "server error")
	}

	_ = h.Tokens.RevokeByHash(ctx, hash)

	access, refresh, err := h.issuePair(ctx, u.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to issue tokens")
	}

	return respond(c, http.StatusOK, "token refreshed successfully", echo.Map{
		"accessToken":  access.Value,
		"refreshToken": refresh.Value,
		"user":         toUserPart(u),
	})
}

// Validate confirms the access token presented to the JWTAuth
// middleware and echoes the identity it resolved to.
func (h *AuthHandler) Validate(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "not authorized")
	}
	return respond(c, http.StatusOK, "token is valid", echo.Map{
		"user": toUserPart(u),
	})
}

// Logout revokes refresh tokens: the one presented in the body, or
// every active session of the caller identified by the Authorization
// header when the body carries none. The route is unauthenticated so
// that a client holding only a refresh token can still end its
// session; the access identity is therefore verified here, not by
// middleware.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if raw != "" {
		if _, _, err := utils.VerifyToken(h.Cfg.RefreshSecret, raw); err != nil {
			return fail(c, http.StatusForbidden, "invalid refresh token")
		}
		if err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(raw)); err != nil {
			return fail(c, http.StatusInternalServerError, "logout failed")
		}
		return respond(c, http.StatusOK, "logged out", nil)
	}

	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return fail(c, http.StatusBadRequest, "provide refreshToken or an access token")
	}
	uid, _, err := utils.VerifyToken(h.Cfg.AccessSecret, strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authorized")
	}
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return fail(c, http.StatusInternalServerError, "logout failed")
	}
	return respond(c, http.StatusOK, "logged out", nil)
}
