package middleware // middleware contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/repository"
	"github.com/gowheels/go-wheels/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token against the access secret and loads the user it identifies.
// On success the context carries "user_id" (uint64), "user"
// (model.User, password hash cleared) and "is_admin" (bool).
//
// Expired tokens are answered with the expiry timestamp in the body so
// clients can tell an expired credential from a forged one and attempt
// a refresh. A token whose user no longer exists yields 404.
func JWTAuth(accessSecret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false, "message": "not authorized, token missing",
				})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, expiredAt, err := utils.VerifyToken(accessSecret, raw)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"success":   false,
						"message":   "token expired",
						"expiredAt": expiredAt.UTC().Format(time.RFC3339),
					})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false, "message": "not authorized, token failed",
				})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByID(ctx, userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return c.JSON(http.StatusNotFound, echo.Map{
						"success": false, "message": "user not found",
					})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"success": false, "message": "failed to load user",
				})
			}
			u.PasswordHash = ""

			c.Set("user_id", u.ID)
			c.Set("user", u)
			c.Set("is_admin", u.IsAdmin)
			return next(c)
		}
	}
}
