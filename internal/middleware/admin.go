package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin aborts the request unless the authenticated identity
// carries the admin flag. It assumes JWTAuth ran earlier and stored
// "is_admin" in the context; a missing or false flag is answered with
// 401 rather than 403 so the gate never confirms the resource exists.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, ok := c.Get("is_admin").(bool)
			if !ok || !isAdmin {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false, "message": "not authorized as admin",
				})
			}
			return next(c)
		}
	}
}
