package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/handler"
	"github.com/gowheels/go-wheels/internal/middleware"
	"github.com/gowheels/go-wheels/internal/repository"
)

// RegisterAuth registers the authentication endpoints. Register, login
// and refresh are open; validate requires a live access token. Logout
// accepts either a refresh token in the body or, failing that, the
// caller's access identity.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, users *repository.UserRepo) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	g.GET("/validate", a.Validate, middleware.JWTAuth(a.Cfg.AccessSecret, users))
}
