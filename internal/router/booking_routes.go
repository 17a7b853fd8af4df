package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/handler"
	"github.com/gowheels/go-wheels/internal/middleware"
	"github.com/gowheels/go-wheels/internal/repository"
)

// RegisterBookings registers the booking endpoints. Every route needs a
// valid access token; listing, updating and deleting other users'
// bookings is admin-only.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, accessSecret string, users *repository.UserRepo) {
	g := e.Group("/bookings")
	g.Use(middleware.JWTAuth(accessSecret, users))

	g.POST("", b.Create)
	g.GET("/my-bookings", b.ListMine)

	admin := g.Group("", middleware.RequireAdmin())
	admin.GET("", b.List)
	admin.PUT("/:id", b.Update)
	admin.PATCH("/:id/status", b.SetStatus)
	admin.DELETE("/:id", b.Delete)
}
