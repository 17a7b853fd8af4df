// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication:
// the health check, the uploaded-image file server and the public fleet
// catalog. The optional cache middleware is applied to the catalog
// reads only; it skips authenticated requests on its own.
func RegisterRoutes(e *echo.Echo, cars *handler.CarHandler, uploadDir string, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	// Uploaded booking images are served back under the same prefix
	// they are referenced by in persisted records.
	e.Static("/uploads", uploadDir)

	browse := e.Group("/cars")
	if cache != nil {
		browse.Use(cache)
	}
	browse.GET("", cars.List)
	browse.GET("/:id", cars.Get)
}
