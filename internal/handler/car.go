package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/repository"
)

// CarHandler exposes the public, read-only fleet catalog. Responses
// are served through the Redis cache middleware when it is enabled.
type CarHandler struct {
	Cars *repository.CarRepo
}

func NewCarHandler(cars *repository.CarRepo) *CarHandler {
	return &CarHandler{Cars: cars}
}

// List handles GET /cars.
func (h *CarHandler) List(c echo.Context) error {
	cars, err := h.Cars.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to load cars")
	}
	return respond(c, http.StatusOK, "cars loaded", echo.Map{
		"data":  cars,
		"count": len(cars),
	})
}

// Get handles GET /cars/:id.
func (h *CarHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid ID format")
	}
	car, err := h.Cars.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "car not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to load car")
	}
	return respond(c, http.StatusOK, "car loaded", echo.Map{"data": car})
}
