package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes. It deliberately touches no backing
// service: a saturated database must not make the process look dead.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
