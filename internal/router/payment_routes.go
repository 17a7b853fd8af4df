package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/handler"
)

// RegisterPayments registers the payment stub endpoints. They are
// deliberately unauthenticated: the gateway redirect flow they mimic
// has no session of its own.
func RegisterPayments(e *echo.Echo, p *handler.PaymentHandler) {
	g := e.Group("/payments")
	g.POST("/create-checkout-session", p.CreateCheckoutSession)
	g.GET("/confirm", p.Confirm)
}
