package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/model"
	"github.com/gowheels/go-wheels/internal/repository"
)

// PaymentHandler is a stub in front of a future payment gateway. No
// money moves: the checkout endpoint records a pre-paid booking and the
// confirm endpoint just echoes it back.
//
// Checkout writes the booking directly as confirmed/completed and does
// NOT run the availability check the regular admission path performs.
// Routing it through admission would reject paid-for dates that a
// pending booking already holds, so the gap stays until the real
// gateway integration decides how to reconcile the two paths.
type PaymentHandler struct {
	Bookings *repository.BookingRepo
	Cars     *repository.CarRepo
}

func NewPaymentHandler(bookings *repository.BookingRepo, cars *repository.CarRepo) *PaymentHandler {
	if bookings == nil || cars == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{Bookings: bookings, Cars: cars}
}

type checkoutReq struct {
	Customer   string  `json:"customer"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	CarID      uint64  `json:"carId"`
	PickupDate string  `json:"pickupDate"`
	ReturnDate string  `json:"returnDate"`
	Amount     float64 `json:"amount"`
}

// CreateCheckoutSession handles POST /payments/create-checkout-session.
// The caller supplies the amount; it is not re-derived from the car's
// daily rate.
func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Amount <= 0 {
		return fail(c, http.StatusBadRequest, "amount must be greater than zero")
	}
	if !emailPattern.MatchString(req.Email) {
		return fail(c, http.StatusBadRequest, "validation failed for email")
	}
	pickup, ok1 := model.ParseDate(req.PickupDate)
	ret, ok2 := model.ParseDate(req.ReturnDate)
	if !ok1 || !ok2 {
		return fail(c, http.StatusBadRequest, "invalid dates")
	}
	if ret.Before(pickup) {
		return fail(c, http.StatusBadRequest, "return date must not be before pickup date")
	}

	ctx := c.Request().Context()

	summary := model.CarSummary{ID: req.CarID}
	if req.CarID != 0 {
		if car, err := h.Cars.GetByID(ctx, req.CarID); err == nil {
			summary = model.NewCarSummary(car)
		}
	}

	booking := model.Booking{
		Customer:      req.Customer,
		Email:         req.Email,
		Phone:         req.Phone,
		Car:           summary,
		PickupDate:    pickup,
		ReturnDate:    ret,
		Amount:        req.Amount,
		Currency:      "INR",
		Status:        model.StatusConfirmed,
		PaymentStatus: model.PaymentCompleted,
		Source:        "website",
	}
	if err := h.Bookings.Create(ctx, &booking); err != nil {
		return fail(c, http.StatusInternalServerError, "error creating booking")
	}

	return respond(c, http.StatusCreated, "checkout session created", echo.Map{
		"booking": booking,
	})
}

// Confirm handles GET /payments/confirm?bookingId=. It only verifies
// the booking exists; the checkout path already persisted it paid.
func (h *PaymentHandler) Confirm(c echo.Context) error {
	id := model.CoerceID(c.QueryParam("bookingId"))
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid ID format")
	}
	booking, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "booking not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}
	return respond(c, http.StatusOK, "payment confirmed", echo.Map{
		"booking": booking,
	})
}
