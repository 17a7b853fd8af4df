package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/model"
	"github.com/gowheels/go-wheels/internal/queue"
	"github.com/gowheels/go-wheels/internal/repository"
	"github.com/gowheels/go-wheels/internal/service"
	"github.com/gowheels/go-wheels/internal/storage"
)

// BookingHandler groups the repositories and the upload store used by
// the booking admission, mutation and query endpoints. The admission
// and mutation paths run their critical section inside a single
// database transaction so the overlap check and the write are one
// atomic unit; two concurrent requests for the same car serialize on
// the car row lock.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Cars     *repository.CarRepo
	Uploads  *storage.Uploads
}

func NewBookingHandler(bookings *repository.BookingRepo, cars *repository.CarRepo, uploads *storage.Uploads) *BookingHandler {
	if bookings == nil || cars == nil || uploads == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Cars: cars, Uploads: uploads}
}

// Create handles POST /bookings. The request may be JSON or a
// multipart form carrying an optional carImage upload. The date
// interval is checked against every blocking booking for the car
// inside the same transaction that inserts the new row.
func (h *BookingHandler) Create(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	fields, file, err := bindFields(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	pickupRaw := fieldString(fields["pickupDate"])
	returnRaw := fieldString(fields["returnDate"])
	carID := model.CoerceID(fields["carId"])
	if pickupRaw == "" || returnRaw == "" || carID == 0 {
		return fail(c, http.StatusBadRequest, "missing required booking information")
	}
	pickup, ok1 := model.ParseDate(pickupRaw)
	ret, ok2 := model.ParseDate(returnRaw)
	if !ok1 || !ok2 {
		return fail(c, http.StatusBadRequest, "invalid dates")
	}
	if !pickup.Before(ret) {
		return fail(c, http.StatusBadRequest, "return date must be after pickup date")
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB.BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Locking the car row serializes concurrent admissions for the
	// same car: the second transaction waits here and then sees the
	// first one's committed booking in the overlap count.
	car, err := h.Cars.GetForUpdateTx(ctx, tx, carID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "car not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}

	if err := h.Bookings.EnsureAvailableTx(ctx, tx, carID, pickup, ret); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fail(c, http.StatusConflict, "car is not available for the selected dates")
		}
		return fail(c, http.StatusInternalServerError, "failed to check availability")
	}

	days := model.RentalDays(pickup, ret)
	amount := float64(days) * car.DailyRate

	var uploaded string
	if file != nil {
		uploaded, err = h.Uploads.Save(file)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "failed to store image")
		}
	}

	customer := fieldString(fields["customer"])
	if customer == "" {
		customer = user.Name
	}
	email := fieldString(fields["email"])
	if email == "" {
		email = user.Email
	}

	booking := model.Booking{
		UserID:     user.ID,
		Customer:   customer,
		Email:      email,
		Phone:      fieldString(fields["phone"]),
		Car:        model.NewCarSummary(car),
		CarImage:   uploaded,
		PickupDate: pickup,
		ReturnDate: ret,
		Amount:     amount,
		Status:     model.StatusPending,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &booking); err != nil {
		return fail(c, http.StatusInternalServerError, "error creating booking")
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "failed to commit transaction")
	}
	committed = true

	// Downstream consumers (logging, notifications) learn about the
	// booking over the broker; a publish failure never fails the request.
	go func(b model.Booking) {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := service.PublishBookingCreated(pubCtx, queue.NewBookingCreatedEvent(b)); err != nil {
			log.Printf("booking: publish created event failed: %v", err)
		}
	}(booking)

	return respond(c, http.StatusCreated, "booking created successfully", echo.Map{
		"booking": booking,
	})
}
