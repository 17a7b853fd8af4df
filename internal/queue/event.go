// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/gowheels/go-wheels/internal/model"
)

// BookingCreatedEvent is published when a booking passes admission and
// is committed. It carries enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary
// database.
type BookingCreatedEvent struct {
	BookingID  uint64  `json:"booking_id"`
	UserID     uint64  `json:"user_id"`
	Customer   string  `json:"customer"`
	Email      string  `json:"email"`
	CarID      uint64  `json:"car_id"`
	CarMake    string  `json:"car_make"`
	CarModel   string  `json:"car_model"`
	PickupDate string  `json:"pickup_date"`
	ReturnDate string  `json:"return_date"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

// NewBookingCreatedEvent flattens a committed booking into its event
// form. Dates are rendered as RFC 3339 strings so consumers never need
// the model package.
func NewBookingCreatedEvent(b model.Booking) BookingCreatedEvent {
	created := b.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return BookingCreatedEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		Customer:   b.Customer,
		Email:      b.Email,
		CarID:      b.Car.ID,
		CarMake:    b.Car.Make,
		CarModel:   b.Car.Model,
		PickupDate: b.PickupDate.Format(time.RFC3339),
		ReturnDate: b.ReturnDate.Format(time.RFC3339),
		Amount:     b.Amount,
		Status:     b.Status,
		CreatedAt:  created.Format(time.RFC3339),
	}
}
