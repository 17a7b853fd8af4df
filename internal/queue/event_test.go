package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gowheels/go-wheels/internal/model"
)

func TestNewBookingCreatedEvent(t *testing.T) {
	pickup, _ := model.ParseDate("2024-05-01")
	ret, _ := model.ParseDate("2024-05-04")
	created := time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC)

	ev := NewBookingCreatedEvent(model.Booking{
		ID:         11,
		UserID:     7,
		Customer:   "Jane Doe",
		Email:      "jane@example.com",
		Car:        model.CarSummary{ID: 3, Make: "Toyota", Model: "Corolla"},
		PickupDate: pickup,
		ReturnDate: ret,
		Amount:     300,
		Status:     model.StatusPending,
		CreatedAt:  created,
	})

	require.Equal(t, uint64(11), ev.BookingID)
	require.Equal(t, uint64(7), ev.UserID)
	require.Equal(t, uint64(3), ev.CarID)
	require.Equal(t, "Toyota", ev.CarMake)
	require.Equal(t, "2024-05-01T00:00:00Z", ev.PickupDate)
	require.Equal(t, "2024-05-04T00:00:00Z", ev.ReturnDate)
	require.Equal(t, "2024-04-20T12:00:00Z", ev.CreatedAt)
	require.Equal(t, model.StatusPending, ev.Status)
}

func TestNewBookingCreatedEventDefaultsCreatedAt(t *testing.T) {
	ev := NewBookingCreatedEvent(model.Booking{ID: 1})
	require.NotEmpty(t, ev.CreatedAt)
}
