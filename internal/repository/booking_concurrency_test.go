//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gowheels/go-wheels/internal/database"
	"github.com/gowheels/go-wheels/internal/model"
)

// Exercises the admission critical section against a real MySQL
// instance: two concurrent attempts to book the same car for the same
// dates serialize on the car row lock, and exactly one insert commits.
// Run with: go test -tags integration ./internal/repository/ (DB_* env
// vars as for the server).
func TestConcurrentAdmissionSingleWinner(t *testing.T) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		t.Skip("DB_HOST not set; integration environment required")
	}
	db, err := database.Open(os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
		host, os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	suffix := time.Now().UnixNano()

	userRes, err := db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash) VALUES (?,?,?)",
		"Race Tester", fmt.Sprintf("race-%d@example.com", suffix), "x")
	require.NoError(t, err)
	userID64, err := userRes.LastInsertId()
	require.NoError(t, err)
	userID := uint64(userID64)

	carRes, err := db.ExecContext(ctx,
		"INSERT INTO cars (make, model, year, daily_rate, seats, transmission, fuel_type, mileage, image) VALUES (?,?,?,?,?,?,?,?,?)",
		"Test", fmt.Sprintf("Racer-%d", suffix), 2024, 100.0, 4, "manual", "petrol", 0, "")
	require.NoError(t, err)
	carID64, err := carRes.LastInsertId()
	require.NoError(t, err)
	carID := uint64(carID64)

	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, "DELETE FROM bookings WHERE car_id = ?", carID)
		_, _ = db.ExecContext(ctx, "DELETE FROM cars WHERE id = ?", carID)
		_, _ = db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID)
	})

	cars := NewCarRepo(db)
	bookings := NewBookingRepo(db)
	pickup, _ := model.ParseDate("2030-01-01")
	ret, _ := model.ParseDate("2030-01-04")

	admit := func() error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		committed := false
		defer func() {
			if !committed {
				_ = tx.Rollback()
			}
		}()
		car, err := cars.GetForUpdateTx(ctx, tx, carID)
		if err != nil {
			return err
		}
		if err := bookings.EnsureAvailableTx(ctx, tx, carID, pickup, ret); err != nil {
			return err
		}
		b := model.Booking{
			UserID:     userID,
			Customer:   "Race Tester",
			Email:      fmt.Sprintf("race-%d@example.com", suffix),
			Car:        model.NewCarSummary(car),
			PickupDate: pickup,
			ReturnDate: ret,
			Amount:     float64(model.RentalDays(pickup, ret)) * car.DailyRate,
			Status:     model.StatusPending,
		}
		if err := bookings.CreateTx(ctx, tx, &b); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		committed = true
		return nil
	}

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = admit()
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected admission error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, conflicts)

	var stored int
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE car_id = ?", carID).Scan(&stored))
	require.Equal(t, 1, stored)
}
