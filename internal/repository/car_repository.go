package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gowheels/go-wheels/internal/model"
)

// CarRepo provides read access to the car fleet. Cars are managed out
// of band; the booking engines only ever read them, and the admission
// engine additionally locks the row to serialize concurrent bookings
// for the same car.
type CarRepo struct{ DB *sql.DB }

func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{DB: db} }

const carColumns = "id, make, model, year, daily_rate, seats, transmission, fuel_type, mileage, image, created_at, updated_at"

func scanCar(row *sql.Row) (model.Car, error) {
	var c model.Car
	err := row.Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.DailyRate, &c.Seats,
		&c.Transmission, &c.FuelType, &c.Mileage, &c.Image, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Car{}, ErrNotFound
	}
	return c, err
}

// GetByID fetches a single car.
func (r *CarRepo) GetByID(ctx context.Context, id uint64) (model.Car, error) {
	return scanCar(r.DB.QueryRowContext(ctx,
		"SELECT "+carColumns+" FROM cars WHERE id=? LIMIT 1", id))
}

// GetForUpdateTx fetches a car inside a transaction and takes a row
// lock on it. The admission engine relies on this lock: two concurrent
// bookings for the same car serialize here, so the second one sees the
// first one's committed rows when it runs the overlap check.
func (r *CarRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Car, error) {
	return scanCar(tx.QueryRowContext(ctx,
		"SELECT "+carColumns+" FROM cars WHERE id=? LIMIT 1 FOR UPDATE", id))
}

// List returns the whole fleet ordered by make and model.
func (r *CarRepo) List(ctx context.Context) ([]model.Car, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+carColumns+" FROM cars ORDER BY make, model")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cars := make([]model.Car, 0)
	for rows.Next() {
		var c model.Car
		if err := rows.Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.DailyRate, &c.Seats,
			&c.Transmission, &c.FuelType, &c.Mileage, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}
