package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gowheels/go-wheels/internal/model"
)

// BookingRepo provides CRUD operations for bookings. The car summary
// is stored denormalized in the booking row itself (car_* columns), so
// reads never join the cars table and historical bookings are immune
// to later fleet edits. Methods with a Tx suffix run inside a caller
// supplied transaction; the caller commits or rolls back.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// dbtx is satisfied by both *sql.DB and *sql.Tx, letting the insert
// and fetch paths serve the transactional and plain variants.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const bookingColumns = `id, user_id, customer, email, phone,
	car_id, car_make, car_model, car_year, car_daily_rate, car_seats,
	car_transmission, car_fuel_type, car_mileage, car_image,
	uploaded_image, pickup_date, return_date, booking_date,
	amount, currency, status, payment_status, payment_method,
	details, address, source, is_verified, created_at, updated_at`

type bookingScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row bookingScanner) (model.Booking, error) {
	var (
		b           model.Booking
		bookingDate sql.NullTime
		details     sql.NullString
		address     sql.NullString
	)
	err := row.Scan(
		&b.ID, &b.UserID, &b.Customer, &b.Email, &b.Phone,
		&b.Car.ID, &b.Car.Make, &b.Car.Model, &b.Car.Year, &b.Car.DailyRate, &b.Car.Seats,
		&b.Car.Transmission, &b.Car.FuelType, &b.Car.Mileage, &b.Car.Image,
		&b.CarImage, &b.PickupDate, &b.ReturnDate, &bookingDate,
		&b.Amount, &b.Currency, &b.Status, &b.PaymentStatus, &b.PaymentMethod,
		&details, &address, &b.Source, &b.IsVerified, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return model.Booking{}, err
	}
	if bookingDate.Valid {
		t := bookingDate.Time
		b.BookingDate = &t
	}
	if details.Valid && details.String != "" {
		_ = json.Unmarshal([]byte(details.String), &b.Details)
	}
	if address.Valid && address.String != "" {
		_ = json.Unmarshal([]byte(address.String), &b.Address)
	}
	return b, nil
}

// jsonText serializes a free-form map for a TEXT column, storing NULL
// when the map is empty.
func jsonText(m map[string]any) any {
	if len(m) == 0 {
		return nil
	}
	bs, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return string(bs)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func (r *BookingRepo) create(ctx context.Context, q dbtx, b *model.Booking) error {
	const ins = `INSERT INTO bookings (
		user_id, customer, email, phone,
		car_id, car_make, car_model, car_year, car_daily_rate, car_seats,
		car_transmission, car_fuel_type, car_mileage, car_image,
		uploaded_image, pickup_date, return_date, booking_date,
		amount, currency, status, payment_status, payment_method,
		details, address, source, is_verified
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := q.ExecContext(ctx, ins,
		b.UserID, b.Customer, b.Email, b.Phone,
		b.Car.ID, b.Car.Make, b.Car.Model, b.Car.Year, b.Car.DailyRate, b.Car.Seats,
		b.Car.Transmission, b.Car.FuelType, b.Car.Mileage, b.Car.Image,
		b.CarImage, b.PickupDate, b.ReturnDate, nullTime(b.BookingDate),
		b.Amount, b.Currency, b.Status, b.PaymentStatus, b.PaymentMethod,
		jsonText(b.Details), jsonText(b.Address), b.Source, b.IsVerified,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	// Query back the full row to populate timestamps and defaults
	stored, err := scanBooking(q.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ?", uint64(id)))
	if err != nil {
		return err
	}
	*b = stored
	return nil
}

// CreateTx inserts a booking within the scope of an existing
// transaction and populates the stored row (id, timestamps, column
// defaults) back onto b.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	return r.create(ctx, tx, b)
}

// Create inserts a booking outside any transaction. Used by the
// payment checkout path, which creates pre-confirmed bookings.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	return r.create(ctx, r.DB, b)
}

// EnsureAvailableTx returns ErrConflict when any booking for the car
// is in a blocking status and its [pickup_date, return_date] interval
// intersects the requested one under inclusive bounds. It must run in
// the same transaction as the subsequent insert, after the car row has
// been locked, so the check and the write form one atomic unit.
func (r *BookingRepo) EnsureAvailableTx(ctx context.Context, tx *sql.Tx, carID uint64, pickup, ret time.Time) error {
	n, err := r.countOverlappingTx(ctx, tx, carID, pickup, ret)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	return nil
}

func (r *BookingRepo) countOverlappingTx(ctx context.Context, tx *sql.Tx, carID uint64, pickup, ret time.Time) (int, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(model.BlockingStatuses)), ",")
	q := `SELECT COUNT(*) FROM bookings
		WHERE car_id = ?
		  AND status IN (` + placeholders + `)
		  AND pickup_date <= ? AND return_date >= ?`
	args := make([]any, 0, len(model.BlockingStatuses)+3)
	args = append(args, carID)
	for _, s := range model.BlockingStatuses {
		args = append(args, s)
	}
	args = append(args, ret, pickup)
	var n int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetByID fetches a single booking.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// GetByIDTx fetches a booking inside a transaction and locks the row
// for the remainder of it, so a concurrent update or delete waits for
// this mutation to finish.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	b, err := scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ? LIMIT 1 FOR UPDATE", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// UpdateTx writes every mutable column of the booking back inside the
// caller's transaction. The owning user id is deliberately not part of
// the statement.
func (r *BookingRepo) UpdateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const upd = `UPDATE bookings SET
		customer=?, email=?, phone=?,
		car_id=?, car_make=?, car_model=?, car_year=?, car_daily_rate=?, car_seats=?,
		car_transmission=?, car_fuel_type=?, car_mileage=?, car_image=?,
		uploaded_image=?, pickup_date=?, return_date=?, booking_date=?,
		amount=?, currency=?, status=?, payment_status=?, payment_method=?,
		details=?, address=?, source=?, is_verified=?
		WHERE id=?`
	_, err := tx.ExecContext(ctx, upd,
		b.Customer, b.Email, b.Phone,
		b.Car.ID, b.Car.Make, b.Car.Model, b.Car.Year, b.Car.DailyRate, b.Car.Seats,
		b.Car.Transmission, b.Car.FuelType, b.Car.Mileage, b.Car.Image,
		b.CarImage, b.PickupDate, b.ReturnDate, nullTime(b.BookingDate),
		b.Amount, b.Currency, b.Status, b.PaymentStatus, b.PaymentMethod,
		jsonText(b.Details), jsonText(b.Address), b.Source, b.IsVerified,
		b.ID,
	)
	if err != nil {
		return err
	}
	stored, err := scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ?", b.ID))
	if err != nil {
		return err
	}
	*b = stored
	return nil
}

// SearchQuery defines the admin listing filters. Zero values mean
// "no filter"; Status equal to "all" is treated as a wildcard.
type SearchQuery struct {
	Search string
	Status string
	From   *time.Time
}

// Search returns bookings matching the filters, newest first. The
// text filter is a case-insensitive substring match across customer
// name, email, phone and the car make/model snapshot.
func (r *BookingRepo) Search(ctx context.Context, q SearchQuery) ([]model.Booking, error) {
	where := []string{}
	args := []any{}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		where = append(where,
			`(LOWER(customer) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?
			  OR LOWER(CONCAT(car_make, ' ', car_model)) LIKE ?)`)
		args = append(args, like, like, like, like)
	}
	if q.Status != "" && q.Status != "all" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.From != nil {
		where = append(where, "pickup_date >= ?")
		args = append(args, *q.From)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	sel := "SELECT " + bookingColumns + " FROM bookings WHERE " + cond + " ORDER BY created_at DESC"
	rows, err := r.DB.QueryContext(ctx, sel, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListByUser returns the caller's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SetStatus updates only the lifecycle state of a booking and returns
// the stored row. Status validation happens in the handler; this
// method reports ErrNotFound when the booking does not exist.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, status string) (model.Booking, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return model.Booking{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Distinguish "no such row" from "status already set".
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Booking{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a booking and returns the uploaded image reference
// that was stored on it, so the caller can release the file.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) (string, error) {
	var uploaded string
	err := r.DB.QueryRowContext(ctx,
		"SELECT uploaded_image FROM bookings WHERE id = ? LIMIT 1", id).Scan(&uploaded)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id); err != nil {
		return "", err
	}
	return uploaded, nil
}
