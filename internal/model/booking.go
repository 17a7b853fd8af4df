package model

import (
	"math"
	"time"
)

// Booking lifecycle states. The canonical enumeration covers every
// state the system can store; the mutation engine and the narrow
// status-patch endpoint each accept a documented subset (see
// ValidUpdateStatus and ValidPatchStatus).
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusActive    = "active"
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment states of a booking.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// BlockingStatuses are the states that count toward date-overlap
// conflicts: a booking in any of these holds the car for its interval.
var BlockingStatuses = []string{StatusPending, StatusActive, StatusUpcoming}

var updateStatuses = map[string]bool{
	StatusPending:   true,
	StatusActive:    true,
	StatusCompleted: true,
	StatusCancelled: true,
	StatusUpcoming:  true,
}

var patchStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

var paymentStatuses = map[string]bool{
	PaymentPending:   true,
	"paid":           true,
	PaymentCompleted: true,
	PaymentFailed:    true,
	PaymentRefunded:  true,
}

var sources = map[string]bool{
	"website": true,
	"admin":   true,
	"phone":   true,
	"walk-in": true,
}

// ValidUpdateStatus reports whether s may be assigned through the
// general booking update path.
func ValidUpdateStatus(s string) bool { return updateStatuses[s] }

// ValidPatchStatus reports whether s may be assigned through the
// status-patch endpoint. This set is deliberately narrower than the
// update set.
func ValidPatchStatus(s string) bool { return patchStatuses[s] }

// ValidPaymentStatus reports whether s is a known payment state.
func ValidPaymentStatus(s string) bool { return paymentStatuses[s] }

// ValidSource reports whether s is a known booking source.
func ValidSource(s string) bool { return sources[s] }

// Booking is the central entity: a user's reservation of one car for
// a date interval, carrying an embedded CarSummary snapshot and the
// payment bookkeeping for the rental.
type Booking struct {
	ID            uint64         `json:"id"`
	UserID        uint64         `json:"userId"`
	Customer      string         `json:"customer"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Car           CarSummary     `json:"car"`
	CarImage      string         `json:"carImage"`
	PickupDate    time.Time      `json:"pickupDate"`
	ReturnDate    time.Time      `json:"returnDate"`
	BookingDate   *time.Time     `json:"bookingDate,omitempty"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	PaymentMethod string         `json:"paymentMethod"`
	Details       map[string]any `json:"details,omitempty"`
	Address       map[string]any `json:"address,omitempty"`
	Source        string         `json:"source"`
	IsVerified    bool           `json:"isVerified"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Overlaps reports whether [aStart, aEnd] and [bStart, bEnd] intersect
// under inclusive bounds: a shared boundary day counts as a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// RentalDays returns the whole-day duration between pickup and return,
// rounding any partial day up. A same-day rental still counts as zero
// days here; callers enforce pickup < return separately.
func RentalDays(pickup, ret time.Time) int {
	ms := ret.Sub(pickup).Milliseconds()
	if ms < 0 {
		ms = -ms
	}
	const dayMs = 24 * 60 * 60 * 1000
	return int(math.Ceil(float64(ms) / float64(dayMs)))
}

// dateLayouts are the accepted client date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate parses a client-supplied date in any accepted layout and
// normalizes it to UTC.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
