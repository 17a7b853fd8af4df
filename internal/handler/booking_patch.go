package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gowheels/go-wheels/internal/model"
)

// The mutation engine applies client patches through an explicit
// allow-list: every mutable field has an entry below, and any key
// outside the table is silently ignored. This is a security boundary,
// not a convenience — protected fields such as the owning user id can
// never be mass-assigned, whatever the request body contains.
//
// Appliers validate and coerce their value and assign it on success.
// The first failure aborts the whole patch; the caller never persists
// a partially applied booking.

type fieldApplier func(b *model.Booking, v any) error

var bookingPatchFields = map[string]fieldApplier{
	"customer": func(b *model.Booking, v any) error {
		b.Customer = fieldString(v)
		return nil
	},
	"email": func(b *model.Booking, v any) error {
		s := fieldString(v)
		if !emailPattern.MatchString(s) {
			return fmt.Errorf("validation failed for email")
		}
		b.Email = s
		return nil
	},
	"phone": func(b *model.Booking, v any) error {
		b.Phone = fieldString(v)
		return nil
	},
	"car": func(b *model.Booking, v any) error {
		// Accepts a structured summary or its JSON-serialized form; a
		// summary without an id inherits the booking's current car id.
		summary, ok := model.SummaryFromValue(v, b.Car.ID)
		if !ok {
			return nil // unparsable car payloads are skipped, not fatal
		}
		b.Car = summary
		return nil
	},
	"pickupDate": func(b *model.Booking, v any) error {
		t, ok := model.ParseDate(fieldString(v))
		if !ok {
			return fmt.Errorf("invalid date format for pickupDate")
		}
		b.PickupDate = t
		return nil
	},
	"returnDate": func(b *model.Booking, v any) error {
		t, ok := model.ParseDate(fieldString(v))
		if !ok {
			return fmt.Errorf("invalid date format for returnDate")
		}
		b.ReturnDate = t
		return nil
	},
	"bookingDate": func(b *model.Booking, v any) error {
		t, ok := model.ParseDate(fieldString(v))
		if !ok {
			return fmt.Errorf("invalid date format for bookingDate")
		}
		b.BookingDate = &t
		return nil
	},
	"status": func(b *model.Booking, v any) error {
		s := fieldString(v)
		if !model.ValidUpdateStatus(s) {
			return fmt.Errorf("invalid value for status")
		}
		b.Status = s
		return nil
	},
	"amount": func(b *model.Booking, v any) error {
		f, err := patchNumber(v)
		if err != nil {
			return fmt.Errorf("invalid number format for amount")
		}
		b.Amount = f
		return nil
	},
	"paymentStatus": func(b *model.Booking, v any) error {
		s := fieldString(v)
		if !model.ValidPaymentStatus(s) {
			return fmt.Errorf("invalid value for paymentStatus")
		}
		b.PaymentStatus = s
		return nil
	},
	"paymentMethod": func(b *model.Booking, v any) error {
		b.PaymentMethod = fieldString(v)
		return nil
	},
	"details": func(b *model.Booking, v any) error {
		m, err := patchObject(v)
		if err != nil {
			return fmt.Errorf("invalid value for details")
		}
		b.Details = m
		return nil
	},
	"address": func(b *model.Booking, v any) error {
		m, err := patchObject(v)
		if err != nil {
			return fmt.Errorf("invalid value for address")
		}
		b.Address = m
		return nil
	},
	"source": func(b *model.Booking, v any) error {
		s := fieldString(v)
		if !model.ValidSource(s) {
			return fmt.Errorf("invalid value for source")
		}
		b.Source = s
		return nil
	},
	"isVerified": func(b *model.Booking, v any) error {
		bv, err := patchBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for isVerified")
		}
		b.IsVerified = bv
		return nil
	},
}

// applyBookingPatch mutates b in place from the bound request fields.
// Unknown keys are ignored. The caller works on a copy of the stored
// booking, so an error here leaves nothing half-applied.
func applyBookingPatch(b *model.Booking, fields map[string]any) error {
	for name, apply := range bookingPatchFields {
		v, present := fields[name]
		if !present {
			continue
		}
		if err := apply(b, v); err != nil {
			return err
		}
	}
	return nil
}

func patchNumber(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	return 0, fmt.Errorf("not a number")
}

func patchBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	}
	return false, fmt.Errorf("not a boolean")
}

// patchObject accepts a free-form object or its JSON-serialized form,
// as multipart forms deliver nested values as strings.
func patchObject(v any) (map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(t), &m); err != nil {
			return nil, err
		}
		return m, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("not an object")
}
