package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Car is a rental unit in the fleet. From the booking engines'
// perspective cars are read-only; a booking never references a car
// row directly but embeds a CarSummary snapshot taken at creation
// time, so later fleet edits do not alter historical bookings.
type Car struct {
	ID           uint64    `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	DailyRate    float64   `json:"dailyRate"`
	Seats        int       `json:"seats"`
	Transmission string    `json:"transmission"`
	FuelType     string    `json:"fuelType"`
	Mileage      int       `json:"mileage"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CarSummary is the denormalized copy of car attributes embedded into
// a booking. It is a value type with its own construction and
// coercion rules and must never be treated as a foreign-key join.
type CarSummary struct {
	ID           uint64  `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	DailyRate    float64 `json:"dailyRate"`
	Seats        int     `json:"seats"`
	Transmission string  `json:"transmission"`
	FuelType     string  `json:"fuelType"`
	Mileage      int     `json:"mileage"`
	Image        string  `json:"image"`
}

// NewCarSummary snapshots a live car row into the embedded value
// form, applying the same defaulting rules as SummaryFromValue.
func NewCarSummary(c Car) CarSummary {
	s := CarSummary{
		ID:           c.ID,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		DailyRate:    c.DailyRate,
		Seats:        c.Seats,
		Transmission: c.Transmission,
		FuelType:     c.FuelType,
		Mileage:      c.Mileage,
		Image:        c.Image,
	}
	if s.Seats == 0 {
		s.Seats = 4
	}
	return s
}

// SummaryFromValue rebuilds a CarSummary from client-supplied input,
// which may arrive as a structured object or as its JSON-serialized
// form (multipart forms send it as a string). Numeric fields are
// coerced from either numbers or numeric strings. Seats default to 4,
// dailyRate and mileage to 0. A summary lacking an id inherits
// fallbackID, normally the existing booking's car id.
func SummaryFromValue(v any, fallbackID uint64) (CarSummary, bool) {
	var m map[string]any
	switch t := v.(type) {
	case string:
		if err := json.Unmarshal([]byte(t), &m); err != nil {
			return CarSummary{}, false
		}
	case map[string]any:
		m = t
	case CarSummary:
		if t.ID == 0 {
			t.ID = fallbackID
		}
		return t, true
	default:
		return CarSummary{}, false
	}
	s := CarSummary{
		ID:           coerceUint(m["id"]),
		Make:         coerceString(m["make"]),
		Model:        coerceString(m["model"]),
		Year:         int(coerceUint(m["year"])),
		DailyRate:    coerceFloat(m["dailyRate"]),
		Seats:        int(coerceUint(m["seats"])),
		Transmission: coerceString(m["transmission"]),
		FuelType:     coerceString(m["fuelType"]),
		Mileage:      int(coerceUint(m["mileage"])),
		Image:        coerceString(m["image"]),
	}
	if s.Image == "" {
		s.Image = coerceString(m["carImage"])
	}
	if s.Seats == 0 {
		s.Seats = 4
	}
	if s.ID == 0 {
		s.ID = fallbackID
	}
	return s, true
}

// CoerceID reads a client-supplied identifier that may arrive as a
// number, a json.Number or a numeric string. Invalid input yields 0,
// which no row ever uses.
func CoerceID(v any) uint64 { return coerceUint(v) }

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}

func coerceUint(v any) uint64 {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return 0
		}
		return uint64(t)
	case int:
		if t < 0 {
			return 0
		}
		return uint64(t)
	case uint64:
		return t
	case json.Number:
		if n, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return 0
}
