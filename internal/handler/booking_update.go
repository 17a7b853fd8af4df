package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/repository"
	"github.com/gowheels/go-wheels/internal/storage"
)

// Update handles PUT /bookings/:id (admin). The whole update is one
// transaction: the booking is loaded and locked, the patch is applied
// on a copy through the field allow-list, the date invariant is
// re-checked and the row is written back. Any validation failure rolls
// everything back — partial application is never allowed.
func (h *BookingHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid ID format")
	}

	fields, file, err := bindFields(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
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

	booking, err := h.Bookings.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "booking not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}

	// Image handling sits outside the allow-list: a new upload
	// replaces the stored file, an explicit empty carImage clears it,
	// anything else leaves it untouched. Deleting the previous file is
	// best-effort — the upload directory is not transactional.
	if file != nil {
		if strings.HasPrefix(booking.CarImage, storage.RefPrefix) {
			h.Uploads.Remove(booking.CarImage)
		}
		ref, err := h.Uploads.Save(file)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "failed to store image")
		}
		booking.CarImage = ref
	} else if v, present := fields["carImage"]; present && fieldString(v) == "" {
		if strings.HasPrefix(booking.CarImage, storage.RefPrefix) {
			h.Uploads.Remove(booking.CarImage)
		}
		booking.CarImage = ""
	}

	if err := applyBookingPatch(&booking, fields); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	if !booking.PickupDate.Before(booking.ReturnDate) {
		return fail(c, http.StatusBadRequest, "return date must be after pickup date")
	}

	if err := h.Bookings.UpdateTx(ctx, tx, &booking); err != nil {
		return fail(c, http.StatusInternalServerError, "error updating booking")
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "failed to commit transaction")
	}
	committed = true

	return respond(c, http.StatusOK, "booking updated successfully", echo.Map{
		"data": booking,
	})
}
