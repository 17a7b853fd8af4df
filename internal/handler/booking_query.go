package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/model"
	"github.com/gowheels/go-wheels/internal/repository"
)

// List handles GET /bookings (admin). Filters: ?search= matches
// customer name, email, phone and the car snapshot case-insensitively;
// ?status= is an exact match unless "all"; ?from= bounds the pickup
// date from below. Results are newest-created-first.
func (h *BookingHandler) List(c echo.Context) error {
	q := repository.SearchQuery{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	}
	if from := c.QueryParam("from"); from != "" {
		t, ok := model.ParseDate(from)
		if !ok {
			return fail(c, http.StatusBadRequest, "invalid from date")
		}
		q.From = &t
	}
	bookings, err := h.Bookings.Search(c.Request().Context(), q)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to load bookings")
	}
	return respond(c, http.StatusOK, "bookings loaded", echo.Map{
		"data":  bookings,
		"count": len(bookings),
	})
}

// ListMine handles GET /bookings/my-bookings, scoped to the caller.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	bookings, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to load bookings")
	}
	return respond(c, http.StatusOK, "bookings loaded", echo.Map{
		"data":  bookings,
		"count": len(bookings),
	})
}

type statusReq struct {
	Status string `json:"status"`
}

// SetStatus handles PATCH /bookings/:id/status (admin). The accepted
// value set here is narrower than the one the general update path
// takes: pending, confirmed, completed or cancelled only.
func (h *BookingHandler) SetStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid ID format")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if !model.ValidPatchStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "invalid status value")
	}
	booking, err := h.Bookings.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "booking not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to update status")
	}
	return respond(c, http.StatusOK, "booking status updated successfully", echo.Map{
		"data": booking,
	})
}

// Delete handles DELETE /bookings/:id (admin). The stored image file,
// if any, is released best-effort after the row is gone.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid ID format")
	}
	uploaded, err := h.Bookings.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "booking not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to delete booking")
	}
	if uploaded != "" {
		h.Uploads.Remove(uploaded)
	}
	return respond(c, http.StatusOK, "booking deleted successfully", nil)
}
