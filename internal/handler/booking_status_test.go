package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/gowheels/go-wheels/internal/model"
)

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestSetStatusRejectsMalformedID(t *testing.T) {
	h := &BookingHandler{}
	c, rec := newJSONContext(t, http.MethodPatch, "/", `{"status":"confirmed"}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.SetStatus(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid ID format")
}

func TestSetStatusRejectsStatusOutsidePatchSet(t *testing.T) {
	h := &BookingHandler{}
	for _, status := range []string{"active", "upcoming", "deleted", ""} {
		c, rec := newJSONContext(t, http.MethodPatch, "/", `{"status":"`+status+`"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")

		require.NoError(t, h.SetStatus(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, status)
		require.Contains(t, rec.Body.String(), "invalid status value")
	}
}

func TestCreateRejectsInvertedDates(t *testing.T) {
	h := &BookingHandler{}
	cases := []struct {
		name, pickup, ret string
	}{
		{"return before pickup", "2024-05-05", "2024-05-01"},
		{"same day", "2024-05-05", "2024-05-05"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := `{"carId":1,"pickupDate":"` + tc.pickup + `","returnDate":"` + tc.ret + `"}`
			c, rec := newJSONContext(t, http.MethodPost, "/", body)
			c.Set("user", model.User{ID: 1, Name: "Jane", Email: "jane@example.com"})

			require.NoError(t, h.Create(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), "return date must be after pickup date")
		})
	}
}

func TestCreateRequiresBookingInfo(t *testing.T) {
	h := &BookingHandler{}
	c, rec := newJSONContext(t, http.MethodPost, "/", `{"pickupDate":"2024-05-01"}`)
	c.Set("user", model.User{ID: 1})

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "missing required booking information")
}

func TestCheckoutValidation(t *testing.T) {
	h := &PaymentHandler{}
	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"zero amount", `{"amount":0,"email":"a@b.co","pickupDate":"2024-05-01","returnDate":"2024-05-02"}`, "amount must be greater than zero"},
		{"bad email", `{"amount":100,"email":"nope","pickupDate":"2024-05-01","returnDate":"2024-05-02"}`, "validation failed for email"},
		{"bad dates", `{"amount":100,"email":"a@b.co","pickupDate":"soon","returnDate":"2024-05-02"}`, "invalid dates"},
		{"return before pickup", `{"amount":100,"email":"a@b.co","pickupDate":"2024-05-05","returnDate":"2024-05-02"}`, "return date must not be before pickup date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/", tc.body)
			require.NoError(t, h.CreateCheckoutSession(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), tc.msg)
		})
	}
}

func TestConfirmRejectsMalformedID(t *testing.T) {
	h := &PaymentHandler{}
	c, rec := newJSONContext(t, http.MethodGet, "/?bookingId=abc", "")
	require.NoError(t, h.Confirm(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
