package handler // handler defines http handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/model"
)

// fail writes the uniform error envelope: a false success flag plus a
// human-readable message.
func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"success": false, "message": msg})
}

// getUserID extracts the authenticated user's id stored by JWTAuth.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// currentUser returns the full identity loaded by JWTAuth.
func currentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get("user").(model.User)
	return u, ok
}

// parseID parses a numeric path parameter, rejecting zero.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// bindFields reads the request body into a flat key/value map,
// accepting either JSON or a (multipart) form. A map is used instead
// of a typed struct because both booking engines work from an explicit
// field allow-list and must detect key presence, including keys
// explicitly set to an empty value. The uploaded image, when present,
// is returned separately under the "carImage" form part.
func bindFields(c echo.Context) (map[string]any, *multipart.FileHeader, error) {
	fields := map[string]any{}
	var file *multipart.FileHeader

	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		if c.Request().Body != nil {
			dec := json.NewDecoder(c.Request().Body)
			dec.UseNumber()
			if err := dec.Decode(&fields); err != nil {
				return nil, nil, err
			}
		}
		return fields, nil, nil
	}

	form, err := c.MultipartForm()
	if err == nil {
		for k, vals := range form.Value {
			if len(vals) > 0 {
				fields[k] = vals[0]
			}
		}
		if fhs := form.File["carImage"]; len(fhs) > 0 {
			file = fhs[0]
		}
		return fields, file, nil
	}

	// Plain urlencoded form
	values, err := c.FormParams()
	if err != nil {
		return nil, nil, err
	}
	for k, vals := range values {
		if len(vals) > 0 {
			fields[k] = vals[0]
		}
	}
	return fields, file, nil
}

// fieldString renders a bound field as its string form for typed
// parsing; numbers bound from JSON arrive as json.Number.
func fieldString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// respond writes the success envelope with any extra payload keys.
func respond(c echo.Context, code int, msg string, extra echo.Map) error {
	body := echo.Map{"success": true, "message": msg}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(code, body)
}
