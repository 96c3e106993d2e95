package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	malformedBodyMsg  = "malformed request body"
	dateTimeField     = "body"
	dateTimeFormatMsg = "date-time values must be in RFC 3339 format, e.g. 2024-06-10T10:00:00Z"
)

// BindError converts echo bind failure into client error without decoder internals.
// Values of wrong type become PayloadError, syntactically broken payloads stay 400.
func BindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			return echo.NewHTTPError(http.StatusBadRequest, malformedBodyMsg)
		}

		pldErr := &PayloadError{violations: make([]violation, 0, 1)}
		pldErr.Violation(field, fmt.Sprintf("%s must be %s", field, kindName(typeErr.Type)))
		return pldErr
	}

	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		pldErr := &PayloadError{violations: make([]violation, 0, 1)}
		pldErr.Violation(dateTimeField, dateTimeFormatMsg)
		return pldErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code != http.StatusBadRequest {
		return echo.NewHTTPError(httpErr.Code, http.StatusText(httpErr.Code))
	}
	return echo.NewHTTPError(http.StatusBadRequest, malformedBodyMsg)
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a valid value"
	}
}
