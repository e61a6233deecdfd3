package handler

import (
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// HTTPError is an error with an HTTP status. Key is a stable machine-readable code.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

// NewHTTPError returns an HTTPError.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest         = NewHTTPError(http.StatusBadRequest, "bad_request")
	ErrNotFound           = NewHTTPError(http.StatusNotFound, "not_found")
	ErrConflict           = NewHTTPError(http.StatusConflict, "conflict")
	ErrTooManyRequests    = NewHTTPError(http.StatusTooManyRequests, "too_many_requests")
	ErrBadGateway         = NewHTTPError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable = NewHTTPError(http.StatusServiceUnavailable, "service_unavailable")
	ErrNotDataStar        = NewHTTPError(http.StatusBadRequest, "datastar_required")

	ErrNilResponse = errors.New("handler: nil response")
)

// ValidationError maps field names to messages.
type ValidationError url.Values

func NewValidationError() ValidationError { return ValidationError{} }

func (v ValidationError) Add(field, msg string) { url.Values(v).Add(field, msg) }

func (v ValidationError) Has(field string) bool { return url.Values(v).Has(field) }

func (v ValidationError) Get(field string) string { return url.Values(v).Get(field) }

func (v ValidationError) Empty() bool { return len(v) == 0 }

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(v[f], ", "))
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return strings.Join(parts, "; ")
}
