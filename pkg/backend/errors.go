package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnexpectedResponse = errors.New("backend: unexpected response")
	ErrRequestFailed      = errors.New("backend: request failed")
	ErrMissingID          = errors.New("backend: missing id")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	// Message is the "error" field of the response body, if any.
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}
