package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONBody is the envelope of every JSON response.
type JSONBody struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSON writes v as {"data": v} with status 200.
func JSON(v any) Response {
	return JSONWithStatus(http.StatusOK, JSONBody{Data: v})
}

// JSONError writes err as {"error": {...}} with the status it maps to.
func JSONError(err error) Response {
	detail := &ErrorDetail{Code: "internal_error", Message: http.StatusText(http.StatusInternalServerError)}
	status := http.StatusInternalServerError

	var httpErr HTTPError
	var validation ValidationError
	switch {
	case errors.As(err, &validation):
		status = http.StatusUnprocessableEntity
		detail = &ErrorDetail{Code: "validation_error", Message: validation.Error(), Details: validation}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		detail = &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}
	return JSONWithStatus(status, JSONBody{Error: detail})
}

func JSONWithStatus(status int, body JSONBody) Response {
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		return json.NewEncoder(w).Encode(body)
	})
}
