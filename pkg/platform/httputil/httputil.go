// Package httputil holds shared JSON request and response helpers.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"hdc/pkg/platform/sentinel"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON encodes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps sentinel errors to HTTP statuses and writes the body.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, sentinel.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, sentinel.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, sentinel.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, status, ErrorBody{Error: err.Error()})
}

// DecodeJSON decodes the request body into v, rejecting unknown shapes with
// a wrapped sentinel.ErrInvalidState so callers map it to a 400.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", sentinel.ErrInvalidState)
	}
	return nil
}
