package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTrailingJSON is returned by [DecodeJSON] when the body holds more than
// one JSON value.
var ErrTrailingJSON = errors.New("unexpected data after JSON value")

// WriteJSON writes data as an application/json response with statusCode and
// returns the number of body bytes written. If data cannot be marshaled the
// client gets a plain 500 instead.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// DecodeJSON reads exactly one JSON value from body into dst.
func DecodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("error decoding JSON: %w", err)
	}
	if dec.More() {
		return ErrTrailingJSON
	}
	return nil
}
