package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"smartlearn/internal/config"
)

// ErrEmptyBody is returned by ParseJSON when the request has no body
var ErrEmptyBody = errors.New("request body is empty")

// ParseStatus is the status for a ParseJSON failure:
// 413 when the body exceeded the size limit, 400 otherwise.
func ParseStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size and rejects trailing data after the first value.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	// Unknown fields are ignored: the form sends extra keys we do not use.

	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}

	// Anything but whitespace after the first value is rejected, including a stray '}'
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("invalid JSON: %w", err)
		}
		return errors.New("invalid JSON: unexpected data after the request object")
	}

	return nil
}
