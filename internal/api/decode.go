package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var (
	errEmptyBody    = errors.New("empty request body")
	errTrailingData = errors.New("unexpected data after JSON object")
)

// decodeJSON reads exactly one JSON value from the request body into v.
// Unknown fields and trailing data are rejected. An empty body returns
// errEmptyBody and leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return errTrailingData
	}
	return nil
}

// writeDecodeError maps a decodeJSON failure to a 413 or 400 response.
func writeDecodeError(w http.ResponseWriter, err error, message string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "REQUEST_TOO_LARGE")
		return
	}
	writeError(w, http.StatusBadRequest, message, "BAD_REQUEST")
}
