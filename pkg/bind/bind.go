// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/pedalpoint/bikeshop/config"
	"github.com/pedalpoint/bikeshop/pkg/validate"
)

const defaultBodyLimit = 4 << 20

// bodyLimit reads MAX_BODY_BYTES, falling back to 4 MB on absence or junk.
func bodyLimit() int64 {
	raw := config.Get("MAX_BODY_BYTES", "")
	if raw == "" {
		return defaultBodyLimit
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyLimit
	}
	return n
}

// JSON decodes r.Body into dest and runs struct-tag validation.
// The body is capped at MAX_BODY_BYTES.
// Validation failures come back as (errs, nil); a malformed, empty or
// oversized body comes back as (nil, err).
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, bodyLimit())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return nil, fmt.Errorf("request body too large (max %d bytes)", tooBig.Limit)
		case errors.Is(err, io.EOF):
			return nil, errors.New("empty request body")
		default:
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
