// Package response writes the JSON envelope every API endpoint uses:
// {"status": ..., "message": ..., "data": ..., "errors": ...}.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/pedalpoint/bikeshop/pkg/orm"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, e envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	json.NewEncoder(w).Encode(e) //nolint:errcheck
}

// Success sends a 200 with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, envelope{Status: http.StatusOK, Data: data})
}

// Message sends a 200 carrying only a message.
func Message(w http.ResponseWriter, msg string) {
	write(w, envelope{Status: http.StatusOK, Message: msg})
}

// Created sends a 201 with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, envelope{Status: http.StatusCreated, Data: data})
}

// Paginated sends a 200 whose data wraps items with pagination metadata.
func Paginated(w http.ResponseWriter, data interface{}, pg orm.Pagination) {
	write(w, envelope{Status: http.StatusOK, Data: map[string]interface{}{
		"items":      data,
		"pagination": pg,
	}})
}

// Error sends an error response with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 carrying the field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) { Error(w, http.StatusUnauthorized, "Unauthorized") }

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) { Error(w, http.StatusForbidden, "Forbidden") }

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) { Error(w, http.StatusNotFound, "Not found") }
