// Package testkit holds small helpers for exercising HTTP handlers in
// tests: JSON requests, recorded responses and envelope decoding.
package testkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pedalpoint/bikeshop/pkg/middleware"
)

// Envelope mirrors the JSON shape every handler responds with.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    json.RawMessage   `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSONRequest builds a request with body marshalled to JSON. A nil body
// produces an empty request.
func JSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AsUser stamps an authenticated identity onto the request context, the
// same way the auth middleware would after validating a token.
func AsUser(req *http.Request, userID uint, role string) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), userID, role))
}

// Do runs the request through handler and returns the recorder.
func Do(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals the recorded response body into the standard envelope.
func Decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"response is not a valid envelope: %s", rec.Body.String())
	return env
}

// DecodeData unmarshals the envelope's data payload into dest.
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()

	env := Decode(t, rec)
	require.NotNil(t, env.Data, "envelope has no data: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dest))
}
