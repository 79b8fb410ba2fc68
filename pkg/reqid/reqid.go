// Package reqid assigns every HTTP request a correlation id. The id rides
// the request context and the X-Request-ID header, and the logging
// middleware stamps it onto every log line for that request.
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the request id between client, proxies and server.
const Header = "X-Request-ID"

type ctxKey struct{}

// New generates a random request id.
func New() string { return uuid.NewString() }

// WithValue stores id in ctx.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the request id in ctx, or "" when absent.
func FromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware reuses an inbound X-Request-ID when a proxy already set one,
// otherwise mints a fresh id. Either way the id goes into the context and
// is echoed on the response.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = New()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
