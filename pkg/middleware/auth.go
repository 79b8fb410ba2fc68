package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pedalpoint/bikeshop/pkg/auth"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

type userIDKey struct{}
type roleKey struct{}

// Auth validates the Bearer token and stores the authenticated user id and
// role in the request context. Handlers read them back with UserIDFromCtx
// and RoleFromCtx; no server-side session state is kept.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		ctx = context.WithValue(ctx, roleKey{}, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromCtx returns the authenticated user id stored by Auth.
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey{}).(uint)
	return id, ok
}

// RoleFromCtx returns the authenticated user's role stored by Auth.
func RoleFromCtx(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey{}).(string)
	return role, ok
}

// WithUser returns a context pre-populated with a user id and role.
// Test helper; production requests go through Auth.
func WithUser(ctx context.Context, userID uint, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey{}, userID)
	return context.WithValue(ctx, roleKey{}, role)
}
