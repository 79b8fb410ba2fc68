// Package rbac provides role-based route guards on top of the auth middleware.
package rbac

import (
	"net/http"

	"github.com/pedalpoint/bikeshop/pkg/middleware"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// HasRole returns middleware that allows access only to users with one of
// the given roles. Requires middleware.Auth to have already run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r.Context())
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly is the guard used by every /api/admin and catalog-mutation route.
func AdminOnly(next http.Handler) http.Handler {
	return HasRole("admin")(next)
}
