// Package controllers translates HTTP requests into service calls and
// service results into JSON envelopes.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/logger"
	"github.com/pedalpoint/bikeshop/pkg/middleware"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// pathUint parses a numeric chi URL parameter.
func pathUint(r *http.Request, name string) (uint, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// pageLimit reads ?page= and ?limit= with the service-side defaults left
// to orm.Paginate's clamping.
func pageLimit(r *http.Request) (int, int) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return page, limit
}

// currentUser pulls the authenticated identity from the request context.
// The auth middleware guarantees it on protected routes.
func currentUser(r *http.Request) (uint, string, bool) {
	id, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		return 0, "", false
	}
	role, _ := middleware.RoleFromCtx(r.Context())
	return id, role, true
}

// fail maps service sentinels onto HTTP statuses. Anything unrecognised is
// logged and reported as a 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPeriod),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrUnknownProduct):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateWishlist),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		response.Error(w, http.StatusConflict, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("unhandled service error", "error", err)
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
