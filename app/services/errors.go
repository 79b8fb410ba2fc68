package services

import "errors"

// Sentinel errors shared by all services. Controllers translate these into
// HTTP statuses; anything not in this list surfaces as a 500.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("permission denied")
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidPeriod      = errors.New("invalid revenue period")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrUnknownProduct     = errors.New("unknown product in order")
	ErrDuplicateWishlist  = errors.New("product already on wishlist")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
