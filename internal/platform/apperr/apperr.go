package apperr

import "errors"

// Closed error taxonomy. Handlers map these to HTTP statuses in one place;
// anything outside the taxonomy is treated as an internal failure and its
// text is never echoed to the client.
var (
	// ErrUnauthenticated is returned for missing, invalid or expired tokens.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the caller lacks the required role or ownership.
	ErrForbidden = errors.New("access denied")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned for malformed or rejected input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPaymentFailed is returned when the payment gateway declines or errors.
	ErrPaymentFailed = errors.New("payment failed")
	// ErrStoreUnavailable is returned when a store query or write fails.
	ErrStoreUnavailable = errors.New("store unavailable")
)
