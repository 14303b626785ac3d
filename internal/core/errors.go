package core

import "errors"

// Domain error taxonomy. Route handlers translate these into HTTP statuses;
// everything else falls through to a generic 500.
var (
	ErrUnauthorized       = errors.New("not authorized")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateKey       = errors.New("duplicate field value")
	ErrInsufficientData   = errors.New("not enough transaction data for an analysis")
	ErrServiceUnavailable = errors.New("ai service unavailable")
	ErrMisconfigured      = errors.New("ai service is not configured")
)

// IsValidation reports whether err is one of the domain validation errors,
// i.e. a client mistake rather than a server fault.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrEmptyCategory) ||
		errors.Is(err, ErrCategoryTooLong) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrEmptyUpdate)
}
