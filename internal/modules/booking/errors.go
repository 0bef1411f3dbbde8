package booking

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrListingMissing = errors.New("listing not found")
	ErrNotFound       = errors.New("booking not found")
	ErrInvalidStatus  = errors.New("invalid booking status")
)
