package review

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrListingMissing = errors.New("listing not found")
	ErrNotFound       = errors.New("review not found")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("review already exists")
)
