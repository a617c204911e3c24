package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Validation errors
	ErrValidation = errors.New("validation failed")

	// Identity errors
	ErrAuthFailed      = errors.New("password does not match the identity of record")
	ErrProfileMismatch = errors.New("nickname or team does not match the identity of record")
	ErrAccountNotFound = errors.New("no entries exist for this identity")

	// Entry errors
	ErrWindowClosed = errors.New("entry can only be corrected on the day it was created")

	// Account deletion errors
	ErrPasswordMismatch = errors.New("password does not match")
	ErrNotConfirmed     = errors.New("account deletion was not confirmed")

	// Ledger store errors
	ErrStoreUnavailable = errors.New("ledger store unavailable")
	ErrVersionConflict  = errors.New("ledger was modified concurrently")
)

// NewValidationError wraps ErrValidation with a specific reason so callers
// can both match errors.Is(err, ErrValidation) and surface the detail.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
