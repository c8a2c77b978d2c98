package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the trust/compliance core. The HTTP layer maps these
// to status codes; services wrap them with context via fmt.Errorf and %w.
var (
	ErrNotFound              = errors.New("not found")
	ErrNoActiveConfig        = errors.New("no active score config")
	ErrAlreadyHasBadge       = errors.New("promoter already has this badge")
	ErrBadgeNotHeld          = errors.New("promoter does not hold this badge")
	ErrInvalidTransition     = errors.New("invalid compliance transition")
	ErrRequestAlreadyPending = errors.New("a compliance request is already pending")
	ErrNoPendingRequest      = errors.New("no pending compliance request")
)

// ValidationError carries a human-readable rejection reason for
// admin/promoter-facing actions (missing prerequisites, out-of-range input).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
