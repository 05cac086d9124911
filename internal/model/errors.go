package model

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the engine. Handlers map them to HTTP statuses;
// everything else is treated as a storage/internal failure.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Validationf wraps a formatted message as a validation error so callers can
// match it with errors.Is(err, ErrValidation).
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// NotFoundf wraps a formatted message as a not-found error.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}
