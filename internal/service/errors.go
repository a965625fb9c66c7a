package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidationFailed wraps every input problem; the handlers map it to 400.
	ErrValidationFailed = errors.New("validation failed")
	// ErrNotFound covers records that do not exist or belong to another user.
	ErrNotFound = errors.New("not found")
	// ErrAllSourcesFailed means every entry fetch of an aggregation failed.
	// The accompanying view is still returned, zeroed.
	ErrAllSourcesFailed = errors.New("all data sources failed")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, msg)
}

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}
