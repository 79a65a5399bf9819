// Package apperrors defines the service error taxonomy. Services signal
// failures with one of three kinds; handlers map them 1:1 to HTTP status.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a referenced entity as absent (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks a validation failure (HTTP 400).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable marks an unexpected internal failure (HTTP 500).
	ErrUnavailable = errors.New("service unavailable")
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidInputf wraps ErrInvalidInput with a formatted message.
func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

// Unavailablef wraps ErrUnavailable with a formatted message.
func Unavailablef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnavailable)...)
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err is a validation failure.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
