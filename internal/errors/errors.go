package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin gateway
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Relay errors
	ErrConfiguration = errors.New("configuration error")
	ErrRelayFailure  = errors.New("relay failure")

	// Submission errors
	ErrValidation = errors.New("validation failed")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// FieldErrors maps a form field name to a human-readable message. A
// submission with any field errors is blocked entirely; there is no
// partial submit.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	return fmt.Sprintf("%v: %d field(s)", ErrValidation, len(f))
}

// Unwrap makes errors.Is(err, ErrValidation) hold for any FieldErrors.
func (f FieldErrors) Unwrap() error {
	return ErrValidation
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
