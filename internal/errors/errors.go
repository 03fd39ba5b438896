// Package errors defines the error taxonomy shared by the service and
// repository layers. Handlers classify these into HTTP statuses; nothing
// below the HTTP boundary inspects status codes.
package errors

import (
	"errors"
	"fmt"
)

// Record-absent errors.
var ErrConcertNotFound = errors.New("concert not found")
var ErrReservationNotFound = errors.New("reservation not found")
var ErrUserNotFound = errors.New("user not found")

// Precondition errors: the record exists but the operation is not
// permitted in its current state. Never retried.
var ErrNoSeatsAvailable = errors.New("no seats available")
var ErrAlreadyCancelled = errors.New("reservation already cancelled")

// Conflict errors.
var ErrEmailExists = errors.New("email already registered")
var ErrHasActiveReservations = errors.New("concert has active reservations")

// ErrValidation marks malformed input detected past the binding layer.
var ErrValidation = errors.New("validation failed")

// Validation wraps ErrValidation with a caller-facing explanation.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Auth errors.
var ErrIdentityRequired = errors.New("user identity is required")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("operation is forbidden for user")

// IsNotFound reports whether err means a referenced record is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrConcertNotFound) ||
		errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsPrecondition reports whether err is a rejected operation on an
// existing record (no seats left, terminal status reached).
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNoSeatsAvailable) ||
		errors.Is(err, ErrAlreadyCancelled)
}

// IsConflict reports whether err is a uniqueness or referential conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrHasActiveReservations)
}

// IsValidation reports whether err is a malformed-input rejection.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
