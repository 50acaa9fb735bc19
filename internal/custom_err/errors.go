package custom_err

import (
	"errors"
	"fmt"
)

var (
	// Conversion errors
	ErrNotFound          = errors.New("resource not found")
	ErrInsertionFailed   = errors.New("conversion was not assigned an id")
	ErrPersistence       = errors.New("persistence failure")
	ErrInvalidTransition = errors.New("conversion is already in a terminal state")
	ErrShuttingDown      = errors.New("service is shutting down")

	// Rate errors
	ErrRateUnavailable = errors.New("rate unavailable")
	ErrRatesNotLoaded  = errors.New("rate feed returned no usable entries")

	// Admin errors
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenNotActive     = errors.New("token not active yet")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// RecordNotFoundError names the conversion id that could not be found.
type RecordNotFoundError struct {
	ID int64
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("conversion %d not found", e.ID)
}

func (e *RecordNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RateUnavailableError names the currency missing from the current rate snapshot.
type RateUnavailableError struct {
	Currency string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("rate unavailable for %s", e.Currency)
}

func (e *RateUnavailableError) Is(target error) bool {
	return target == ErrRateUnavailable
}
