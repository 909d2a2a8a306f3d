package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed or missing request fields. Callers get a
	// wrapped error carrying the specific reason.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned when an operation needs a caller identity and none was presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUserAlreadyExists is returned when attempting to register with an existing email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrRecipeNotFound is returned when the referenced recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrForbidden is returned when the caller may not act on the recipe.
	ErrForbidden = errors.New("forbidden")
)

func invalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

// deniedError is an ErrForbidden whose message is safe to show the caller.
type deniedError struct {
	reason string
}

func (e *deniedError) Error() string { return e.reason }

func (e *deniedError) Unwrap() error { return ErrForbidden }

func forbidden(reason string) error {
	return &deniedError{reason: reason}
}
