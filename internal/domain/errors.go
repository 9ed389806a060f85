package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound  = errors.New("usuario not found")
	ErrWordNotFound  = errors.New("no palavra available")
	ErrUsernameTaken = errors.New("username already registered")
	ErrValidation    = errors.New("invalid request")
	ErrInternalError = errors.New("internal server error")
)

// IsNotFoundError checks if an error is a not-found type error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrWordNotFound)
}

// IsValidationError checks if an error is a validation type error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
