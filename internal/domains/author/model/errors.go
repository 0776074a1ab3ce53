package model

import (
	"errors"
	"fmt"
)

var (
	// Validation Errors
	ErrInvalidIdentifier    = errors.New("author id is not a valid uuid")
	ErrInvalidToken         = errors.New("author activation token is invalid")
	ErrInvalidEmail         = errors.New("author email is invalid")
	ErrEmptyOrInsecureHash  = errors.New("author password hash is empty or insecure")
	ErrUnsupportedAlgorithm = errors.New("author hash was not produced by the designated algorithm")
	ErrWrongHashLength      = errors.New("author hash has the wrong length")
	ErrValueTooLong         = errors.New("author field exceeds maximum length")
	ErrInvalidUsername      = errors.New("author username is invalid")

	// Constraint Errors, reported inside a StoreError
	ErrDuplicateEmail    = errors.New("author with this email already exists")
	ErrDuplicateUsername = errors.New("author with this username already exists")

	// Business Logic Errors
	ErrAuthorNotFound     = errors.New("author not found")
	ErrAlreadyActivated   = errors.New("author is already activated")
	ErrActivationMismatch = errors.New("activation token does not match")
	ErrInvalidCredentials = errors.New("current password is incorrect")
	ErrInvalidRequest     = errors.New("invalid request")
)

// StoreError wraps every failure coming back from the relational store,
// including constraint violations and rows that no longer validate.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("author store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err came from the store rather than from validation.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// ToErrorCode converts error to a stable error code
func ToErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateEmail):
		return "DUPLICATE_EMAIL"
	case errors.Is(err, ErrDuplicateUsername):
		return "DUPLICATE_USERNAME"
	case IsStoreError(err):
		return "STORE_ERROR"
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrAlreadyActivated):
		return "ALREADY_ACTIVATED"
	case errors.Is(err, ErrActivationMismatch):
		return "ACTIVATION_MISMATCH"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrInvalidRequest):
		return "INVALID_REQUEST"
	case errors.Is(err, ErrInvalidIdentifier):
		return "INVALID_IDENTIFIER"
	case errors.Is(err, ErrInvalidToken):
		return "INVALID_TOKEN"
	case errors.Is(err, ErrInvalidEmail):
		return "INVALID_EMAIL"
	case errors.Is(err, ErrEmptyOrInsecureHash):
		return "EMPTY_OR_INSECURE_HASH"
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return "UNSUPPORTED_ALGORITHM"
	case errors.Is(err, ErrWrongHashLength):
		return "WRONG_HASH_LENGTH"
	case errors.Is(err, ErrValueTooLong):
		return "VALUE_TOO_LONG"
	case errors.Is(err, ErrInvalidUsername):
		return "INVALID_USERNAME"
	default:
		return "INTERNAL_ERROR"
	}
}
