package core

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrStoreUnavailable signals a transient persistence failure; the caller may retry.
	ErrStoreUnavailable = errors.New("store unavailable, try again later")

	// ErrInvalidID signals a malformed document identifier.
	ErrInvalidID = errors.New("invalid identifier")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := pkgerrors.Cause(err).(*shutdown)
	return ok
}
