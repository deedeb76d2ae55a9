// Package apperror defines the error kinds the HTTP layer knows how to render.
package apperror

import (
	"errors"
	"net/http"
)

// Kind categorizes an application error.
type Kind int

const (
	// Internal is any unexpected store or hashing failure.
	Internal Kind = iota
	// Validation covers missing or duplicate required fields.
	Validation
	// Unauthenticated means no credential was presented.
	Unauthenticated
	// InvalidToken means a credential was presented but failed verification.
	InvalidToken
	// NotFound means the addressed record does not exist.
	NotFound
)

// Error is an error with a kind and a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation, InvalidToken:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New builds an error of kind wrapping err.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewValidation reports bad client input.
func NewValidation(message string) *Error {
	return &Error{Kind: Validation, Message: message}
}

// NewNotFound reports a missing resource.
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
