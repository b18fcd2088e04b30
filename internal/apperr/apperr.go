package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies failures at the request boundary.
type Kind string

const (
	KindValidation Kind = "validation"
	KindProvider   Kind = "provider"
	KindStorage    Kind = "storage"
)

// Error carries a Kind plus the field (validation) or operation (provider/storage) that failed.
type Error struct {
	Kind  Kind
	Field string
	Op    string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Err == nil:
		return string(e.Kind) + " error"
	case e.Kind == KindValidation || e.Op == "":
		return e.Err.Error()
	default:
		return e.Op + ": " + e.Err.Error()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a client-caused problem with one input field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Err: errors.New(message)}
}

// Provider wraps a completion provider failure.
func Provider(op string, err error) *Error {
	return &Error{Kind: KindProvider, Op: op, Err: err}
}

// Storage wraps a durable store failure.
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// FieldOf returns the offending field of a validation error.
func FieldOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// Status maps err to an HTTP status code. Anything not classified is a server error.
func Status(err error) int {
	if KindOf(err) == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
