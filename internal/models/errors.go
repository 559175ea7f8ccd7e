package models

import "net/http"

// Kind classifies a domain failure. Its string form is the "type" field of
// the error response body.
type Kind string

const (
	KindInvalidIdentifier  Kind = "InvalidIdentifier"
	KindMissingCredential  Kind = "MissingCredential"
	KindWeakPassword       Kind = "WeakPassword"
	KindNotFound           Kind = "NotFound"
	KindDuplicateLogin     Kind = "DuplicateLogin"
	KindStructuralMismatch Kind = "StructuralMismatch"
	KindInternal           Kind = "Internal"
)

// Error is a typed domain failure. Validation and lookup failures are
// returned as values and matched by the HTTP layer, never panicked.
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

func (e *Error) Unwrap() error { return e.Err }

// E builds a domain error of the given kind.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a domain error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// HTTPStatus maps an error kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateLogin:
		return http.StatusConflict
	case KindInvalidIdentifier, KindMissingCredential, KindWeakPassword, KindStructuralMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
