// Package domainerrors carries the typed error taxonomy shared by the ledgers
// and the transport. Services return these; handlers map codes to HTTP status.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies an error kind independently of its message.
type Code string

const (
	// Authorization
	CodeNotAuthorized Code = "not_authorized"
	CodeNotOwner      Code = "not_owner"
	CodeUnauthorized  Code = "unauthorized"

	// Validation
	CodeNameInvalid  Code = "name_invalid"
	CodeInvalidInput Code = "invalid_input"

	// Conflict
	CodeNameTaken                 Code = "name_taken"
	CodeTargetAlreadyHasSubdomain Code = "target_already_has_subdomain"
	CodeAlreadyPrimary            Code = "already_primary"

	CodeNotFound Code = "not_found"
	CodeInternal Code = "internal"
)

// Error is a domain error. Message is the user-visible text and is returned
// verbatim by Error so callers relying on literal messages keep working.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether any domain error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsDomain reports whether err is (or wraps) a domain error other than internal.
func IsDomain(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Code != CodeInternal
}

// ToHTTPStatus maps a code to the status the transport responds with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotAuthorized, CodeNotOwner:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNameInvalid, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNameTaken, CodeTargetAlreadyHasSubdomain, CodeAlreadyPrimary:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
