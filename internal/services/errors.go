package services

import "errors"

// Machine-readable error codes surfaced to API callers.
const (
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeNotFound         = "NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
)

// Error is a domain failure with a machine-readable code. Anything else that
// escapes a service call is an infrastructure failure and maps to a 500.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errUnauthenticated() *Error {
	return &Error{Code: CodeUnauthenticated, Message: "Authentication required"}
}

func errNotFound(what string) *Error {
	return &Error{Code: CodeNotFound, Message: what + " not found"}
}

func errValidation(message string) *Error {
	return &Error{Code: CodeValidationFailed, Message: message}
}

// CodeOf returns the domain error code, or "" for infrastructure failures.
func CodeOf(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}
