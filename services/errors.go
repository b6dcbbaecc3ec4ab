// services/errors.go
package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a business-rule failure so the HTTP boundary can
// map it to a status code without inspecting messages.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION_ERROR"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindAlreadyExists     ErrorKind = "ALREADY_EXISTS"
	KindAlreadyPaid       ErrorKind = "ALREADY_PAID"
	KindConflict          ErrorKind = "CONFLICT"
	KindInternal          ErrorKind = "INTERNAL"
)

// Error is the typed failure returned by every core operation. Field,
// Expected and Actual carry enough detail for the boundary to produce
// an actionable message.
type Error struct {
	Kind     ErrorKind
	Field    string
	Message  string
	Expected string
	Actual   string
}

func (e *Error) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: %s (expected %s, got %s)", e.Kind, e.Message, e.Expected, e.Actual)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func validationErr(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func unauthorizedErr(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func notFoundErr(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func invalidTransitionErr(expected, actual string) *Error {
	return &Error{
		Kind:     KindInvalidTransition,
		Field:    "status",
		Message:  "booking is not in the required status",
		Expected: expected,
		Actual:   actual,
	}
}

func invalidStateErr(expected, actual string) *Error {
	return &Error{
		Kind:     KindInvalidState,
		Field:    "status",
		Message:  "booking is not in the required status",
		Expected: expected,
		Actual:   actual,
	}
}

func alreadyExistsErr(message string) *Error {
	return &Error{Kind: KindAlreadyExists, Message: message}
}

func conflictErr(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func internalErr(err error) *Error {
	return &Error{Kind: KindInternal, Message: err.Error()}
}

// KindOf extracts the ErrorKind from err, or KindInternal when err is
// not a service error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
