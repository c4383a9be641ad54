package errors

import (
	"errors"
	"fmt"
)

// Error is a classified failure raised while loading the template,
// generating a document or persisting an intake record.
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Context string    `json:"context,omitempty"`
	Cause   error     `json:"-"`
}

// ErrorType categorises an Error for callers that translate it into a
// transport status.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeInvalidRequest
	ErrorTypeTemplateNotFound
	ErrorTypeInvalidTemplate
	ErrorTypeFillFailed
	ErrorTypeStoreFailure
	ErrorTypeNotFound
	ErrorTypeSecurityRestriction
)

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Type, e.Message)
	if e.Context != "" {
		msg += ": " + e.Context
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same type, so sentinel values like
// ErrTemplateNotFound can be used with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type
}

// String returns a string representation of the ErrorType
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeInvalidRequest:
		return "INVALID_REQUEST"
	case ErrorTypeTemplateNotFound:
		return "TEMPLATE_NOT_FOUND"
	case ErrorTypeInvalidTemplate:
		return "INVALID_TEMPLATE"
	case ErrorTypeFillFailed:
		return "FILL_FAILED"
	case ErrorTypeStoreFailure:
		return "STORE_FAILURE"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	case ErrorTypeSecurityRestriction:
		return "SECURITY_RESTRICTION"
	default:
		return "UNKNOWN"
	}
}

// Sentinels for errors.Is.
var (
	ErrInvalidRequest   = &Error{Type: ErrorTypeInvalidRequest}
	ErrTemplateNotFound = &Error{Type: ErrorTypeTemplateNotFound}
	ErrInvalidTemplate  = &Error{Type: ErrorTypeInvalidTemplate}
	ErrFillFailed       = &Error{Type: ErrorTypeFillFailed}
	ErrStoreFailure     = &Error{Type: ErrorTypeStoreFailure}
	ErrNotFound         = &Error{Type: ErrorTypeNotFound}
)

// New creates a new Error
func New(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(errorType ErrorType, message string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Type: errorType, Message: message, Cause: err}
}

// WithContext adds context to an existing Error
func (e *Error) WithContext(context string) *Error {
	e.Context = context
	return e
}

// TypeOf returns the type of the first *Error in err's chain, or
// ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}
