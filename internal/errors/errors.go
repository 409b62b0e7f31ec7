// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited indicates the caller exceeded a request quota and must
	// wait out the current window.
	ErrRateLimited = errors.New("rate limited")

	// ErrInternal indicates an unexpected failure whose details must not leak
	// to the caller.
	ErrInternal = errors.New("internal error")
)

// CodedError is a domain error carrying a machine-readable code and optional
// response context. The wrapped category error (one of the sentinels above)
// determines the HTTP status; the code and context are surfaced verbatim in
// the JSON error body.
type CodedError struct {
	Code    string
	Message string
	Context map[string]any
	kind    error
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the error category, allowing errors.Is checks against the
// package sentinels.
func (e *CodedError) Unwrap() error {
	return e.kind
}

// WithContext returns a copy of the error with an additional context entry.
// The receiver is not mutated, so package-level error values stay safe for
// concurrent use.
func (e *CodedError) WithContext(key string, value any) *CodedError {
	ctx := make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &CodedError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
		kind:    e.kind,
	}
}

// NewCoded creates a CodedError in the given category.
func NewCoded(kind error, code, message string) *CodedError {
	return &CodedError{
		Code:    code,
		Message: message,
		kind:    kind,
	}
}

// AsCoded finds the first CodedError in err's tree.
func AsCoded(err error) (*CodedError, bool) {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded, true
	}
	return nil, false
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
