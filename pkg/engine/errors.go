package engine

import (
	"errors"
	"fmt"
)

// ErrorClass classifies a convergence failure for reporting.
type ErrorClass string

const (
	// ErrorClassConfiguration indicates invalid invocation input, such as a
	// configuration file path that does not exist. Raised before any engine
	// session is opened.
	ErrorClassConfiguration ErrorClass = "configuration"

	// ErrorClassNotFound indicates a named package or group is absent where
	// its presence is required. Nothing is committed for the invocation.
	ErrorClassNotFound ErrorClass = "not-found"

	// ErrorClassEngine indicates an opaque failure from the external package
	// engine: resolution conflicts, download failures, transaction errors.
	// These are propagated verbatim, never retried or interpreted.
	ErrorClassEngine ErrorClass = "engine"
)

// Error is a classified convergence error with context.
type Error struct {
	// Class is the error classification.
	Class ErrorClass `json:"class"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Resource is the specifier, group, or path that caused the error.
	Resource string `json:"resource,omitempty"`

	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Resource != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Resource)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Class, msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Class, msg)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by class so callers can compare against sentinel
// instances with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(message string, err error) *Error {
	return &Error{
		Class:   ErrorClassConfiguration,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a new not-found error for the given resource.
func NewNotFoundError(resource, message string) *Error {
	return &Error{
		Class:    ErrorClassNotFound,
		Message:  message,
		Resource: resource,
	}
}

// NewEngineError creates a new opaque engine error.
func NewEngineError(message string, err error) *Error {
	return &Error{
		Class:   ErrorClassEngine,
		Message: message,
		Err:     err,
	}
}

// WithResource attaches the offending resource to the error.
func (e *Error) WithResource(resource string) *Error {
	e.Resource = resource
	return e
}

// IsConfiguration reports whether err is classified as a configuration error.
func IsConfiguration(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Class == ErrorClassConfiguration
}

// IsNotFound reports whether err is classified as a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Class == ErrorClassNotFound
}
