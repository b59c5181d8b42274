// Package errors provides structured error types for columnview.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the API and the viewer
//   - Machine-readable error codes for programmatic handling
//   - Short user-facing messages
//
// # Error Codes
//
// Codes group failures by who can fix them:
//   - INVALID_*, CYCLE_DETECTED: the graph or request is malformed
//   - NOT_FOUND, UNAVAILABLE: the graph source could not deliver
//   - NETWORK_ERROR, TIMEOUT: transport failures, usually retryable
//   - INTERNAL_ERROR: bugs
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "graph %d not found", id)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // 404
//	}
//
//	// Wrap existing errors; errors.Is from the standard library still
//	// matches the cause.
//	err := errors.Wrap(errors.ErrCodeInvalidGraph, dagErr, "cannot display graph")
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph errors
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeCycleDetected Code = "CYCLE_DETECTED"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Source errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeUnavailable Code = "UNAVAILABLE"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Messages shown by hosts that display graphs.
const (
	MsgUnavailable   = "graph unavailable"
	MsgCannotDisplay = "cannot display graph"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error code to the status an API handler responds with.
// Unknown codes map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidGraph, ErrCodeCycleDetected:
		return http.StatusUnprocessableEntity
	case ErrCodeUnavailable, ErrCodeNetwork:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
