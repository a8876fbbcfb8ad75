// Package errors provides structured error types for relabel.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the core, the CLI and the API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The graph engine reports three fatal kinds, all detected before any
// output is produced:
//   - INVALID_GRAPH: malformed offsets or adjacency
//   - INVALID_PERMUTATION: a relabeling that is not a bijection on 0..n-1
//   - DISCONNECTED_GRAPH: breadth-first traversal did not reach every vertex
//
// Pluggable orderers and bounds add two more, which callers are expected to
// skip over rather than abort on:
//   - ORDERER_UNAVAILABLE: the plugin is not offered for this graph
//   - ORDERER_FAILED: the plugin ran and returned an error
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGraph, "offsets[0] = %d, want 0", off[0])
//	if errors.Is(err, errors.ErrCodeInvalidGraph) {
//	    // Reject the input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeOrdererFailed, origErr, "orderer %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph engine errors
	ErrCodeInvalidGraph       Code = "INVALID_GRAPH"
	ErrCodeInvalidPermutation Code = "INVALID_PERMUTATION"
	ErrCodeDisconnectedGraph  Code = "DISCONNECTED_GRAPH"

	// Plugin errors
	ErrCodeOrdererUnavailable Code = "ORDERER_UNAVAILABLE"
	ErrCodeOrdererFailed      Code = "ORDERER_FAILED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It walks the whole error chain, so an INVALID_PERMUTATION wrapped inside an
// ORDERER_FAILED matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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

// IsSkippable reports whether err means an optional computation should be
// left out of a report instead of failing the whole run.
func IsSkippable(err error) bool {
	return Is(err, ErrCodeOrdererUnavailable) || Is(err, ErrCodeOrdererFailed)
}
