// Package errors provides structured error types for the slideshow application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - CONSISTENCY_VIOLATION, DEGENERATE_STATE: broken slideshow invariants
//   - NETWORK_*: Network-related errors (cache and store backends)
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "photo %d: missing tag count", idx)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to reach %s", addr)
//
//	// Invariant violations carry the offending photo
//	err := errors.NewViolation(12, "photo appears on more than one slide")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Slideshow invariants
	ErrCodeConsistencyViolation Code = "CONSISTENCY_VIOLATION"
	ErrCodeDegenerateState      Code = "DEGENERATE_STATE"
	ErrCodeUnpairedVertical     Code = "UNPAIRED_VERTICAL"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeRunNotFound  Code = "RUN_NOT_FOUND"

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

// Error implements the error interface. A cause whose text equals the
// message is not repeated.
func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
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

// NoPhoto is the PhotoID of a [Violation] that is not tied to a single photo.
const NoPhoto = -1

// Violation identifies the photo and the rule behind a consistency failure.
// It is carried as the Cause of a CONSISTENCY_VIOLATION [Error].
type Violation struct {
	PhotoID int    // Offending photo identity, or NoPhoto
	Rule    string // The broken rule in plain words
}

// Error implements the error interface.
func (v *Violation) Error() string {
	if v.PhotoID == NoPhoto {
		return v.Rule
	}
	return fmt.Sprintf("photo %d: %s", v.PhotoID, v.Rule)
}

// NewViolation creates a CONSISTENCY_VIOLATION error for photoID and rule.
func NewViolation(photoID int, rule string) *Error {
	v := &Violation{PhotoID: photoID, Rule: rule}
	return &Error{
		Code:    ErrCodeConsistencyViolation,
		Message: v.Error(),
		Cause:   v,
	}
}

// AsViolation extracts the [Violation] from err, if any.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
