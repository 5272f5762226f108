// Package errors provides structured error types for the seqviz toolkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, HTTP API, and library surface
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - STRUCTURAL_*: malformed input trees (cycles, shared subtrees, orphans)
//   - CONSISTENCY_*: inputs that violate clustering invariants
//   - CONFIGURATION_*: unknown orientations, transforms, or styles
//   - INVALID_*: general input validation failures
//   - NOT_FOUND_*: missing resources
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeStructuralCycle, "node %d has two parents", id)
//	if errors.Is(err, errors.ErrCodeStructuralCycle) {
//	    // Handle malformed tree
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Structural errors: the input is not a single connected tree.
	// Never recovered locally; surfaced to the caller.
	ErrCodeStructural       Code = "STRUCTURAL"
	ErrCodeStructuralCycle  Code = "STRUCTURAL_CYCLE"
	ErrCodeStructuralShared Code = "STRUCTURAL_SHARED_SUBTREE"
	ErrCodeStructuralOrphan Code = "STRUCTURAL_DISCONNECTED"

	// Consistency errors: the tree is well-formed but violates clustering
	// invariants (non-monotonic merge heights). Recoverable only via the
	// explicit allow-non-monotonic option.
	ErrCodeConsistency Code = "CONSISTENCY"

	// Configuration errors: unknown orientation, transform, or bracket
	// style. Never silently defaulted.
	ErrCodeConfiguration Code = "CONFIGURATION"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidLinkage Code = "INVALID_LINKAGE"
	ErrCodeInvalidNewick  Code = "INVALID_NEWICK"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeLayoutNotFound Code = "LAYOUT_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsStructural reports whether err carries any STRUCTURAL_* code.
func IsStructural(err error) bool {
	switch GetCode(err) {
	case ErrCodeStructural, ErrCodeStructuralCycle, ErrCodeStructuralShared, ErrCodeStructuralOrphan:
		return true
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
