// Package errors provides standardized error types for the portal generator.
//
// Errors carry a Code so the CLI can decide how to report them, and the path
// of the file involved so an administrator knows which file to look at.
//
// # Error Types
//
// PortalError is the primary error type, containing:
//   - Code: Categorizes the error (IO, CONFIG, TEMPLATE, etc.)
//   - Message: Human-readable error description
//   - Path: The file involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Read vs. Write Failures
//
// Failures reading the checksum sidecar or the live configuration are not
// errors at all: the update controller treats them as "absent" and carries on
// with first-run semantics. Failures writing the backup, the live file, the
// staged file or the sidecar are returned as IO errors and abort the run.
//
// # Usage
//
//	// Wrapping a failed write
//	return errors.WrapPath(errors.ErrCodeIO, "failed to write backup", path, err)
//
//	// Validation error
//	return errors.Validation("port must be between 1 and 65535")
//
// # Error Checking
//
//	if errors.Is(err, errors.ErrWriteFailed) {
//	    // Any IO failure matches this sentinel
//	}
//
//	var portalErr *errors.PortalError
//	if errors.As(err, &portalErr) {
//	    fmt.Printf("Error code: %s, Path: %s\n", portalErr.Code, portalErr.Path)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"  // File or record not found
	ErrCodeIO         ErrorCode = "IO"         // Write/copy failure
	ErrCodeConfig     ErrorCode = "CONFIG"     // Options file could not be loaded
	ErrCodeTemplate   ErrorCode = "TEMPLATE"   // Rendering failed
	ErrCodeValidation ErrorCode = "VALIDATION" // Input validation failed
)

// PortalError represents a structured error with context about the operation.
type PortalError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Path    string    // File path (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *PortalError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *PortalError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *PortalError) Is(target error) bool {
	t, ok := target.(*PortalError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrFileNotFound indicates a file the operation required does not exist.
	ErrFileNotFound = &PortalError{Code: ErrCodeNotFound, Message: "file not found"}

	// ErrWriteFailed indicates a backup, live, staged or sidecar write failed.
	ErrWriteFailed = &PortalError{Code: ErrCodeIO, Message: "write failed"}

	// ErrConfigInvalid indicates the options file is invalid or corrupt.
	ErrConfigInvalid = &PortalError{Code: ErrCodeConfig, Message: "invalid configuration"}

	// ErrRenderFailed indicates the template could not be rendered.
	ErrRenderFailed = &PortalError{Code: ErrCodeTemplate, Message: "render failed"}

	// ErrInvalidOption indicates an option value failed validation.
	ErrInvalidOption = &PortalError{Code: ErrCodeValidation, Message: "invalid option"}
)

// NotFound creates an error for a file that doesn't exist.
func NotFound(path string) error {
	return &PortalError{
		Code:    ErrCodeNotFound,
		Message: "file not found",
		Path:    path,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &PortalError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &PortalError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapPath creates an error with file path context and underlying error.
func WrapPath(code ErrorCode, msg, path string, err error) error {
	return &PortalError{
		Code:    code,
		Message: msg,
		Path:    path,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
