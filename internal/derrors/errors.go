// Package derrors provides the typed errors firecomp reports to the user.
// Each carries a stable code so callers can branch without string matching.
package derrors

import (
	"errors"
	"fmt"
)

// FirecompError is the base interface for all firecomp errors
type FirecompError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all firecomp errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ConfigurationError represents errors in .firecomp configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// DocumentError represents errors loading the document to complete over
type DocumentError struct {
	baseError
	Path string
}

// NewDocumentError creates a new document error
func NewDocumentError(path string, message string, cause error) *DocumentError {
	return &DocumentError{
		baseError: baseError{
			code:    "DOCUMENT_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents a token path that addresses nothing
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string, cause error) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
			cause:   cause,
		},
		Resource: resource,
	}
}

// ScriptError represents failures generating or checking a completion script
type ScriptError struct {
	baseError
	Shell string
}

// NewScriptError creates a new script error
func NewScriptError(shell string, message string, cause error) *ScriptError {
	return &ScriptError{
		baseError: baseError{
			code:    "SCRIPT_ERROR",
			message: message,
			cause:   cause,
		},
		Shell: shell,
	}
}

// CodeOf returns the code of the first FirecompError in err's chain, or ""
func CodeOf(err error) string {
	var fe FirecompError
	if errors.As(err, &fe) {
		return fe.Code()
	}
	return ""
}
