package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// FileNotFound indicates the inspected file does not exist
	FileNotFound ErrorCode = "FILE_NOT_FOUND"
	// UnsupportedLanguage indicates no grammar matches the file
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// ParseFailed indicates the parser could not produce a tree
	ParseFailed ErrorCode = "PARSE_FAILED"
	// NodeNotFound indicates no node lies at the requested position
	NodeNotFound ErrorCode = "NODE_NOT_FOUND"
	// CGORequired indicates a binary built without cgo was asked to parse
	CGORequired ErrorCode = "CGO_REQUIRED"
	// StorageUnavailable indicates the settings database cannot be used
	StorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	// InvalidArgument indicates a malformed flag or argument
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// ChangeInput suggests correcting the command line
	ChangeInput FixActionType = "change-input"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type" yaml:"type"`
	Command     string        `json:"command,omitempty" yaml:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty" yaml:"safe,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// Error is a nodelens error with a stable code and suggested fixes
type Error struct {
	Code           ErrorCode   `json:"code" yaml:"code"`
	Message        string      `json:"message" yaml:"message"`
	Details        any         `json:"details,omitempty" yaml:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty" yaml:"suggestedFixes,omitempty"`
	cause          error
}

// New creates an Error carrying the default fixes for code.
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:           code,
		Message:        message,
		SuggestedFixes: GetSuggestedFixes(code),
		cause:          cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// CodeOf returns the code of the first Error in err's chain, or
// InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	UnsupportedLanguage: {
		{
			Type:        RunCommand,
			Command:     "nodelens languages",
			Safe:        true,
			Description: "List supported languages and file extensions",
		},
	},
	NodeNotFound: {
		{
			Type:        ChangeInput,
			Description: "Pass a 1-based --line and --col inside the file",
		},
	},
	CGORequired: {
		{
			Type:        RunCommand,
			Command:     "CGO_ENABLED=1 go install ./cmd/nodelens",
			Description: "Rebuild nodelens with cgo enabled",
		},
	},
	StorageUnavailable: {
		{
			Type:        RunCommand,
			Command:     "rm .nodelens/nodelens.db",
			Description: "Remove the settings database; it is recreated on next use",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
