package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// NotFound indicates a path is absent from the store or outside its root
	NotFound ErrorCode = "NOT_FOUND"
	// AccessDenied indicates the store refused access (permissions)
	AccessDenied ErrorCode = "ACCESS_DENIED"
	// IOError indicates any other store failure
	IOError ErrorCode = "IO_ERROR"
	// InvalidURL indicates the request URL could not be parsed
	InvalidURL ErrorCode = "INVALID_URL"
	// ConfigInvalid indicates a configuration defect
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// HybridError carries a stable code, a message and the underlying cause.
type HybridError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // not exported to JSON
}

// New creates a HybridError without a cause
func New(code ErrorCode, message string) *HybridError {
	return &HybridError{
		Code:           code,
		Message:        message,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Wrap creates a HybridError around cause
func Wrap(code ErrorCode, message string, cause error) *HybridError {
	e := New(code, message)
	e.cause = cause
	return e
}

// Error implements the error interface
func (e *HybridError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *HybridError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *HybridError) WithDetails(details interface{}) *HybridError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first HybridError in err's chain,
// InternalError for any other non-nil error and "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var he *HybridError
	if stderrors.As(err, &he) {
		return he.Code
	}
	return InternalError
}

// IsNotFound reports whether err carries the NotFound code
func IsNotFound(err error) bool {
	return CodeOf(err) == NotFound
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "hybrid config init",
			Description: "Write a default configuration file",
		},
	},
	AccessDenied: {
		{
			Type:        OpenDocs,
			Description: "Check read permissions on the content root",
		},
	},
}

// GetSuggestedFixes returns a copy of the suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return append([]FixAction(nil), fixes...)
	}
	return nil
}
