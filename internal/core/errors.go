// internal/core/errors.go
package core

import (
	"encoding/json"
	"fmt"
)

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// MarshalJSON writes the code, the message and the cause text.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Cause   string `json:"cause,omitempty"`
	}{Code: e.Code, Message: e.Message}
	if e.Cause != nil {
		out.Cause = e.Cause.Error()
	}
	return json.Marshal(out)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Data errors
	ErrDataUnavailable = &Error{Code: "DATA_UNAVAILABLE", Message: "strategy data unavailable"}
	ErrDataMalformed   = &Error{Code: "DATA_MALFORMED", Message: "strategy data malformed"}
	ErrCategoryMissing = &Error{Code: "CATEGORY_MISSING", Message: "strategy category required"}

	// Report errors
	ErrReportNotFound   = &Error{Code: "REPORT_NOT_FOUND", Message: "report not found"}
	ErrReportUnparsable = &Error{Code: "REPORT_UNPARSABLE", Message: "report could not be parsed"}
	ErrIngestRunning    = &Error{Code: "INGEST_RUNNING", Message: "an ingest run is already in progress"}
	ErrJobNotFound      = &Error{Code: "JOB_NOT_FOUND", Message: "ingest job not found"}

	// Rendering errors
	ErrChartFailed = &Error{Code: "CHART_FAILED", Message: "chart rendering failed"}

	// Access errors
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "valid API key required"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
