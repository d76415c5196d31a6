package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrNoResult is matched by every NoResultError through errors.Is
var ErrNoResult = stderrors.New("no result")

// LSPError represents a standard LSP error with code and optional data
type LSPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *LSPError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("LSP error %d: %s (data: %v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("LSP error %d: %s", e.Code, e.Message)
}

// ValidationError represents parameter validation errors
type ValidationError struct {
	Parameter string `json:"parameter"`
	Message   string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for parameter '%s': %s", e.Parameter, e.Message)
}

// NoResultError is a rejected lookup: a provider ran but had nothing to
// return for the position it was asked about. Message is shown verbatim.
type NoResultError struct {
	Capability string `json:"capability"`
	Message    string `json:"message"`
}

func (e *NoResultError) Error() string {
	return e.Message
}

func (e *NoResultError) Is(target error) bool {
	return target == ErrNoResult
}

// DocumentNotFoundError is returned when a URI is neither open nor readable
type DocumentNotFoundError struct {
	URI   string `json:"uri"`
	Cause error  `json:"cause,omitempty"`
}

func (e *DocumentNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document not found: %s: %v", e.URI, e.Cause)
	}
	return fmt.Sprintf("document not found: %s", e.URI)
}

func (e *DocumentNotFoundError) Unwrap() error {
	return e.Cause
}

// Error constructors

// NewLSPError creates a new LSP error with specified code, message, and optional data
func NewLSPError(code int, message string, data interface{}) *LSPError {
	return &LSPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewValidationError creates a new validation error for the specified parameter
func NewValidationError(parameter, message string) *ValidationError {
	return &ValidationError{
		Parameter: parameter,
		Message:   message,
	}
}

// NewNoResultError creates a rejection for the named capability
func NewNoResultError(capability, message string) *NoResultError {
	return &NoResultError{
		Capability: capability,
		Message:    message,
	}
}

// NewDocumentNotFoundError creates a document lookup failure
func NewDocumentNotFoundError(uri string, cause error) *DocumentNotFoundError {
	return &DocumentNotFoundError{URI: uri, Cause: cause}
}

// Error classification functions

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var valErr *ValidationError
	if stderrors.As(err, &valErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "validation") ||
		strings.Contains(errMsg, "invalid params")
}

// IsNoResultError checks if a provider rejected the lookup
func IsNoResultError(err error) bool {
	return err != nil && stderrors.Is(err, ErrNoResult)
}

// IsDocumentNotFoundError checks if the error came from a failed document lookup
func IsDocumentNotFoundError(err error) bool {
	var docErr *DocumentNotFoundError
	return err != nil && stderrors.As(err, &docErr)
}

// IsCancellationError checks if the error is a cancellation error
func IsCancellationError(err error) bool {
	if err == nil {
		return false
	}

	if stderrors.Is(err, context.Canceled) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "canceled") ||
		strings.Contains(errMsg, "cancelled")
}

// IsProtocolError checks if the error is a protocol-related error (JSON-RPC, parsing, etc.)
func IsProtocolError(err error) bool {
	if err == nil {
		return false
	}

	var lspErr *LSPError
	if stderrors.As(err, &lspErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "json") ||
		strings.Contains(errMsg, "rpc") ||
		strings.Contains(errMsg, "unmarshal")
}

// Error wrapping utilities

// WrapWithContext wraps an error with operation context
func WrapWithContext(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// WrapValidationError wraps an error as a validation error
func WrapValidationError(parameter string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{
		Parameter: parameter,
		Message:   err.Error(),
	}
}
