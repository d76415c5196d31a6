package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
)

func TestLSPError(t *testing.T) {
	err := NewLSPError(-32601, "Method not found", map[string]string{"method": "test"})

	if err.Code != -32601 {
		t.Errorf("Expected code -32601, got %d", err.Code)
	}

	expectedError := "LSP error -32601: Method not found (data: map[method:test])"
	if err.Error() != expectedError {
		t.Errorf("Expected error string %s, got %s", expectedError, err.Error())
	}

	if got := NewLSPError(1, "plain", nil).Error(); got != "LSP error 1: plain" {
		t.Errorf("Unexpected error string %s", got)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("uri", "URI cannot be empty")

	if err.Parameter != "uri" {
		t.Errorf("Expected parameter 'uri', got %s", err.Parameter)
	}

	expectedError := "validation error for parameter 'uri': URI cannot be empty"
	if err.Error() != expectedError {
		t.Errorf("Expected error string %s, got %s", expectedError, err.Error())
	}

	if !IsValidationError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("Expected wrapped validation error to be classified")
	}
}

func TestNoResultError(t *testing.T) {
	err := NewNoResultError("definition", "No definition found")

	if err.Error() != "No definition found" {
		t.Errorf("Expected message to be returned verbatim, got %q", err.Error())
	}
	if !stderrors.Is(err, ErrNoResult) {
		t.Error("Expected errors.Is(err, ErrNoResult)")
	}
	if !IsNoResultError(fmt.Errorf("hover: %w", err)) {
		t.Error("Expected wrapped no-result error to be classified")
	}
	if IsNoResultError(stderrors.New("No definition found")) {
		t.Error("Plain errors must not be classified by message")
	}
	if IsNoResultError(nil) {
		t.Error("nil is not a no-result error")
	}
}

func TestDocumentNotFoundError(t *testing.T) {
	cause := stderrors.New("open /tmp/x.oreore: no such file or directory")
	err := NewDocumentNotFoundError("file:///tmp/x.oreore", cause)

	if !IsDocumentNotFoundError(err) {
		t.Error("Expected document-not-found classification")
	}
	if !stderrors.Is(err, cause) {
		t.Error("Expected cause to be unwrapped")
	}
	if NewDocumentNotFoundError("file:///y", nil).Error() != "document not found: file:///y" {
		t.Error("Unexpected message without cause")
	}
}

func TestIsCancellationError(t *testing.T) {
	if !IsCancellationError(context.Canceled) {
		t.Error("context.Canceled should be a cancellation")
	}
	if !IsCancellationError(fmt.Errorf("request: %w", context.Canceled)) {
		t.Error("wrapped context.Canceled should be a cancellation")
	}
	if IsCancellationError(stderrors.New("boom")) {
		t.Error("unrelated error is not a cancellation")
	}
}

func TestIsProtocolError(t *testing.T) {
	if !IsProtocolError(NewLSPError(InternalError, "x", nil)) {
		t.Error("LSPError should be a protocol error")
	}
	if !IsProtocolError(stderrors.New("json: cannot unmarshal string")) {
		t.Error("json errors should be protocol errors")
	}
	if IsProtocolError(nil) {
		t.Error("nil is not a protocol error")
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapWithContext("op", nil) != nil {
		t.Error("Wrapping nil must return nil")
	}
	base := stderrors.New("base")
	wrapped := WrapWithContext("op", base)
	if !stderrors.Is(wrapped, base) || wrapped.Error() != "op: base" {
		t.Errorf("Unexpected wrap result %v", wrapped)
	}

	if WrapValidationError("p", nil) != nil {
		t.Error("Wrapping nil must return nil")
	}
	if !IsValidationError(WrapValidationError("p", base)) {
		t.Error("Expected validation error")
	}
}

func TestErrorCodeName(t *testing.T) {
	cases := map[int]string{
		RequestFailed:        "RequestFailed",
		ServerNotInitialized: "ServerNotInitialized",
		UnknownCommand:       "UnknownCommand",
		12345:                "Unknown",
	}
	for code, want := range cases {
		if got := ErrorCodeName(code); got != want {
			t.Errorf("ErrorCodeName(%d) = %s, want %s", code, got, want)
		}
	}
}
