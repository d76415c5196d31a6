// Package rpc holds the JSON-RPC plumbing the language server shares
// with its tests: error mapping, custom request parameters and the
// stdio transport.
package rpc

import (
	stderrors "errors"

	"go.lsp.dev/jsonrpc2"

	"oreore-lsp/src/internal/common"
	"oreore-lsp/src/internal/errors"
)

// Custom tree view requests. The editor has no LSP counterpart for tree
// data providers, so the companion client asks through these.

// TreeChildrenParams asks for the children of Parent, or the roots when
// Parent is empty
type TreeChildrenParams struct {
	ViewID string `json:"viewId"`
	Parent string `json:"parent,omitempty"`
}

// TreeItemParams asks for a single node
type TreeItemParams struct {
	ViewID string `json:"viewId"`
	ID     string `json:"id"`
}

// NewRPCError creates a JSON-RPC error with one of the codes in the errors package
func NewRPCError(code int, message string) *jsonrpc2.Error {
	return jsonrpc2.NewError(jsonrpc2.Code(code), message)
}

// NewMethodNotFoundError reports an unhandled method
func NewMethodNotFoundError(method string) *jsonrpc2.Error {
	return NewRPCError(errors.MethodNotFound, "method not found: "+method)
}

// NewNotInitializedError rejects requests that arrive before initialize
func NewNotInitializedError(method string) *jsonrpc2.Error {
	return NewRPCError(errors.ServerNotInitialized, "server not initialized: "+method)
}

// NewValidationRPCError creates an error for parameter validation failures
func NewValidationRPCError(parameter, message string) *jsonrpc2.Error {
	return NewRPCError(errors.InvalidParams, errors.NewValidationError(parameter, message).Error())
}

// NewUnifiedRPCError converts any error produced while serving a request
// into the JSON-RPC error sent to the client.
func NewUnifiedRPCError(err error) *jsonrpc2.Error {
	if err == nil {
		return nil
	}

	var rpcErr *jsonrpc2.Error
	if stderrors.As(err, &rpcErr) {
		return rpcErr
	}

	var lspErr *errors.LSPError
	if stderrors.As(err, &lspErr) {
		return NewRPCError(lspErr.Code, lspErr.Message)
	}

	// Provider rejections keep their message verbatim
	var noResult *errors.NoResultError
	if stderrors.As(err, &noResult) {
		return NewRPCError(errors.RequestFailed, noResult.Message)
	}

	var valErr *errors.ValidationError
	if stderrors.As(err, &valErr) {
		return NewRPCError(errors.InvalidParams, err.Error())
	}

	var docErr *errors.DocumentNotFoundError
	if stderrors.As(err, &docErr) {
		return NewRPCError(errors.DocumentNotFound, err.Error())
	}

	if errors.IsCancellationError(err) {
		return NewRPCError(errors.RequestCancelled, err.Error())
	}

	common.LSPLogger.Debug("mapping unclassified error to InternalError: %s", common.SanitizeErrorForLogging(err))
	return NewRPCError(errors.InternalError, err.Error())
}

// CodeOf returns the JSON-RPC code carried by err, or 0
func CodeOf(err error) int {
	var rpcErr *jsonrpc2.Error
	if stderrors.As(err, &rpcErr) {
		return int(rpcErr.Code)
	}
	return 0
}
