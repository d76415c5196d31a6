// Package errors provides unified error types and codes.
package errors

// Standard JSON-RPC error codes as defined in RFC 7309
const (
	ParseError     = -32700 // Invalid JSON was received by the server
	InvalidRequest = -32600 // The JSON sent is not a valid Request object
	MethodNotFound = -32601 // The method does not exist / is not available
	InvalidParams  = -32602 // Invalid method parameter(s)
	InternalError  = -32603 // Internal JSON-RPC error
)

// LSP-specific error codes as defined in the LSP specification
const (
	ServerNotInitialized = -32002 // Server not initialized
	UnknownErrorCode     = -32001 // Unknown error code
	RequestCancelled     = -32800 // Request was cancelled
	ContentModified      = -32801 // Content was modified
	RequestFailed        = -32803 // Request failed, e.g. a lookup with no result
)

// oreore-lsp custom error codes (range: -33000 to -33099)
const (
	InvalidURI         = -33020 // Invalid URI format
	DocumentNotFound   = -33021 // Document is neither open nor readable from disk
	MissingParameter   = -33023 // Required parameter missing
	UnknownCommand     = -33030 // workspace/executeCommand for an unregistered command
	UnknownTreeView    = -33031 // tree request for an unregistered view
	EditNotApplied     = -33040 // client refused a workspace/applyEdit
	ConfigurationError = -33060 // Configuration could not be loaded or validated
)

// ErrorCodeName returns a readable name for a code, used in log lines
func ErrorCodeName(code int) string {
	switch code {
	case ParseError:
		return "ParseError"
	case InvalidRequest:
		return "InvalidRequest"
	case MethodNotFound:
		return "MethodNotFound"
	case InvalidParams:
		return "InvalidParams"
	case InternalError:
		return "InternalError"
	case ServerNotInitialized:
		return "ServerNotInitialized"
	case UnknownErrorCode:
		return "UnknownErrorCode"
	case RequestCancelled:
		return "RequestCancelled"
	case ContentModified:
		return "ContentModified"
	case RequestFailed:
		return "RequestFailed"
	case InvalidURI:
		return "InvalidURI"
	case DocumentNotFound:
		return "DocumentNotFound"
	case MissingParameter:
		return "MissingParameter"
	case UnknownCommand:
		return "UnknownCommand"
	case UnknownTreeView:
		return "UnknownTreeView"
	case EditNotApplied:
		return "EditNotApplied"
	case ConfigurationError:
		return "ConfigurationError"
	}
	return "Unknown"
}
