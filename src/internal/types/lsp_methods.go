package types

// LSP protocol lifecycle methods
const (
	// MethodInitialize is sent as the first request from client to server
	MethodInitialize = "initialize"
	// MethodInitialized is sent from client to server after the initialize response
	MethodInitialized = "initialized"
	// MethodShutdown is sent from client to server to shutdown the server
	MethodShutdown = "shutdown"
	// MethodExit is sent from client to server to exit the server process
	MethodExit = "exit"
	// MethodCancelRequest is sent by the client to abandon an in-flight request
	MethodCancelRequest = "$/cancelRequest"
	// MethodSetTrace toggles protocol tracing on the server
	MethodSetTrace = "$/setTrace"
)

// LSP document synchronization methods
const (
	MethodTextDocumentDidOpen   = "textDocument/didOpen"
	MethodTextDocumentDidChange = "textDocument/didChange"
	MethodTextDocumentDidSave   = "textDocument/didSave"
	MethodTextDocumentDidClose  = "textDocument/didClose"
)

// LSP language feature methods
const (
	// MethodTextDocumentDefinition provides go-to-definition functionality
	MethodTextDocumentDefinition = "textDocument/definition"
	// MethodTextDocumentHover provides hover information for symbols
	MethodTextDocumentHover = "textDocument/hover"
	// MethodTextDocumentCompletion provides auto-completion suggestions
	MethodTextDocumentCompletion = "textDocument/completion"
	// MethodTextDocumentSignatureHelp provides call signature help
	MethodTextDocumentSignatureHelp = "textDocument/signatureHelp"
	// MethodTextDocumentFormatting formats a whole document
	MethodTextDocumentFormatting = "textDocument/formatting"
)

// Workspace and window methods
const (
	MethodWorkspaceExecuteCommand = "workspace/executeCommand"
	MethodWorkspaceApplyEdit      = "workspace/applyEdit"
	MethodWindowShowMessage       = "window/showMessage"
)

// Tree view methods. LSP has no tree view, these are oreore extensions.
const (
	MethodTreeChildren = "oreore/treeChildren"
	MethodTreeItem     = "oreore/treeItem"
)
