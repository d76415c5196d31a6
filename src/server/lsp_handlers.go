package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"oreore-lsp/src/internal/common"
	"oreore-lsp/src/internal/constants"
	"oreore-lsp/src/internal/errors"
	"oreore-lsp/src/internal/types"
	"oreore-lsp/src/internal/version"
	"oreore-lsp/src/server/documents"
	"oreore-lsp/src/server/providers"
	"oreore-lsp/src/server/rpc"
	"oreore-lsp/src/utils/jsonutil"
)

// handle is the jsonrpc2 handler. It runs on the connection's read loop,
// so anything that needs another round trip to the client must not block
// here.
func (s *LSPServer) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return recoverHandler(s.dispatch)(ctx, reply, req)
}

// recoverHandler answers a panicking request with InternalError, unless
// the handler had already replied before it panicked
func recoverHandler(h jsonrpc2.Handler) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) (err error) {
		method := req.Method()

		var replied atomic.Bool
		tracked := func(ctx context.Context, result interface{}, rerr error) error {
			replied.Store(true)
			return reply(ctx, result, rerr)
		}

		defer func() {
			if r := recover(); r != nil {
				common.LSPLogger.Error("panic handling %s: %v", method, r)
				if replied.Load() {
					err = nil
					return
				}
				err = reply(ctx, nil, rpc.NewRPCError(errors.InternalError, fmt.Sprintf("internal error handling %s", method)))
			}
		}()

		return h(ctx, tracked, req)
	}
}

func (s *LSPServer) dispatch(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	method := req.Method()
	common.LSPLogger.Debug("<- %s", method)

	// after exit, or once Serve is winding down, nothing is accepted
	if method != types.MethodExit && s.stopping(ctx) {
		return reply(ctx, nil, rpc.NewRPCError(errors.InvalidRequest, "server has exited"))
	}

	switch method {
	case types.MethodInitialize:
		return s.handleInitialize(ctx, reply, req.Params())
	case types.MethodInitialized, types.MethodCancelRequest, types.MethodSetTrace:
		return reply(ctx, nil, nil)
	case types.MethodShutdown:
		s.shutdown.Store(true)
		open := s.store.OpenURIs()
		common.LSPLogger.Info("shutdown requested, %d documents still open: %v", len(open), open)
		return reply(ctx, nil, nil)
	case types.MethodExit:
		s.exit()
		return reply(ctx, nil, nil)
	}

	if !s.initialized.Load() {
		return reply(ctx, nil, rpc.NewNotInitializedError(method))
	}
	if s.shutdown.Load() {
		return reply(ctx, nil, rpc.NewRPCError(errors.InvalidRequest, "server is shutting down"))
	}

	params := req.Params()
	switch method {
	case types.MethodTextDocumentDidOpen:
		return s.handleDidOpen(ctx, reply, params)
	case types.MethodTextDocumentDidChange:
		return s.handleDidChange(ctx, reply, params)
	case types.MethodTextDocumentDidSave:
		return reply(ctx, nil, nil)
	case types.MethodTextDocumentDidClose:
		return s.handleDidClose(ctx, reply, params)
	case types.MethodTextDocumentHover:
		return s.handleHover(ctx, reply, params)
	case types.MethodTextDocumentDefinition:
		return s.handleDefinition(ctx, reply, params)
	case types.MethodTextDocumentCompletion:
		return s.handleCompletion(ctx, reply, params)
	case types.MethodTextDocumentSignatureHelp:
		return s.handleSignatureHelp(ctx, reply, params)
	case types.MethodTextDocumentFormatting:
		return s.handleFormatting(ctx, reply, params)
	case types.MethodWorkspaceExecuteCommand:
		return s.handleExecuteCommand(ctx, reply, params)
	case types.MethodTreeChildren:
		return s.handleTreeChildren(ctx, reply, params)
	case types.MethodTreeItem:
		return s.handleTreeItem(ctx, reply, params)
	}

	return reply(ctx, nil, rpc.NewMethodNotFoundError(method))
}

func (s *LSPServer) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	if s.initialized.Load() {
		return reply(ctx, nil, rpc.NewRPCError(errors.InvalidRequest, "initialize may only be sent once"))
	}

	var params protocol.InitializeParams
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			return reply(ctx, nil, rpc.NewRPCError(errors.InvalidParams, fmt.Sprintf("invalid initialize params: %v", err)))
		}
	}
	if params.ClientInfo != nil {
		common.LSPLogger.Info("initialize from %s %s", params.ClientInfo.Name, params.ClientInfo.Version)
	}

	s.initialized.Store(true)
	return reply(ctx, s.initializeResult(), nil)
}

// initializeResult advertises exactly what the registry holds
func (s *LSPServer) initializeResult() *protocol.InitializeResult {
	caps := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindFull,
		},
		ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
			Commands: s.registry.CommandIDs(),
		},
		Experimental: map[string]interface{}{
			"treeViews": []string{constants.TreeViewID},
		},
	}

	if s.registry.Hover() != nil {
		caps.HoverProvider = true
	}
	if s.registry.Definition() != nil {
		caps.DefinitionProvider = true
	}
	if p, triggers := s.registry.Completion(); p != nil {
		caps.CompletionProvider = &protocol.CompletionOptions{TriggerCharacters: triggers}
	}
	if p, triggers := s.registry.SignatureHelp(); p != nil {
		caps.SignatureHelpProvider = &protocol.SignatureHelpOptions{TriggerCharacters: triggers}
	}
	if s.registry.Formatting() != nil {
		caps.DocumentFormattingProvider = true
	}

	return &protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.ServerInfo{
			Name:    constants.ServerName,
			Version: version.GetVersion(),
		},
	}
}

func (s *LSPServer) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	params, err := jsonutil.Decode[protocol.DidOpenTextDocumentParams](raw)
	if err != nil {
		common.LSPLogger.Warn("didOpen: %v", err)
		return reply(ctx, nil, nil)
	}

	item := params.TextDocument
	languageID := string(item.LanguageID)
	if languageID == "" {
		languageID = s.store.DetectLanguage(string(item.URI))
	}
	s.store.Open(item.URI, languageID, item.Version, item.Text)
	common.LSPLogger.Debug("opened %s (%s, version %d)", item.URI, languageID, item.Version)
	return reply(ctx, nil, nil)
}

// handleDidChange expects full document sync, so the last change carries
// the whole text
func (s *LSPServer) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	params, err := jsonutil.Decode[protocol.DidChangeTextDocumentParams](raw)
	if err != nil {
		common.LSPLogger.Warn("didChange: %v", err)
		return reply(ctx, nil, nil)
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	if _, err := s.store.Change(params.TextDocument.URI, params.TextDocument.Version, text); err != nil {
		common.LSPLogger.Warn("didChange: %v", err)
	}
	return reply(ctx, nil, nil)
}

func (s *LSPServer) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	params, err := jsonutil.Decode[protocol.DidCloseTextDocumentParams](raw)
	if err != nil {
		common.LSPLogger.Warn("didClose: %v", err)
		return reply(ctx, nil, nil)
	}
	s.store.Close(params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

// selectedDocument resolves the document a language request is about.
// A nil document with a nil error means the request falls outside the
// selector and gets a null result.
func (s *LSPServer) selectedDocument(uri protocol.DocumentURI) (*documents.Document, error) {
	if uri == "" {
		return nil, errors.NewValidationError("textDocument.uri", "must not be empty")
	}
	doc, err := s.store.Get(uri)
	if err != nil {
		return nil, err
	}
	if !s.registry.Selector().Matches(doc) {
		common.LSPLogger.Debug("%s (%s) is outside the selector", uri, doc.LanguageID)
		return nil, nil
	}
	return doc, nil
}

// positionRequest decodes the params shared by hover, definition,
// completion and signature help
func (s *LSPServer) positionRequest(raw json.RawMessage) (*documents.Document, protocol.Position, error) {
	params, err := jsonutil.Decode[protocol.TextDocumentPositionParams](raw)
	if err != nil {
		return nil, protocol.Position{}, errors.WrapValidationError("params", err)
	}
	doc, err := s.selectedDocument(params.TextDocument.URI)
	return doc, params.Position, err
}

func (s *LSPServer) handleHover(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	method := types.MethodTextDocumentHover
	doc, pos, err := s.positionRequest(raw)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	provider := s.registry.Hover()
	if doc == nil || provider == nil {
		return reply(ctx, nil, nil)
	}

	hover, err := provider.ProvideHover(ctx, doc, pos)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	return reply(ctx, hover, nil)
}

func (s *LSPServer) handleDefinition(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	method := types.MethodTextDocumentDefinition
	doc, pos, err := s.positionRequest(raw)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	provider := s.registry.Definition()
	if doc == nil || provider == nil {
		return reply(ctx, nil, nil)
	}

	locations, err := provider.ProvideDefinition(ctx, doc, pos)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	return reply(ctx, locations, nil)
}

func (s *LSPServer) handleCompletion(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	method := types.MethodTextDocumentCompletion
	doc, pos, err := s.positionRequest(raw)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	provider, _ := s.registry.Completion()
	if doc == nil || provider == nil {
		return reply(ctx, nil, nil)
	}

	list, err := provider.ProvideCompletion(ctx, doc, pos)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	return reply(ctx, list, nil)
}

func (s *LSPServer) handleSignatureHelp(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	method := types.MethodTextDocumentSignatureHelp
	doc, pos, err := s.positionRequest(raw)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	provider, _ := s.registry.SignatureHelp()
	if doc == nil || provider == nil {
		return reply(ctx, nil, nil)
	}

	help, err := provider.ProvideSignatureHelp(ctx, doc, pos)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	return reply(ctx, help, nil)
}

func (s *LSPServer) handleFormatting(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	method := types.MethodTextDocumentFormatting
	params, err := jsonutil.Decode[protocol.DocumentFormattingParams](raw)
	if err != nil {
		return s.replyError(ctx, reply, method, errors.WrapValidationError("params", err))
	}
	doc, err := s.selectedDocument(params.TextDocument.URI)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	provider := s.registry.Formatting()
	if doc == nil || provider == nil {
		return reply(ctx, nil, nil)
	}

	edits, err := provider.ProvideFormatting(ctx, doc)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	return reply(ctx, edits, nil)
}

// handleExecuteCommand runs the command off the read loop because
// commands call back into the client (workspace/applyEdit) and the
// response can only be read once this handler has returned.
func (s *LSPServer) handleExecuteCommand(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	method := types.MethodWorkspaceExecuteCommand
	params, err := jsonutil.Decode[protocol.ExecuteCommandParams](raw)
	if err != nil {
		return s.replyError(ctx, reply, method, errors.WrapValidationError("params", err))
	}

	cmd, ok := s.registry.Command(params.Command)
	if !ok {
		return s.replyError(ctx, reply, method,
			errors.NewLSPError(errors.UnknownCommand, fmt.Sprintf("unknown command: %s", params.Command), nil))
	}

	if !s.startCommand() {
		return reply(ctx, nil, rpc.NewRPCError(errors.InvalidRequest, "server has exited"))
	}
	common.LSPLogger.Info("executing %s", cmd.ID())
	go func() {
		defer s.inflight.Done()
		result, err := s.runCommand(ctx, cmd, params.Arguments)
		if err != nil {
			common.LSPLogger.Warn("%s failed: %v", cmd.ID(), err)
			_ = s.replyError(ctx, reply, method, err)
			return
		}
		_ = reply(ctx, result, nil)
	}()
	return nil
}

func (s *LSPServer) runCommand(ctx context.Context, cmd providers.Command, args []interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command %s panicked: %v", cmd.ID(), r)
		}
	}()
	return cmd.Execute(ctx, &connHost{server: s}, args)
}

func (s *LSPServer) treeProvider(viewID string) (providers.TreeDataProvider, error) {
	if viewID == "" {
		viewID = constants.TreeViewID
	}
	p, ok := s.registry.TreeDataProvider(viewID)
	if !ok {
		return nil, errors.NewLSPError(errors.UnknownTreeView, fmt.Sprintf("unknown tree view: %s", viewID), nil)
	}
	return p, nil
}

func (s *LSPServer) handleTreeChildren(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	method := types.MethodTreeChildren
	var params rpc.TreeChildrenParams
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &params); err != nil {
			return s.replyError(ctx, reply, method, errors.WrapValidationError("params", err))
		}
	}

	p, err := s.treeProvider(params.ViewID)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	children, err := p.Children(ctx, params.Parent)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	if children == nil {
		children = []*providers.TreeItem{}
	}
	return reply(ctx, children, nil)
}

func (s *LSPServer) handleTreeItem(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	method := types.MethodTreeItem
	params, err := jsonutil.Decode[rpc.TreeItemParams](raw)
	if err != nil {
		return s.replyError(ctx, reply, method, errors.WrapValidationError("params", err))
	}
	if params.ID == "" {
		return reply(ctx, nil, rpc.NewValidationRPCError("id", "must not be empty"))
	}

	p, err := s.treeProvider(params.ViewID)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	item, err := p.TreeItem(ctx, params.ID)
	if err != nil {
		return s.replyError(ctx, reply, method, err)
	}
	return reply(ctx, item, nil)
}
