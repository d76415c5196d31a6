// Package providers defines one interface per editor capability, the
// fixed oreore implementations of them, and the registry the language
// server dispatches through.
package providers

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/server/documents"
)

// HoverProvider produces hover content for a cursor position.
type HoverProvider interface {
	ProvideHover(ctx context.Context, doc *documents.Document, pos protocol.Position) (*protocol.Hover, error)
}

// DefinitionProvider resolves go-to-definition for a cursor position.
type DefinitionProvider interface {
	ProvideDefinition(ctx context.Context, doc *documents.Document, pos protocol.Position) ([]protocol.Location, error)
}

// CompletionProvider produces completion items for a cursor position.
type CompletionProvider interface {
	ProvideCompletion(ctx context.Context, doc *documents.Document, pos protocol.Position) (*protocol.CompletionList, error)
}

// SignatureHelpProvider produces call signatures for a cursor position.
type SignatureHelpProvider interface {
	ProvideSignatureHelp(ctx context.Context, doc *documents.Document, pos protocol.Position) (*protocol.SignatureHelp, error)
}

// FormattingProvider formats a whole document.
type FormattingProvider interface {
	ProvideFormatting(ctx context.Context, doc *documents.Document) ([]protocol.TextEdit, error)
}

// TreeDataProvider backs a side-panel tree view. An empty parentID asks
// for the root nodes.
type TreeDataProvider interface {
	TreeItem(ctx context.Context, id string) (*TreeItem, error)
	Children(ctx context.Context, parentID string) ([]*TreeItem, error)
}

// Host is what commands may ask of the editor.
type Host interface {
	ShowMessage(ctx context.Context, typ protocol.MessageType, message string) error
	ApplyEdit(ctx context.Context, label string, edit protocol.WorkspaceEdit) (bool, error)
	Document(uri protocol.DocumentURI) (*documents.Document, error)
}

// Command is a named action run through workspace/executeCommand.
type Command interface {
	ID() string
	Title() string
	Execute(ctx context.Context, host Host, args []interface{}) (interface{}, error)
}

// DocumentSelector limits language providers to matching documents.
// Empty fields match anything.
type DocumentSelector struct {
	Scheme   string
	Language string
}

// Matches reports whether doc is selected
func (s DocumentSelector) Matches(doc *documents.Document) bool {
	if doc == nil {
		return false
	}
	if s.Scheme != "" && !strings.EqualFold(doc.Scheme(), s.Scheme) {
		return false
	}
	if s.Language != "" && doc.LanguageID != s.Language {
		return false
	}
	return true
}
