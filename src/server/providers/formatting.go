package providers

import (
	"context"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/format"
	"oreore-lsp/src/server/documents"
)

// StripFormattingProvider removes leading whitespace from every line
type StripFormattingProvider struct{}

// ProvideFormatting returns one whole-document edit, or none when the
// document is already formatted.
func (StripFormattingProvider) ProvideFormatting(_ context.Context, doc *documents.Document) ([]protocol.TextEdit, error) {
	if !format.Changed(doc.Text) {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{format.WholeDocumentEdit(doc.Text)}, nil
}
