package providers

import (
	"context"
	"regexp"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/internal/errors"
	"oreore-lsp/src/server/documents"
)

// wordPattern is what hover and definition treat as a word
var wordPattern = regexp.MustCompile(`[A-Za-z0-9_]+`)

// WordHoverProvider echoes the word under the cursor
type WordHoverProvider struct{}

// ProvideHover returns the word under pos as plain text
func (WordHoverProvider) ProvideHover(_ context.Context, doc *documents.Document, pos protocol.Position) (*protocol.Hover, error) {
	word, rng, ok := doc.WordAt(pos, wordPattern)
	if !ok {
		return nil, errors.NewNoResultError("hover", "no word here")
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.PlainText,
			Value: word,
		},
		Range: &rng,
	}, nil
}
