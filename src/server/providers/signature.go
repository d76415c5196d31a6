package providers

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/internal/errors"
	"oreore-lsp/src/server/documents"
)

// SignatureTriggerCharacters open and advance signature help
var SignatureTriggerCharacters = []string{"(", ","}

var cardSignatures = []struct {
	label string
	doc   string
}{
	{"Alice", "King"},
	{"Bob", "Queen"},
	{"Carol", "Jack"},
}

// CardSignatureHelpProvider offers three fixed signatures once the
// cursor is inside a call.
type CardSignatureHelpProvider struct{}

// ProvideSignatureHelp requires an open parenthesis before pos on its line
func (CardSignatureHelpProvider) ProvideSignatureHelp(_ context.Context, doc *documents.Document, pos protocol.Position) (*protocol.SignatureHelp, error) {
	prefix, ok := doc.LinePrefix(pos)
	if !ok || !strings.Contains(prefix, "(") {
		return nil, errors.NewNoResultError("signatureHelp", "no open parenthesis before cursor")
	}

	signatures := make([]protocol.SignatureInformation, 0, len(cardSignatures))
	for _, sig := range cardSignatures {
		signatures = append(signatures, protocol.SignatureInformation{
			Label:         sig.label,
			Documentation: sig.doc,
		})
	}

	return &protocol.SignatureHelp{
		Signatures:      signatures,
		ActiveSignature: 0,
		ActiveParameter: 0,
	}, nil
}
