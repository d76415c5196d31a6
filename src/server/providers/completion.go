package providers

import (
	"context"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/server/documents"
)

// CompletionTriggerCharacters make the client ask for completions eagerly
var CompletionTriggerCharacters = []string{"."}

// FruitCompletionProvider always offers the same three items
type FruitCompletionProvider struct{}

// ProvideCompletion ignores the position and returns a complete list
func (FruitCompletionProvider) ProvideCompletion(_ context.Context, _ *documents.Document, _ protocol.Position) (*protocol.CompletionList, error) {
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items: []protocol.CompletionItem{
			{Label: "apple", Kind: protocol.CompletionItemKindVariable},
			{Label: "banana", Kind: protocol.CompletionItemKindValue},
			{Label: "cherry", Kind: protocol.CompletionItemKindMethod},
		},
	}, nil
}
