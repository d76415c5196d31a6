package providers

import (
	"context"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/internal/errors"
	"oreore-lsp/src/server/documents"
	"oreore-lsp/src/utils/lspconv"
)

// definitionColumn is where every fruit is "defined" on its line
const definitionColumn = 4

// fruitLines maps a known word to the line that defines it
var fruitLines = map[string]uint32{
	"apple":  0,
	"banana": 1,
	"cherry": 2,
}

// FruitDefinitionProvider resolves the three fruit names to fixed
// locations in the same document.
type FruitDefinitionProvider struct{}

// ProvideDefinition returns a single location or rejects the lookup
func (FruitDefinitionProvider) ProvideDefinition(_ context.Context, doc *documents.Document, pos protocol.Position) ([]protocol.Location, error) {
	word, _, ok := doc.WordAt(pos, wordPattern)
	if !ok {
		return nil, errors.NewNoResultError("definition", "No word here.")
	}

	line, known := fruitLines[word]
	if !known {
		return nil, errors.NewNoResultError("definition", "No definition found")
	}

	return []protocol.Location{{
		URI:   doc.URI,
		Range: lspconv.PointRange(line, definitionColumn),
	}}, nil
}
