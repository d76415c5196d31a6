package providers

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/format"
	"oreore-lsp/src/internal/common"
	"oreore-lsp/src/internal/constants"
	"oreore-lsp/src/internal/errors"
	"oreore-lsp/src/server/documents"
)

// Command identifiers
const (
	HelloWorldCommandID = "oreore.helloWorld"
	FormatFileCommandID = "oreore.formatFile"
)

// HelloWorldCommand shows a fixed notification. Message is read on
// every run so a config reload takes effect immediately.
type HelloWorldCommand struct {
	Message func() string
}

func (c *HelloWorldCommand) ID() string    { return HelloWorldCommandID }
func (c *HelloWorldCommand) Title() string { return "say hello" }

// Execute ignores its arguments
func (c *HelloWorldCommand) Execute(ctx context.Context, host Host, _ []interface{}) (interface{}, error) {
	message := constants.DefaultHelloMessage
	if c.Message != nil {
		if m := c.Message(); m != "" {
			message = m
		}
	}
	if err := host.ShowMessage(ctx, protocol.MessageTypeInfo, message); err != nil {
		return nil, errors.WrapWithContext("show message", err)
	}
	return nil, nil
}

// FormatFileCommand strips leading whitespace from the document named
// by its first argument and applies the result as one edit.
type FormatFileCommand struct{}

func (c *FormatFileCommand) ID() string    { return FormatFileCommandID }
func (c *FormatFileCommand) Title() string { return "format document" }

// Execute returns whether the client applied the edit. An already
// formatted document is left alone.
func (c *FormatFileCommand) Execute(ctx context.Context, host Host, args []interface{}) (interface{}, error) {
	if len(args) == 0 {
		return nil, errors.NewValidationError("arguments", "expected the document URI as first argument")
	}
	uri, err := documents.ExtractURI(args[0])
	if err != nil {
		return nil, err
	}

	doc, err := host.Document(uri)
	if err != nil {
		return nil, err
	}
	if !format.Changed(doc.Text) {
		common.LSPLogger.Debug("format: %s already formatted", uri)
		return false, nil
	}

	edit := protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentURI][]protocol.TextEdit{
			uri: {format.WholeDocumentEdit(doc.Text)},
		},
	}
	applied, err := host.ApplyEdit(ctx, c.Title(), edit)
	if err != nil {
		return nil, errors.WrapWithContext("apply edit", err)
	}
	if !applied {
		return nil, fmt.Errorf("client did not apply the edit to %s", uri)
	}
	return true, nil
}
