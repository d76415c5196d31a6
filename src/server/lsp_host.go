package server

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/internal/constants"
	"oreore-lsp/src/internal/errors"
	"oreore-lsp/src/internal/types"
	"oreore-lsp/src/server/documents"
)

// connHost is the providers.Host commands see, backed by the client
// connection
type connHost struct {
	server *LSPServer
}

func (h *connHost) ShowMessage(ctx context.Context, typ protocol.MessageType, message string) error {
	conn := h.server.connection()
	if conn == nil {
		return fmt.Errorf("no client connection")
	}
	return conn.Notify(ctx, types.MethodWindowShowMessage, &protocol.ShowMessageParams{
		Type:    typ,
		Message: message,
	})
}

// ApplyEdit asks the client to apply edit and reports whether it did
func (h *connHost) ApplyEdit(ctx context.Context, label string, edit protocol.WorkspaceEdit) (bool, error) {
	conn := h.server.connection()
	if conn == nil {
		return false, fmt.Errorf("no client connection")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ApplyEditTimeout)
	defer cancel()

	var resp protocol.ApplyWorkspaceEditResponse
	_, err := conn.Call(ctx, types.MethodWorkspaceApplyEdit, &protocol.ApplyWorkspaceEditParams{
		Label: label,
		Edit:  edit,
	}, &resp)
	if err != nil {
		return false, err
	}
	if !resp.Applied {
		reason := resp.FailureReason
		if reason == "" {
			reason = "no reason given"
		}
		return false, errors.NewLSPError(errors.EditNotApplied, fmt.Sprintf("edit not applied: %s", reason), nil)
	}
	return true, nil
}

func (h *connHost) Document(uri protocol.DocumentURI) (*documents.Document, error) {
	return h.server.store.Get(uri)
}
