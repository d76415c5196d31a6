package providers

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"oreore-lsp/src/internal/errors"
	"oreore-lsp/src/server/documents"
)

type fakeHost struct {
	mu       sync.Mutex
	messages []string
	edits    []protocol.WorkspaceEdit
	labels   []string
	applied  bool
	docs     map[protocol.DocumentURI]*documents.Document
}

func newFakeHost() *fakeHost {
	return &fakeHost{applied: true, docs: make(map[protocol.DocumentURI]*documents.Document)}
}

func (h *fakeHost) ShowMessage(_ context.Context, typ protocol.MessageType, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, message)
	return nil
}

func (h *fakeHost) ApplyEdit(_ context.Context, label string, edit protocol.WorkspaceEdit) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.labels = append(h.labels, label)
	h.edits = append(h.edits, edit)
	return h.applied, nil
}

func (h *fakeHost) Document(uri protocol.DocumentURI) (*documents.Document, error) {
	doc, ok := h.docs[uri]
	if !ok {
		return nil, errors.NewDocumentNotFoundError(string(uri), nil)
	}
	return doc, nil
}

func TestDocumentSelector(t *testing.T) {
	sel := NewSelector("oreore")

	assert.True(t, sel.Matches(documents.NewDocument("file:///a.oreore", "oreore", 1, "")))
	assert.True(t, sel.Matches(documents.NewDocument("FILE:///a.oreore", "oreore", 1, "")))
	assert.False(t, sel.Matches(documents.NewDocument("untitled:a", "oreore", 1, "")))
	assert.False(t, sel.Matches(documents.NewDocument("file:///a.txt", "plaintext", 1, "")))
	assert.False(t, sel.Matches(nil))
	assert.True(t, DocumentSelector{}.Matches(documents.NewDocument("untitled:a", "", 1, "")))

	assert.Equal(t, "oreore", NewSelector("").Language)
}

func TestRegistryReplaceAndDispose(t *testing.T) {
	reg := NewRegistry(NewSelector("oreore"))
	assert.Nil(t, reg.Hover())

	first := reg.RegisterHoverProvider(WordHoverProvider{})
	assert.NotNil(t, reg.Hover())

	second := reg.RegisterHoverProvider(WordHoverProvider{})
	require.NoError(t, first())
	assert.NotNil(t, reg.Hover(), "a stale disposer leaves the newer registration alone")

	require.NoError(t, second())
	assert.Nil(t, reg.Hover())
	require.NoError(t, second(), "disposing twice is a no-op")
}

func TestRegistryTriggers(t *testing.T) {
	reg := NewRegistry(NewSelector("oreore"))
	reg.RegisterCompletionProvider(FruitCompletionProvider{}, ".")
	reg.RegisterSignatureHelpProvider(CardSignatureHelpProvider{}, "(", ",")

	p, triggers := reg.Completion()
	assert.NotNil(t, p)
	assert.Equal(t, []string{"."}, triggers)

	triggers[0] = "!"
	_, triggers = reg.Completion()
	assert.Equal(t, []string{"."}, triggers, "callers get a copy")

	_, triggers = reg.SignatureHelp()
	assert.Equal(t, []string{"(", ","}, triggers)
}

func TestRegistryDuplicateCommand(t *testing.T) {
	reg := NewRegistry(NewSelector("oreore"))

	dispose, err := reg.RegisterCommand(&FormatFileCommand{})
	require.NoError(t, err)

	_, err = reg.RegisterCommand(&FormatFileCommand{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), FormatFileCommandID)

	require.NoError(t, dispose())
	_, ok := reg.Command(FormatFileCommandID)
	assert.False(t, ok)

	_, err = reg.RegisterCommand(&FormatFileCommand{})
	assert.NoError(t, err)
}

func TestActivateRegistersEverything(t *testing.T) {
	reg := NewRegistry(NewSelector("oreore"))
	var subs Subscriptions

	require.NoError(t, Activate(reg, &subs, Options{}))
	assert.Equal(t, 8, subs.Len())

	assert.NotNil(t, reg.Hover())
	assert.NotNil(t, reg.Definition())
	assert.NotNil(t, reg.Formatting())
	_, ok := reg.TreeDataProvider("oreore")
	assert.True(t, ok)
	assert.Equal(t, []string{FormatFileCommandID, HelloWorldCommandID}, reg.CommandIDs())

	require.NoError(t, subs.Dispose())
	assert.Nil(t, reg.Hover())
	assert.Nil(t, reg.Definition())
	assert.Nil(t, reg.Formatting())
	c, _ := reg.Completion()
	assert.Nil(t, c)
	_, ok = reg.TreeDataProvider("oreore")
	assert.False(t, ok)
	assert.Empty(t, reg.CommandIDs())
}

func TestActivateRollsBackOnFailure(t *testing.T) {
	reg := NewRegistry(NewSelector("oreore"))
	_, err := reg.RegisterCommand(&FormatFileCommand{})
	require.NoError(t, err)

	var subs Subscriptions
	err = Activate(reg, &subs, Options{})
	require.Error(t, err)
	assert.Equal(t, 0, subs.Len())

	_, ok := reg.Command(HelloWorldCommandID)
	assert.False(t, ok, "commands registered before the failure are released")
	assert.Nil(t, reg.Hover())
}

func TestSubscriptionsDisposeOrderAndErrors(t *testing.T) {
	var subs Subscriptions
	var order []int
	boom := stderrors.New("boom")

	subs.Add(
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return boom },
		nil,
		func() error { order = append(order, 3); panic("bad disposer") },
	)

	err := subs.Dispose()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad disposer")
	assert.Equal(t, []int{3, 2, 1}, order)

	require.NoError(t, subs.Dispose())

	late := false
	subs.Add(func() error { late = true; return nil })
	assert.True(t, late, "disposers added after Dispose run immediately")
}

func TestHelloWorldCommand(t *testing.T) {
	host := newFakeHost()

	_, err := (&HelloWorldCommand{}).Execute(context.Background(), host, nil)
	require.NoError(t, err)

	message := "Hi there"
	_, err = (&HelloWorldCommand{Message: func() string { return message }}).Execute(context.Background(), host, []interface{}{"ignored"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Hello, world!", "Hi there"}, host.messages)
}

func TestFormatFileCommand(t *testing.T) {
	ctx := context.Background()
	uri := protocol.DocumentURI("file:///f.oreore")
	cmd := &FormatFileCommand{}

	t.Run("applies one whole document edit", func(t *testing.T) {
		host := newFakeHost()
		host.docs[uri] = documents.NewDocument(uri, "oreore", 1, "  foo\r\n\tbar\nbaz")

		result, err := cmd.Execute(ctx, host, []interface{}{string(uri)})
		require.NoError(t, err)
		assert.Equal(t, true, result)

		require.Len(t, host.edits, 1)
		edits := host.edits[0].Changes[uri]
		require.Len(t, edits, 1)
		assert.Equal(t, "foo\nbar\nbaz", edits[0].NewText)
		assert.Equal(t, at(0, 0), edits[0].Range.Start)
		assert.Equal(t, at(2, 3), edits[0].Range.End)
		assert.Equal(t, []string{"format document"}, host.labels)
	})

	t.Run("accepts a text document identifier", func(t *testing.T) {
		host := newFakeHost()
		host.docs[uri] = documents.NewDocument(uri, "oreore", 1, " x")

		_, err := cmd.Execute(ctx, host, []interface{}{map[string]interface{}{"uri": string(uri)}})
		require.NoError(t, err)
		assert.Len(t, host.edits, 1)
	})

	t.Run("already formatted", func(t *testing.T) {
		host := newFakeHost()
		host.docs[uri] = documents.NewDocument(uri, "oreore", 1, "foo\nbar")

		result, err := cmd.Execute(ctx, host, []interface{}{string(uri)})
		require.NoError(t, err)
		assert.Equal(t, false, result)
		assert.Empty(t, host.edits)
	})

	t.Run("edit rejected", func(t *testing.T) {
		host := newFakeHost()
		host.applied = false
		host.docs[uri] = documents.NewDocument(uri, "oreore", 1, " x")

		_, err := cmd.Execute(ctx, host, []interface{}{string(uri)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "did not apply")
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := cmd.Execute(ctx, newFakeHost(), nil)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := cmd.Execute(ctx, newFakeHost(), []interface{}{"file:///missing.oreore"})
		assert.True(t, errors.IsDocumentNotFoundError(err))
	})
}
