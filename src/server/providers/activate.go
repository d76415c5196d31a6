package providers

import (
	"fmt"

	"oreore-lsp/src/internal/constants"
)

// Options configures Activate
type Options struct {
	LanguageID   string
	TreeViewID   string
	HelloMessage func() string
}

// NewSelector selects file documents of languageID
func NewSelector(languageID string) DocumentSelector {
	if languageID == "" {
		languageID = constants.DefaultLanguageID
	}
	return DocumentSelector{Scheme: constants.DocumentScheme, Language: languageID}
}

// Activate registers every oreore capability into reg and hands the
// disposers to subs. On failure everything registered so far is
// released before returning.
func Activate(reg *Registry, subs *Subscriptions, opts Options) (err error) {
	var local Subscriptions
	defer func() {
		if err != nil {
			_ = local.Dispose()
			return
		}
		local.mu.Lock()
		disposers := local.disposers
		local.disposers = nil
		local.mu.Unlock()
		subs.Add(disposers...)
	}()

	for _, cmd := range []Command{
		&HelloWorldCommand{Message: opts.HelloMessage},
		&FormatFileCommand{},
	} {
		d, regErr := reg.RegisterCommand(cmd)
		if regErr != nil {
			return fmt.Errorf("failed to register command: %w", regErr)
		}
		local.Add(d)
	}

	local.Add(
		reg.RegisterHoverProvider(WordHoverProvider{}),
		reg.RegisterDefinitionProvider(FruitDefinitionProvider{}),
		reg.RegisterCompletionProvider(FruitCompletionProvider{}, CompletionTriggerCharacters...),
		reg.RegisterSignatureHelpProvider(CardSignatureHelpProvider{}, SignatureTriggerCharacters...),
		reg.RegisterFormattingProvider(StripFormattingProvider{}),
	)

	viewID := opts.TreeViewID
	if viewID == "" {
		viewID = constants.TreeViewID
	}
	local.Add(reg.RegisterTreeDataProvider(viewID, NewStaticTreeProvider(HelloWorldCommandID)))

	return nil
}
