package providers

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"oreore-lsp/src/internal/common"
)

// Disposer releases one registration. Calling it more than once is a no-op.
type Disposer func() error

// registration is compared by pointer, so a stale disposer cannot clear
// a newer registration of the same slot.
type registration[T any] struct {
	provider T
	triggers []string
}

// Registry holds the providers registered for one document selector.
// Registering a capability again replaces the previous provider.
type Registry struct {
	mu       sync.RWMutex
	selector DocumentSelector

	hover      *registration[HoverProvider]
	definition *registration[DefinitionProvider]
	completion *registration[CompletionProvider]
	signature  *registration[SignatureHelpProvider]
	formatting *registration[FormattingProvider]
	trees      map[string]*registration[TreeDataProvider]
	commands   map[string]*registration[Command]
}

// NewRegistry creates an empty registry for selector
func NewRegistry(selector DocumentSelector) *Registry {
	return &Registry{
		selector: selector,
		trees:    make(map[string]*registration[TreeDataProvider]),
		commands: make(map[string]*registration[Command]),
	}
}

// Selector returns the selector language providers are gated by
func (r *Registry) Selector() DocumentSelector {
	return r.selector
}

// onceDisposer makes release idempotent
func onceDisposer(release func()) Disposer {
	var once sync.Once
	return func() error {
		once.Do(release)
		return nil
	}
}

// RegisterHoverProvider installs p as the hover provider
func (r *Registry) RegisterHoverProvider(p HoverProvider) Disposer {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := &registration[HoverProvider]{provider: p}
	r.hover = reg
	return onceDisposer(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.hover == reg {
			r.hover = nil
		}
	})
}

// RegisterDefinitionProvider installs p as the definition provider
func (r *Registry) RegisterDefinitionProvider(p DefinitionProvider) Disposer {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := &registration[DefinitionProvider]{provider: p}
	r.definition = reg
	return onceDisposer(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.definition == reg {
			r.definition = nil
		}
	})
}

// RegisterCompletionProvider installs p, invoked eagerly on triggerCharacters
func (r *Registry) RegisterCompletionProvider(p CompletionProvider, triggerCharacters ...string) Disposer {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := &registration[CompletionProvider]{provider: p, triggers: triggerCharacters}
	r.completion = reg
	return onceDisposer(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.completion == reg {
			r.completion = nil
		}
	})
}

// RegisterSignatureHelpProvider installs p, invoked eagerly on triggerCharacters
func (r *Registry) RegisterSignatureHelpProvider(p SignatureHelpProvider, triggerCharacters ...string) Disposer {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := &registration[SignatureHelpProvider]{provider: p, triggers: triggerCharacters}
	r.signature = reg
	return onceDisposer(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.signature == reg {
			r.signature = nil
		}
	})
}

// RegisterFormattingProvider installs p as the document formatter
func (r *Registry) RegisterFormattingProvider(p FormattingProvider) Disposer {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := &registration[FormattingProvider]{provider: p}
	r.formatting = reg
	return onceDisposer(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.formatting == reg {
			r.formatting = nil
		}
	})
}

// RegisterTreeDataProvider installs p for the tree view viewID
func (r *Registry) RegisterTreeDataProvider(viewID string, p TreeDataProvider) Disposer {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := &registration[TreeDataProvider]{provider: p}
	r.trees[viewID] = reg
	return onceDisposer(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.trees[viewID] == reg {
			delete(r.trees, viewID)
		}
	})
}

// RegisterCommand installs cmd. Command IDs are unique; registering an ID
// that is already taken fails.
func (r *Registry) RegisterCommand(cmd Command) (Disposer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := cmd.ID()
	if _, exists := r.commands[id]; exists {
		return nil, fmt.Errorf("command '%s' already exists", id)
	}
	reg := &registration[Command]{provider: cmd}
	r.commands[id] = reg
	return onceDisposer(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.commands[id] == reg {
			delete(r.commands, id)
		}
	}), nil
}

// Hover returns the registered hover provider or nil
func (r *Registry) Hover() HoverProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.hover == nil {
		return nil
	}
	return r.hover.provider
}

// Definition returns the registered definition provider or nil
func (r *Registry) Definition() DefinitionProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.definition == nil {
		return nil
	}
	return r.definition.provider
}

// Completion returns the registered completion provider and its triggers
func (r *Registry) Completion() (CompletionProvider, []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.completion == nil {
		return nil, nil
	}
	return r.completion.provider, append([]string{}, r.completion.triggers...)
}

// SignatureHelp returns the registered signature help provider and its triggers
func (r *Registry) SignatureHelp() (SignatureHelpProvider, []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.signature == nil {
		return nil, nil
	}
	return r.signature.provider, append([]string{}, r.signature.triggers...)
}

// Formatting returns the registered formatter or nil
func (r *Registry) Formatting() FormattingProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.formatting == nil {
		return nil
	}
	return r.formatting.provider
}

// TreeDataProvider returns the provider for viewID
func (r *Registry) TreeDataProvider(viewID string) (TreeDataProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.trees[viewID]
	if !ok {
		return nil, false
	}
	return reg.provider, true
}

// Command looks up a registered command
func (r *Registry) Command(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.commands[id]
	if !ok {
		return nil, false
	}
	return reg.provider, true
}

// CommandIDs lists registered command IDs, sorted
func (r *Registry) CommandIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.commands))
	for id := range r.commands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Subscriptions owns the disposers of everything an activation
// registered and releases them together.
type Subscriptions struct {
	mu        sync.Mutex
	disposers []Disposer
	disposed  bool
}

// Add takes ownership of disposers. After Dispose has run, added
// disposers are released immediately.
func (s *Subscriptions) Add(disposers ...Disposer) {
	s.mu.Lock()
	if !s.disposed {
		s.disposers = append(s.disposers, disposers...)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	for _, d := range disposers {
		if d != nil {
			_ = d()
		}
	}
}

// Len returns how many disposers are held
func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.disposers)
}

// Dispose releases every disposer in reverse registration order. Every
// disposer runs even when an earlier one fails; the failures are joined.
func (s *Subscriptions) Dispose() error {
	s.mu.Lock()
	disposers := s.disposers
	s.disposers = nil
	s.disposed = true
	s.mu.Unlock()

	var errs []error
	for i := len(disposers) - 1; i >= 0; i-- {
		if disposers[i] == nil {
			continue
		}
		if err := safeDispose(disposers[i]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		common.LSPLogger.Warn("%d registrations failed to dispose", len(errs))
	}
	return errors.Join(errs...)
}

func safeDispose(d Disposer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispose panicked: %v", r)
		}
	}()
	return d()
}
