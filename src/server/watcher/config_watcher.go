package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"oreore-lsp/src/config"
	"oreore-lsp/src/internal/common"
	"oreore-lsp/src/internal/constants"
)

// ConfigWatcher reloads a configuration file whenever it changes on disk
// and hands the result to a callback. Invalid files are logged and
// skipped, the previous configuration stays in effect.
type ConfigWatcher struct {
	watcher       *fsnotify.Watcher
	path          string
	onReload      func(*config.Config)
	debounceDelay time.Duration

	// Debouncing
	mu            sync.Mutex
	pending       bool
	debounceTimer *time.Timer

	// Control
	ctx       context.Context
	cancel    context.CancelFunc
	startOnce sync.Once
	done      chan struct{}
}

// NewConfigWatcher creates a watcher for the config file at path
func NewConfigWatcher(path string, onReload func(*config.Config)) (*ConfigWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors often save by renaming a temp file over
	// the original, which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &ConfigWatcher{
		watcher:       watcher,
		path:          absPath,
		onReload:      onReload,
		debounceDelay: constants.ConfigReloadDebounce,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}, nil
}

// Start begins watching for changes. Calling it again, or after Stop, does
// nothing.
func (cw *ConfigWatcher) Start() {
	cw.startOnce.Do(func() {
		common.ServerLogger.Debug("ConfigWatcher: watching %s", cw.path)
		go cw.watchLoop()
	})
}

func (cw *ConfigWatcher) watchLoop() {
	defer close(cw.done)

	for {
		select {
		case <-cw.ctx.Done():
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cw.schedule()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			common.ServerLogger.Error("ConfigWatcher error: %v", err)
		}
	}
}

// schedule (re)starts the debounce timer so a burst of events causes one reload
func (cw *ConfigWatcher) schedule() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.pending = true
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.debounceTimer = time.AfterFunc(cw.debounceDelay, cw.reload)
}

func (cw *ConfigWatcher) reload() {
	cw.mu.Lock()
	if !cw.pending || cw.ctx.Err() != nil {
		cw.mu.Unlock()
		return
	}
	cw.pending = false
	cw.mu.Unlock()

	cfg, err := config.LoadConfig(cw.path)
	if err != nil {
		common.ServerLogger.Warn("ConfigWatcher: keeping previous configuration: %v", err)
		return
	}

	common.ServerLogger.Info("ConfigWatcher: reloaded %s", cw.path)
	if cw.onReload != nil {
		cw.onReload(cfg)
	}
}

// Stop stops the watcher. Pending reloads are dropped.
func (cw *ConfigWatcher) Stop() error {
	cw.cancel()

	cw.mu.Lock()
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.pending = false
	cw.mu.Unlock()

	// a watcher that never started has no loop to close done
	cw.startOnce.Do(func() { close(cw.done) })

	err := cw.watcher.Close()
	<-cw.done
	return err
}

// SetDebounceDelay sets the debounce delay for change events
func (cw *ConfigWatcher) SetDebounceDelay(delay time.Duration) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.debounceDelay = delay
}
