package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.lsp.dev/jsonrpc2"

	"oreore-lsp/src/config"
	"oreore-lsp/src/internal/common"
	"oreore-lsp/src/internal/constants"
	"oreore-lsp/src/internal/errors"
	"oreore-lsp/src/server/documents"
	"oreore-lsp/src/server/providers"
	"oreore-lsp/src/server/rpc"
)

// ErrExitWithoutShutdown is returned by Serve when the client sent exit
// without a preceding shutdown request
var ErrExitWithoutShutdown = stderrors.New("exit received before shutdown")

// LSPServer adapts the provider registry to the Language Server Protocol.
// One LSPServer serves one client connection.
type LSPServer struct {
	cfgMu sync.RWMutex
	cfg   *config.Config

	store    *documents.Store
	registry *providers.Registry
	subs     providers.Subscriptions

	connMu sync.RWMutex
	conn   jsonrpc2.Conn

	initialized atomic.Bool
	shutdown    atomic.Bool
	exitOnce    sync.Once
	exited      chan struct{}

	// commands run outside the read loop; Serve waits for them. No command
	// starts once closing is set.
	runMu     sync.Mutex
	closing   bool
	inflight  sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// NewLSPServer creates a server and registers every oreore capability
func NewLSPServer(cfg *config.Config) (*LSPServer, error) {
	if cfg == nil {
		cfg = config.GetDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &LSPServer{
		cfg:      cfg.Clone(),
		store:    documents.NewStore(cfg.LanguageID, cfg.FileExtensions),
		registry: providers.NewRegistry(providers.NewSelector(cfg.LanguageID)),
		exited:   make(chan struct{}),
	}

	err := providers.Activate(s.registry, &s.subs, providers.Options{
		LanguageID:   cfg.LanguageID,
		HelloMessage: func() string { return s.config().HelloMessage },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to activate providers: %w", err)
	}

	common.SetGlobalLevel(cfg.Level())
	return s, nil
}

func (s *LSPServer) config() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// ApplyConfig takes the settings that can change while serving: log
// level, hello message and no-result reporting. The language id and file
// extensions are fixed at construction.
func (s *LSPServer) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	next := s.config().Clone()
	next.LogLevel = cfg.LogLevel
	next.HelloMessage = cfg.HelloMessage
	next.NoResult = cfg.NoResult

	s.cfgMu.Lock()
	s.cfg = next
	s.cfgMu.Unlock()

	common.SetGlobalLevel(next.Level())
	common.LSPLogger.Info("configuration applied: log_level=%s no_result=%s", next.LogLevel, next.NoResult)
}

// Registry exposes the registrations, mainly for inspection in tests
func (s *LSPServer) Registry() *providers.Registry {
	return s.registry
}

// Serve speaks LSP over rwc until the client exits, the stream closes or
// ctx is done. Every registration is disposed before Serve returns.
func (s *LSPServer) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	defer func() { _ = s.Close() }()

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	s.connMu.Lock()
	s.conn = conn
	s.connMu.Unlock()

	common.LSPLogger.Info("language server started")
	conn.Go(ctx, s.handle)

	var err error
	select {
	case <-ctx.Done():
		common.LSPLogger.Debug("serve context done: %v", ctx.Err())
	case <-conn.Done():
		if connErr := conn.Err(); connErr != nil && !stderrors.Is(connErr, io.EOF) {
			err = fmt.Errorf("connection failed: %w", connErr)
		}
	case <-s.exited:
		if !s.shutdown.Load() {
			err = ErrExitWithoutShutdown
		}
	}

	s.runMu.Lock()
	s.closing = true
	s.runMu.Unlock()

	// commands may still be waiting on the client
	waited := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(constants.ShutdownTimeout):
		common.LSPLogger.Warn("commands still running after %s, closing connection", constants.ShutdownTimeout)
	}
	_ = conn.Close()
	<-conn.Done()

	common.LSPLogger.Info("language server stopped")
	return err
}

// Close disposes every registration. It is safe to call more than once.
func (s *LSPServer) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.subs.Dispose()
		if s.closeErr != nil {
			common.LSPLogger.Error("disposing registrations: %v", s.closeErr)
		}
	})
	return s.closeErr
}

func (s *LSPServer) connection() jsonrpc2.Conn {
	s.connMu.RLock()
	defer s.connMu.RUnlock()
	return s.conn
}

func (s *LSPServer) exit() {
	s.exitOnce.Do(func() { close(s.exited) })
}

// stopping reports whether the client has exited or the serve context
// is done
func (s *LSPServer) stopping(ctx context.Context) bool {
	select {
	case <-s.exited:
		return true
	default:
	}
	return ctx.Err() != nil
}

// startCommand registers a running command, or refuses once Serve has
// begun waiting for the running ones
func (s *LSPServer) startCommand() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.closing {
		return false
	}
	s.inflight.Add(1)
	return true
}

// replyError sends err to the client as a JSON-RPC error, except that
// provider rejections become a null result when configured so.
func (s *LSPServer) replyError(ctx context.Context, reply jsonrpc2.Replier, method string, err error) error {
	if errors.IsNoResultError(err) && s.config().NoResult == config.NoResultSilent {
		common.LSPLogger.Debug("%s: %v (replying null)", method, err)
		return reply(ctx, nil, nil)
	}
	common.LSPLogger.Debug("%s failed: %s", method, common.SanitizeErrorForLogging(err))
	return reply(ctx, nil, rpc.NewUnifiedRPCError(err))
}
