package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"oreore-lsp/src/config"
	"oreore-lsp/src/internal/common"
	"oreore-lsp/src/server"
	"oreore-lsp/src/server/rpc"
	"oreore-lsp/src/server/watcher"
)

// RunServer runs the language server on stdio until the client exits or
// the process is interrupted
func RunServer(ctx context.Context, configPath, logLevel string, watch bool) error {
	cfg, source, err := LoadConfigWithFallback(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --%s: %w", FlagLogLevel, err)
		}
	}

	lsp, err := server.NewLSPServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create language server: %w", err)
	}
	defer func() { _ = lsp.Close() }()

	if watch {
		stopWatch, err := startConfigWatcher(source, lsp, logLevel)
		if err != nil {
			return err
		}
		defer stopWatch()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	common.CLILogger.Info("oreore-lsp serving %s files on stdio (config: %s)", cfg.LanguageID, describeSource(source))
	if err := lsp.Serve(ctx, rpc.NewStdioConn()); err != nil {
		return fmt.Errorf("language server stopped: %w", err)
	}
	return nil
}

// startConfigWatcher reloads source into lsp on change. An explicit
// --log-level keeps winning over the file.
func startConfigWatcher(source string, lsp *server.LSPServer, logLevelOverride string) (func(), error) {
	if source == "" {
		return nil, fmt.Errorf("--%s needs a configuration file", FlagWatch)
	}

	cw, err := watcher.NewConfigWatcher(source, func(cfg *config.Config) {
		if logLevelOverride != "" {
			cfg.LogLevel = logLevelOverride
		}
		lsp.ApplyConfig(cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", source, err)
	}
	cw.Start()

	return func() {
		if err := cw.Stop(); err != nil {
			common.CLILogger.Warn("stopping config watcher: %v", err)
		}
	}, nil
}

func describeSource(source string) string {
	if source == "" {
		return "built-in defaults"
	}
	return source
}
