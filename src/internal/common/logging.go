package common

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity of a log message
type LogLevel int32

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
	LogFatal
)

// DebugEnvVar forces debug logging for every logger created while it is set
const DebugEnvVar = "OREORE_LSP_DEBUG"

var logLevelNames = map[LogLevel]string{
	LogDebug: "debug",
	LogInfo:  "info",
	LogWarn:  "warn",
	LogError: "error",
	LogFatal: "fatal",
}

var zerologLevels = map[LogLevel]zerolog.Level{
	LogDebug: zerolog.DebugLevel,
	LogInfo:  zerolog.InfoLevel,
	LogWarn:  zerolog.WarnLevel,
	LogError: zerolog.ErrorLevel,
	LogFatal: zerolog.FatalLevel,
}

func (l LogLevel) String() string {
	if name, ok := logLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int32(l))
}

// ParseLogLevel converts a config or flag value into a LogLevel
func ParseLogLevel(value string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LogDebug, nil
	case "", "info":
		return LogInfo, nil
	case "warn", "warning":
		return LogWarn, nil
	case "error":
		return LogError, nil
	case "fatal":
		return LogFatal, nil
	}
	return LogInfo, fmt.Errorf("unknown log level %q", value)
}

// SafeLogger provides STDIO-safe logging that never writes to stdout.
// The JSON-RPC stream owns stdout while the server is running.
type SafeLogger struct {
	prefix string
	level  atomic.Int32

	mu sync.RWMutex
	zl zerolog.Logger
}

// NewSafeLogger creates a new safe logger with the given prefix
func NewSafeLogger(prefix string) *SafeLogger {
	l := &SafeLogger{prefix: prefix}
	l.level.Store(int32(LogInfo))
	if os.Getenv(DebugEnvVar) != "" {
		l.level.Store(int32(LogDebug))
	}
	l.zl = newZerolog(os.Stderr, prefix)
	return l
}

func newZerolog(w io.Writer, prefix string) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: "2006/01/02 15:04:05",
	}
	return zerolog.New(console).With().Timestamp().Str("component", prefix).Logger()
}

// SetLevel sets the minimum log level
func (l *SafeLogger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

// Level returns the current minimum log level
func (l *SafeLogger) Level() LogLevel {
	return LogLevel(l.level.Load())
}

// SetOutput redirects the logger. Passing os.Stdout is refused.
func (l *SafeLogger) SetOutput(w io.Writer) {
	if w == nil || w == os.Stdout {
		w = os.Stderr
	}
	l.mu.Lock()
	l.zl = newZerolog(w, l.prefix)
	l.mu.Unlock()
}

func (l *SafeLogger) log(level LogLevel, format string, args ...interface{}) {
	if level < l.Level() {
		return
	}

	l.mu.RLock()
	zl := l.zl
	l.mu.RUnlock()

	// WithLevel never exits, Fatal handles that itself.
	zl.WithLevel(zerologLevels[level]).Msgf(format, args...)
}

// Debug logs a debug message
func (l *SafeLogger) Debug(format string, args ...interface{}) {
	l.log(LogDebug, format, args...)
}

// Info logs an info message
func (l *SafeLogger) Info(format string, args ...interface{}) {
	l.log(LogInfo, format, args...)
}

// Warn logs a warning message
func (l *SafeLogger) Warn(format string, args ...interface{}) {
	l.log(LogWarn, format, args...)
}

// Error logs an error message
func (l *SafeLogger) Error(format string, args ...interface{}) {
	l.log(LogError, format, args...)
}

// Fatal logs a fatal message and exits
func (l *SafeLogger) Fatal(format string, args ...interface{}) {
	l.log(LogFatal, format, args...)
	os.Exit(1)
}

// Global logger instances for convenience
var (
	LSPLogger    = NewSafeLogger("LSP")
	ServerLogger = NewSafeLogger("Server")
	CLILogger    = NewSafeLogger("CLI")
)

// SetGlobalLevel applies level to every global logger
func SetGlobalLevel(level LogLevel) {
	for _, l := range []*SafeLogger{LSPLogger, ServerLogger, CLILogger} {
		l.SetLevel(level)
	}
}

// SanitizeErrorForLogging trims multi-line or very long error payloads
// down to something that fits a single log line.
func SanitizeErrorForLogging(err interface{}) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("%v", err)
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		msg = msg[:idx]
	}
	const maxLen = 200
	if len(msg) > maxLen {
		msg = msg[:maxLen] + "..."
	}
	return msg
}
