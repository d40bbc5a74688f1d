// Package logging provides the categorized, stderr-only logger the server
// and its CLI entry points share. Stdout is reserved for the framed
// JSON-RPC stream; a log line written there would corrupt the transport,
// so every logger this package hands out is built on a stderr sink.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies which subsystem emitted a log line, matching the
// grain at which operators actually want to raise or lower verbosity.
type Category string

const (
	CategoryRPC       Category = "rpc"
	CategoryDispatch  Category = "dispatch"
	CategoryAnalysis  Category = "analysis"
	CategoryImports   Category = "imports"
	CategorySyntax    Category = "syntax"
)

// EnvVar is the conventional environment variable controlling log level.
const EnvVar = "MOJOM_LSP_LOG"

var (
	mu      sync.Mutex
	base    *zap.Logger
	loggers = map[Category]*zap.Logger{}
)

func levelFromEnv() zapcore.Level {
	switch strings.ToLower(os.Getenv(EnvVar)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	case "warn", "":
		return zapcore.WarnLevel
	default:
		return zapcore.WarnLevel
	}
}

func buildBase() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(levelFromEnv())
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		// zap's production config is validated at compile time; this
		// branch only fires if OutputPaths references an unopenable
		// sink, which stderr never is.
		return zap.NewNop()
	}
	return logger
}

// Get returns the logger for category, constructing the shared base
// logger on first use and caching the per-category child.
func Get(category Category) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		base = buildBase()
	}
	if l, ok := loggers[category]; ok {
		return l
	}
	l := base.With(zap.String("category", string(category)))
	loggers[category] = l
	return l
}

// Sync flushes every category logger. Call once during shutdown; zap
// returns an error syncing stderr on some platforms (it is not a real
// file), which callers may safely ignore.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		_ = l.Sync()
	}
	if base != nil {
		_ = base.Sync()
	}
}
