// Package logging configures the process-wide slog logger. Output goes to a
// rotated file under the store root; without a log dir and outside debug mode
// everything is discarded.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Component names used as the "component" attribute
const (
	CompResolve = "resolve"
	CompIndex   = "index"
	CompStore   = "store"
	CompAlias   = "alias"
	CompCLI     = "cli"
	CompMCP     = "mcp"
)

// Config holds logging configuration
type Config struct {
	// LogDir is the directory for log files (e.g. ~/.locus/logs)
	LogDir string

	// Level is the minimum level: "debug", "info", "warn", "error"
	Level string

	// Format is "json" (default) or "text"
	Format string

	// MaxSizeMB is the size in MB before rotation (default: 10)
	MaxSizeMB int

	// MaxBackups is the number of rotated files to keep (default: 3)
	MaxBackups int

	// MaxAgeDays is the number of days to keep rotated files (default: 14)
	MaxAgeDays int

	// Debug also mirrors log output to stderr
	Debug bool
}

var (
	globalLogger *slog.Logger
	globalMu     sync.RWMutex
	rotator      *lumberjack.Logger
)

// ParseLevel maps a level name to slog.Level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init installs the global logger. Calling it again replaces the previous
// configuration and closes the previous log file.
func Init(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 14
	}

	if rotator != nil {
		rotator.Close()
		rotator = nil
	}

	if !cfg.Debug && cfg.LogDir == "" {
		globalLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return
	}

	var writers []io.Writer
	if cfg.LogDir != "" {
		rotator = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, "locus.log"),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		writers = append(writers, rotator)
	}
	if cfg.Debug {
		writers = append(writers, os.Stderr)
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	out := io.MultiWriter(writers...)

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	globalLogger = slog.New(handler)
}

// Logger returns the global logger. Safe to call before Init.
func Logger() *slog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return globalLogger
}

// ForComponent returns a logger tagged with component. The handler is looked
// up at log time, so package-level loggers created before Init still reach
// the configured output.
func ForComponent(name string) *slog.Logger {
	return slog.New(&dynamicHandler{component: name})
}

// Shutdown closes the log file
func Shutdown() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if rotator != nil {
		rotator.Close()
		rotator = nil
	}
	globalLogger = nil
}

type dynamicHandler struct {
	component string
	attrs     []slog.Attr
	group     string
}

func (h *dynamicHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return Logger().Handler().Enabled(ctx, level)
}

func (h *dynamicHandler) Handle(ctx context.Context, r slog.Record) error {
	handler := Logger().Handler().WithAttrs([]slog.Attr{slog.String("component", h.component)})
	if len(h.attrs) > 0 {
		handler = handler.WithAttrs(h.attrs)
	}
	if h.group != "" {
		handler = handler.WithGroup(h.group)
	}
	return handler.Handle(ctx, r)
}

func (h *dynamicHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &dynamicHandler{component: h.component, attrs: merged, group: h.group}
}

func (h *dynamicHandler) WithGroup(name string) slog.Handler {
	return &dynamicHandler{component: h.component, attrs: h.attrs, group: name}
}
