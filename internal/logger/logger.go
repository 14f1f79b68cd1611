// =============================================================================
// Record Translator - Logger
// =============================================================================
//
// Structured diagnostics for the translator. Logs always go to stderr (or a
// writer chosen by the caller); stdout is reserved for translated output.
//
// =============================================================================

package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the logging interface used throughout the translator.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	With(keyvals ...any) Logger
}

// Config controls how the logger is built.
type Config struct {
	// Level is one of "debug", "info", "warn", "error". Unknown values
	// fall back to "warn".
	Level string

	// JSON selects the JSON formatter instead of text.
	JSON bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }

func (c *charmLogger) With(keyvals ...any) Logger {
	return &charmLogger{l: c.l.With(keyvals...)}
}

// New builds a Logger from the configuration.
func New(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           ParseLevel(cfg.Level),
		Prefix:          "translator",
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	} else {
		l.SetFormatter(charmlog.TextFormatter)
	}

	return &charmLogger{l: l}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return New(Config{Output: io.Discard})
}

// ParseLevel maps a level name to a charm log level.
func ParseLevel(level string) charmlog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.WarnLevel
	}
}

var (
	mu      sync.RWMutex
	current = New(Config{})
)

// Setup replaces the process-wide logger.
func Setup(cfg Config) Logger {
	l := New(cfg)
	mu.Lock()
	current = l
	mu.Unlock()
	return l
}

// L returns the process-wide logger.
func L() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
