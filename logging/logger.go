package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger defines the minimal logging interface used throughout TuneCrew.
// Arguments follow the slog convention of alternating keys and values.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// Config controls construction of the default logger.
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"
	Output io.Writer
}

// New builds a Logger backed by slog with the given config. A nil config
// yields text output at info level on stderr, which suits an interactive
// shell where the conversation itself owns stdout.
func New(cfg *Config) Logger {
	if cfg == nil {
		cfg = &Config{Level: slog.LevelInfo, Format: "text", Output: os.Stderr}
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return NewSlogAdapter(slog.New(handler))
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NoOpLogger discards all log output. It is the default for library types
// constructed without an explicit logger.
type NoOpLogger struct{}

// Debug implements Logger as a no-op.
func (NoOpLogger) Debug(string, ...any) {}

// Info implements Logger as a no-op.
func (NoOpLogger) Info(string, ...any) {}

// Warn implements Logger as a no-op.
func (NoOpLogger) Warn(string, ...any) {}

// Error implements Logger as a no-op.
func (NoOpLogger) Error(string, ...any) {}

// OrNoOp returns l, or a NoOpLogger when l is nil.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NoOpLogger{}
	}
	return l
}
