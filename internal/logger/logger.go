// Package logger builds zerolog loggers and carries them through contexts.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// LevelEnv names the environment variable that overrides the log level.
const LevelEnv = "WISESPEND_LOG_LEVEL"

// New returns a human-readable logger on stderr for interactive commands.
// quiet raises the level to warnings.
func New(quiet bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.WarnLevel
	}
	return zerolog.New(out).Level(levelFromEnv(level)).With().Timestamp().Logger()
}

// NewJSON returns a structured JSON logger, used by the daemon's log file.
func NewJSON(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(levelFromEnv(zerolog.InfoLevel)).
		With().Timestamp().Str("component", "daemon").Logger()
}

// WithContext stores the logger in ctx.
func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return log
	}
	return zerolog.Nop()
}

// WithFields attaches fields to every event of the returned logger.
func WithFields(log zerolog.Logger, fields map[string]any) zerolog.Logger {
	return log.With().Fields(fields).Logger()
}

func levelFromEnv(fallback zerolog.Level) zerolog.Level {
	raw := strings.TrimSpace(os.Getenv(LevelEnv))
	if raw == "" {
		return fallback
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return fallback
	}
	return level
}
