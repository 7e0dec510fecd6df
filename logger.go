package reusedist

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with reusedist-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBlockSize adds a block_size field to the logger.
func (l *Logger) WithBlockSize(size uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("block_size", size),
	}
}

// WithSite adds a site field to the logger.
func (l *Logger) WithSite(site uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("site", site),
	}
}

// LogExtract logs a front-end extraction hand-off.
func (l *Logger) LogExtract(ctx context.Context, source string, found bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "extraction failed",
			"source", source,
			"error", err,
		)
	} else if !found {
		l.InfoContext(ctx, "no affine loop extracted",
			"source", source,
		)
	} else {
		l.DebugContext(ctx, "extraction completed",
			"source", source,
		)
	}
}

// LogIndex logs an indexing pass.
func (l *Logger) LogIndex(ctx context.Context, sites, nodes int) {
	l.InfoContext(ctx, "indexing pass completed",
		"sites", sites,
		"nodes", nodes,
	)
}

// LogReplay logs a trace replay.
func (l *Logger) LogReplay(ctx context.Context, events uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "trace replay failed",
			"events", events,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "trace replay completed",
			"events", events,
		)
	}
}
