package hypergraph

import (
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/hypergraph/core"
)

// Logger wraps slog.Logger with hypergraph-specific context.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000), // Unreachable level
		})),
	}
}

// WithOp adds an operation field to the logger.
func (l *Logger) WithOp(op Op) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", string(op)),
	}
}

// WithVertex adds a vertex field to the logger.
func (l *Logger) WithVertex(v core.VertexIndex) *Logger {
	return &Logger{
		Logger: l.Logger.With("vertex", uint64(v)),
	}
}

// WithHyperedge adds a hyperedge field to the logger.
func (l *Logger) WithHyperedge(h core.HyperedgeIndex) *Logger {
	return &Logger{
		Logger: l.Logger.With("hyperedge", uint64(h)),
	}
}

// LogMutation logs the outcome of a single-entity mutation.
// Internal index failures are logged at error level, user errors at debug.
func (l *Logger) LogMutation(op Op, id uint64, err error) {
	switch {
	case err == nil:
		l.Debug("mutation completed",
			"op", string(op),
			"id", id,
		)
	case IsInternal(err):
		l.Error("mutation aborted on broken index",
			"op", string(op),
			"id", id,
			"error", err,
		)
	default:
		l.Debug("mutation rejected",
			"op", string(op),
			"id", id,
			"error", err,
		)
	}
}

// LogCascade logs the hyperedge work performed by a vertex removal.
func (l *Logger) LogCascade(v core.VertexIndex, rewritten, removed, remapped int, parallel bool) {
	l.Debug("vertex removal cascade",
		"vertex", uint64(v),
		"rewritten", rewritten,
		"removed", removed,
		"remapped", remapped,
		"parallel", parallel,
	)
}

// LogMerge logs a content collision resolved by merging.
func (l *Logger) LogMerge(op Op, dropped, kept core.HyperedgeIndex) {
	l.Warn("hyperedge merged into identical hyperedge",
		"op", string(op),
		"dropped", uint64(dropped),
		"kept", uint64(kept),
	)
}
