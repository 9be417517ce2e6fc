package medoids

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with medoids-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, iterations int, converged bool, elapsed time.Duration, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "clustering failed",
			"iterations", iterations,
			"error", err,
		)
	case !converged:
		l.WarnContext(ctx, "clustering stopped before convergence",
			"iterations", iterations,
			"elapsed", elapsed,
		)
	default:
		l.InfoContext(ctx, "clustering converged",
			"iterations", iterations,
			"elapsed", elapsed,
		)
	}
}

// LogIteration logs a single pass of the convergence loop.
func (l *Logger) LogIteration(ctx context.Context, iteration, changed int) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"medoids_changed", changed,
	)
}

// LogEmptyCluster logs a cluster that lost all of its members and the medoid
// it continues with.
func (l *Logger) LogEmptyCluster(ctx context.Context, cluster, previous, next int) {
	l.DebugContext(ctx, "cluster is empty",
		"cluster", cluster,
		"previous_medoid", previous,
		"medoid", next,
	)
}
