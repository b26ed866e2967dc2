package spatialgo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Logger wraps slog.Logger with spatialgo-specific context.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithOp adds an operation name field to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// WithPoints adds a point count field to the logger.
func (l *Logger) WithPoints(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("points", n),
	}
}

// Progress returns a callback suitable for spatial.WithProgress that logs at
// debug level at most once per interval. The first call always logs.
func (l *Logger) Progress(ctx context.Context, op string, interval time.Duration) func(done, total int) {
	s := &rate.Sometimes{Interval: interval}
	return func(done, total int) {
		s.Do(func() {
			l.DebugContext(ctx, "progress",
				"op", op,
				"done", done,
				"total", total,
			)
		})
	}
}

// LogNeighbors logs a neighbor search.
func (l *Logger) LogNeighbors(ctx context.Context, points, edges int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "neighbor search failed",
			"points", points,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "neighbor search completed",
		"points", points,
		"edges", edges,
		"elapsed", elapsed,
	)
}

// LogWeights logs a weight derivation. degenerate counts the points whose
// bilateral bandwidth collapsed and fell back to uniform feature weights.
func (l *Logger) LogWeights(ctx context.Context, points, degenerate int, elapsed time.Duration, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "weights failed",
			"points", points,
			"error", err,
		)
	case degenerate > 0:
		l.WarnContext(ctx, "weights completed with degenerate bandwidths",
			"points", points,
			"degenerate", degenerate,
			"elapsed", elapsed,
		)
	default:
		l.InfoContext(ctx, "weights completed",
			"points", points,
			"elapsed", elapsed,
		)
	}
}

// LogFilter logs a smoothing pass.
func (l *Logger) LogFilter(ctx context.Context, points, features int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "filter failed",
			"points", points,
			"features", features,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "filter completed",
		"points", points,
		"features", features,
		"elapsed", elapsed,
	)
}

// LogScores logs a scoring pass.
func (l *Logger) LogScores(ctx context.Context, points, centers int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "scores failed",
			"points", points,
			"centers", centers,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "scores completed",
		"points", points,
		"centers", centers,
		"elapsed", elapsed,
	)
}

// LogDistance logs a neighborhood distance pass against reference point ref.
func (l *Logger) LogDistance(ctx context.Context, points, ref int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "distance failed",
			"points", points,
			"ref", ref,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "distance completed",
		"points", points,
		"ref", ref,
		"elapsed", elapsed,
	)
}

// LogCluster logs a spatial clustering run.
func (l *Logger) LogCluster(ctx context.Context, k, iterations int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "cluster failed",
			"k", k,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "cluster completed",
		"k", k,
		"iterations", iterations,
		"elapsed", elapsed,
	)
}
