package rtree

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the tree's structural events.
// The tree only logs at debug level; errors are returned, not logged.
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

// LogSplit logs a node split.
func (l *Logger) LogSplit(leaf bool, sizeA, sizeB int) {
	l.Debug("node split",
		"leaf", leaf,
		"size_a", sizeA,
		"size_b", sizeB,
	)
}

// LogGrow logs the root splitting and the tree growing by one level.
func (l *Logger) LogGrow(height int) {
	l.Debug("tree grew", "height", height)
}

// LogShrink logs the root collapsing into its only child.
func (l *Logger) LogShrink(height int) {
	l.Debug("tree shrank", "height", height)
}

// LogReinsert logs entries orphaned by underflowing nodes being re-inserted.
func (l *Logger) LogReinsert(eliminatedNodes, entries int) {
	l.Debug("reinserting orphaned entries",
		"eliminated_nodes", eliminatedNodes,
		"entries", entries,
	)
}
