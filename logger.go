package gridstate

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with gridstate-specific field and operation
// helpers, so callers don't repeat key names at every call site.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger around handler. A nil handler falls back to a
// text handler on stderr at Info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger returns a Logger that discards everything. Safe to use as the
// zero-configuration default for store.AttributeStore and
// snapshot.SnapshotList.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.Level(1000), // unreachable
		})),
	}
}

// WithTick returns a Logger with a tick field attached.
func (l *Logger) WithTick(tick int64) *Logger {
	return &Logger{Logger: l.Logger.With("tick", tick)}
}

// LogArrange logs a completed AttributeStore.Arrange compaction pass.
func (l *Logger) LogArrange(holesClosed int, lastIndex int) {
	l.Debug("arrange completed", "holes_closed", holesClosed, "last_index", lastIndex)
}

// LogGrow logs a cells/backing-vector growth event.
func (l *Logger) LogGrow(what string, oldCap, newCap int) {
	l.Debug("backing vector grown", "what", what, "old_capacity", oldCap, "new_capacity", newCap)
}

// LogTakeSnapshot logs a completed take_snapshot call.
func (l *Logger) LogTakeSnapshot(tick int64, size int, evicted bool, dur time.Duration) {
	l.Debug("snapshot taken", "tick", tick, "size", size, "evicted_oldest", evicted, "duration", dur)
}

// LogQuery logs a completed query call.
func (l *Logger) LogQuery(cellsRead int, dur time.Duration) {
	l.Debug("query completed", "cells_read", cellsRead, "duration", dur)
}

// LogDump logs a completed CSV dump.
func (l *Logger) LogDump(dir string, nodeFiles int, err error) {
	if err != nil {
		l.Error("csv dump failed", "dir", dir, "error", err)
		return
	}
	l.Info("csv dump completed", "dir", dir, "files", nodeFiles)
}
