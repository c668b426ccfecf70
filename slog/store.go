package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rara"
)

// Ensure LoggingStore implements rara.CollectionStore.
var _ rara.CollectionStore = (*LoggingStore)(nil)

// LoggingStore wraps a CollectionStore with debug logging.
type LoggingStore struct {
	next   rara.CollectionStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next rara.CollectionStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Save delegates to the wrapped store.
func (s *LoggingStore) Save(ctx context.Context, c *rara.Collection, path string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save",
			"path", path,
			"records", recordCount(c),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, c, path)
}

// Load delegates to the wrapped store.
func (s *LoggingStore) Load(ctx context.Context, path string) (c *rara.Collection, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load",
			"path", path,
			"records", recordCount(c),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, path)
}

func recordCount(c *rara.Collection) int {
	if c == nil {
		return 0
	}
	return c.Len()
}

// Ensure LoggingSnapshotStore implements rara.SnapshotStore.
var _ rara.SnapshotStore = (*LoggingSnapshotStore)(nil)

// LoggingSnapshotStore wraps a SnapshotStore with debug logging.
type LoggingSnapshotStore struct {
	*LoggingStore
	snapshots rara.SnapshotStore
}

// NewLoggingSnapshotStore creates a new LoggingSnapshotStore.
func NewLoggingSnapshotStore(next rara.SnapshotStore, logger *slog.Logger) *LoggingSnapshotStore {
	return &LoggingSnapshotStore{
		LoggingStore: NewLoggingStore(next, logger),
		snapshots:    next,
	}
}

// FindSnapshots delegates to the wrapped store.
func (s *LoggingSnapshotStore) FindSnapshots(ctx context.Context) (snaps []*rara.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find snapshots",
			"count", len(snaps),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.snapshots.FindSnapshots(ctx)
}
