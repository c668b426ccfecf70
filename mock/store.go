package mock

import (
	"context"
	"io"

	"github.com/fwojciec/rara"
)

// Compile-time interface verification.
var (
	_ rara.CollectionStore = (*CollectionStore)(nil)
	_ rara.SnapshotStore   = (*SnapshotStore)(nil)
	_ rara.Exporter        = (*Exporter)(nil)
)

// CollectionStore is a mock implementation of rara.CollectionStore.
type CollectionStore struct {
	SaveFn func(ctx context.Context, c *rara.Collection, path string) error
	LoadFn func(ctx context.Context, path string) (*rara.Collection, error)
}

func (s *CollectionStore) Save(ctx context.Context, c *rara.Collection, path string) error {
	return s.SaveFn(ctx, c, path)
}

func (s *CollectionStore) Load(ctx context.Context, path string) (*rara.Collection, error) {
	return s.LoadFn(ctx, path)
}

// Exporter is a mock implementation of rara.Exporter.
type Exporter struct {
	ExportFn func(w io.Writer, c *rara.Collection) error
}

func (e *Exporter) Export(w io.Writer, c *rara.Collection) error {
	return e.ExportFn(w, c)
}

// SnapshotStore is a mock implementation of rara.SnapshotStore.
type SnapshotStore struct {
	CollectionStore
	FindSnapshotsFn func(ctx context.Context) ([]*rara.Snapshot, error)
}

func (s *SnapshotStore) FindSnapshots(ctx context.Context) ([]*rara.Snapshot, error) {
	return s.FindSnapshotsFn(ctx)
}
