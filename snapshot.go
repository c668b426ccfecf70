package rara

import (
	"context"
	"time"
)

// Snapshot describes a collection stored under a name.
type Snapshot struct {
	ID      string
	Name    string
	Size    int
	SavedAt time.Time
}

// SnapshotStore is a CollectionStore that keeps any number of named
// collections side by side. The path argument of Save and Load is the
// snapshot name.
type SnapshotStore interface {
	CollectionStore

	// FindSnapshots returns every stored snapshot ordered by name.
	FindSnapshots(ctx context.Context) ([]*Snapshot, error)
}
