package rara

import (
	"context"
	"io"
)

// CollectionStore persists full collection snapshots.
type CollectionStore interface {
	// Save writes every record of c to the location named by path,
	// replacing whatever was stored there before.
	Save(ctx context.Context, c *Collection, path string) error

	// Load reads the snapshot at path.
	// Returns ENOTFOUND if nothing is stored there. Callers holding a Session
	// should go through Session.Load so the error log is cleared too.
	Load(ctx context.Context, path string) (*Collection, error)
}

// Exporter writes a collection in an interchange format.
type Exporter interface {
	Export(w io.Writer, c *Collection) error
}
