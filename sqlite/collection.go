package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/rara"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ rara.SnapshotStore = (*CollectionStore)(nil)

// CollectionStore implements rara.CollectionStore using SQLite. The path
// argument of Save and Load names a snapshot, so one database holds any
// number of named collections.
type CollectionStore struct {
	db *DB

	// Now returns the snapshot timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewCollectionStore creates a new CollectionStore.
func NewCollectionStore(db *DB) *CollectionStore {
	return &CollectionStore{db: db, Now: time.Now}
}

// hashRecord computes the xxHash of the record's JSON form.
func hashRecord(r *rara.Record) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}

// Save replaces the snapshot called name with the contents of c.
func (s *CollectionStore) Save(ctx context.Context, c *rara.Collection, name string) error {
	if c == nil {
		return rara.Errorf(rara.EINVALID, "collection required")
	}
	if name == "" {
		return rara.Errorf(rara.EINVALID, "snapshot name required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name); err != nil {
		return err
	}

	id := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, size, saved_at) VALUES (?, ?, ?, ?)
	`, id, name, c.Size(), s.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	for _, key := range c.Keys() {
		r, _ := c.Get(key)
		hash, err := hashRecord(r)
		if err != nil {
			return fmt.Errorf("hashing record %d: %w", key, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (snapshot_id, key, url, entity, record_id, text, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, key, r.URL, r.Entity, r.ID, r.Text, hash); err != nil {
			return err
		}

		for pos, attr := range r.Attrs.Keys() {
			value, _ := r.Attrs.Get(attr)
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO attributes (snapshot_id, record_key, position, name, value)
				VALUES (?, ?, ?, ?, ?)
			`, id, key, pos, attr, value); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Load rebuilds the snapshot called name. Returns ENOTFOUND if no such
// snapshot exists, EINTERNAL if a record no longer matches its stored hash and
// EINVALID if a stored record fails Validate.
func (s *CollectionStore) Load(ctx context.Context, name string) (*rara.Collection, error) {
	snap, err := s.FindSnapshot(ctx, name)
	if err != nil {
		return nil, err
	}

	records := make(map[int]*rara.Record)
	hashes := make(map[int]string)

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, url, entity, record_id, text, content_hash
		FROM records
		WHERE snapshot_id = ?
		ORDER BY key
	`, snap.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var key int
		var hash string
		r := &rara.Record{}
		if err := rows.Scan(&key, &r.URL, &r.Entity, &r.ID, &r.Text, &hash); err != nil {
			return nil, err
		}
		records[key] = r
		hashes[key] = hash
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	attrs, err := s.db.QueryContext(ctx, `
		SELECT record_key, name, value
		FROM attributes
		WHERE snapshot_id = ?
		ORDER BY record_key, position
	`, snap.ID)
	if err != nil {
		return nil, err
	}
	defer attrs.Close()

	for attrs.Next() {
		var key int
		var name, value string
		if err := attrs.Scan(&key, &name, &value); err != nil {
			return nil, err
		}
		if r, ok := records[key]; ok {
			r.SetAttr(name, value)
		}
	}
	if err := attrs.Err(); err != nil {
		return nil, err
	}

	for key, r := range records {
		hash, err := hashRecord(r)
		if err != nil {
			return nil, err
		}
		if hash != hashes[key] {
			return nil, rara.Errorf(rara.EINTERNAL, "snapshot %q: record %d does not match its content hash", name, key)
		}
		if err := r.Validate(); err != nil {
			return nil, rara.Errorf(rara.EINVALID, "snapshot %q: record %d: %s", name, key, rara.ErrorMessage(err))
		}
	}

	c := rara.NewCollection()
	c.Restore(records)
	return c, nil
}

// FindSnapshot returns the snapshot called name.
// Returns ENOTFOUND if it does not exist.
func (s *CollectionStore) FindSnapshot(ctx context.Context, name string) (*rara.Snapshot, error) {
	var snap rara.Snapshot
	var savedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, size, saved_at FROM snapshots WHERE name = ?
	`, name).Scan(&snap.ID, &snap.Name, &snap.Size, &savedAt)
	if err == sql.ErrNoRows {
		return nil, rara.Errorf(rara.ENOTFOUND, "no snapshot named %q", name)
	}
	if err != nil {
		return nil, err
	}

	if snap.SavedAt, err = parseRFC3339(savedAt, "saved_at"); err != nil {
		return nil, err
	}
	return &snap, nil
}

// FindSnapshots returns every stored snapshot ordered by name.
func (s *CollectionStore) FindSnapshots(ctx context.Context) ([]*rara.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, size, saved_at FROM snapshots ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*rara.Snapshot
	for rows.Next() {
		var snap rara.Snapshot
		var savedAt string
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Size, &savedAt); err != nil {
			return nil, err
		}
		if snap.SavedAt, err = parseRFC3339(savedAt, "saved_at"); err != nil {
			return nil, err
		}
		snaps = append(snaps, &snap)
	}
	return snaps, rows.Err()
}
