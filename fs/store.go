// Package fs provides file-based persistence and export for collections.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/rara"
)

// Ensure JSONStore implements rara.CollectionStore at compile time.
var _ rara.CollectionStore = (*JSONStore)(nil)

// JSONStore persists collections as a single JSON object mapping stringified
// keys to records. Saves write to a temporary file that replaces the target
// on success, so a failed save leaves the previous snapshot intact.
type JSONStore struct{}

// NewJSONStore creates a new JSONStore.
func NewJSONStore() *JSONStore {
	return &JSONStore{}
}

// Save writes every record of c to path, keys in ascending order.
func (s *JSONStore) Save(ctx context.Context, c *rara.Collection, path string) error {
	if c == nil {
		return rara.Errorf(rara.EINVALID, "collection required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := MarshalCollection(c)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Load reads the snapshot at path. The next key handed out by the returned
// collection follows the highest key in the file.
func (s *JSONStore) Load(ctx context.Context, path string) (*rara.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, rara.Errorf(rara.ENOTFOUND, "no collection at %s", path)
	} else if err != nil {
		return nil, err
	}

	return UnmarshalCollection(data)
}

// MarshalCollection encodes c in the snapshot format.
func MarshalCollection(c *rara.Collection) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range c.Keys() {
		r, _ := c.Get(key)
		data, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encoding record %d: %w", key, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(key)))
		buf.WriteByte(':')
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalCollection decodes a snapshot. Keys must be non-negative decimal
// integers and every record must pass Validate.
func UnmarshalCollection(data []byte) (*rara.Collection, error) {
	var raw map[string]*rara.Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, rara.Errorf(rara.EINVALID, "invalid collection snapshot: %v", err)
	}

	records := make(map[int]*rara.Record, len(raw))
	for k, r := range raw {
		key, err := strconv.Atoi(k)
		if err != nil {
			return nil, rara.Errorf(rara.EINVALID, "collection key %q is not an integer", k)
		}
		if key < 0 {
			return nil, rara.Errorf(rara.EINVALID, "collection key %d is negative", key)
		}
		if r == nil {
			return nil, rara.Errorf(rara.EINVALID, "collection key %q has no record", k)
		}
		if err := r.Validate(); err != nil {
			return nil, rara.Errorf(rara.EINVALID, "collection key %d: %s", key, rara.ErrorMessage(err))
		}
		records[key] = r
	}

	c := rara.NewCollection()
	c.Restore(records)
	return c, nil
}
