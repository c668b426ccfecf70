package rara

import (
	"maps"
	"slices"
)

// Collection is an ordered, integer-keyed store of records.
//
// Keys come from an internal counter that always sits one past the highest
// key handed out so far, so the first key is 0 and no key is reused. Records
// merged in with Combine continue directly after the highest key.
// The zero value is an empty collection ready to use.
type Collection struct {
	records map[int]*Record
	next    int
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{records: make(map[int]*Record)}
}

// Append stores r under the next key, advances the counter and returns the
// key used.
func (c *Collection) Append(r *Record) int {
	if c.records == nil {
		c.records = make(map[int]*Record)
	}
	key := c.next
	c.records[key] = r
	c.next++
	return key
}

// Combine appends every record of other, in other's key order, starting at
// the key after the current highest key. The counter advances by the number
// of records appended. Combining a collection with itself duplicates its
// records.
func (c *Collection) Combine(other *Collection) error {
	if other == nil {
		return Errorf(EINVALID, "cannot combine with a nil collection")
	}
	for _, r := range other.Records() {
		c.Append(r)
	}
	return nil
}

// Size returns the highest key plus one. It equals the number of records
// only while keys are contiguous from zero; collections restored from files
// with gaps in their keys report more than Len.
func (c *Collection) Size() int {
	return c.next
}

// Len returns the number of stored records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Get returns the record stored under key.
func (c *Collection) Get(key int) (*Record, bool) {
	r, ok := c.records[key]
	return r, ok
}

// Keys returns all keys in ascending order.
func (c *Collection) Keys() []int {
	return slices.Sorted(maps.Keys(c.records))
}

// Records returns all records in key order.
func (c *Collection) Records() []*Record {
	keys := c.Keys()
	records := make([]*Record, 0, len(keys))
	for _, key := range keys {
		records = append(records, c.records[key])
	}
	return records
}

// Restore replaces the contents of c with records. The next key handed out
// follows the highest key present.
func (c *Collection) Restore(records map[int]*Record) {
	c.records = make(map[int]*Record, len(records))
	c.next = 0
	for key, r := range records {
		c.records[key] = r
		if key >= c.next {
			c.next = key + 1
		}
	}
}
