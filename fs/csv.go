package fs

import (
	"encoding/csv"
	"io"
	"unicode/utf8"

	"github.com/fwojciec/rara"
)

// Ensure CSVExporter implements rara.Exporter at compile time.
var _ rara.Exporter = (*CSVExporter)(nil)

// CSVExporter flattens a collection into a table with one row per record and
// one column per record key. Keys appear in the order they are first seen;
// the collection key index is not written.
type CSVExporter struct {
	sep rune
}

// NewCSVExporter creates a CSVExporter using sep as field separator.
// A zero or invalid separator falls back to a comma.
func NewCSVExporter(sep rune) *CSVExporter {
	if sep == 0 || sep == '"' || sep == '\r' || sep == '\n' || sep == utf8.RuneError {
		sep = ','
	}
	return &CSVExporter{sep: sep}
}

// Export writes the header and rows of c to w.
func (e *CSVExporter) Export(w io.Writer, c *rara.Collection) error {
	records := c.Records()
	columns := Columns(records)

	cw := csv.NewWriter(w)
	cw.Comma = e.sep

	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, r := range records {
		for i, col := range columns {
			row[i], _ = r.Get(col)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Columns returns the union of record keys in first-seen order. The required
// keys always come first.
func Columns(records []*rara.Record) []string {
	columns := rara.RequiredKeys()
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		seen[col] = true
	}
	for _, r := range records {
		for _, key := range r.Attrs.Keys() {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	return columns
}
