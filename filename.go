package rara

import (
	"strings"
	"time"
)

// DefaultFilenamePrefix starts every generated filename.
const DefaultFilenamePrefix = "crawled-"

// filenameTimeLayout renders timestamps like 2024-Mar-05_14_03_59.
const filenameTimeLayout = "2006-Jan-02_15_04_05"

// NormalizeFilename returns name with ext appended when missing. An empty
// name becomes a timestamped default taken from now.
func NormalizeFilename(name, ext string, now func() time.Time) string {
	if name == "" {
		if now == nil {
			now = time.Now
		}
		return DefaultFilenamePrefix + now().Format(filenameTimeLayout) + ext
	}
	if !strings.HasSuffix(name, ext) {
		return name + ext
	}
	return name
}
