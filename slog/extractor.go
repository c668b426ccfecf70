package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/rara"
)

// Ensure LoggingRecordExtractor implements rara.RecordExtractor.
var _ rara.RecordExtractor = (*LoggingRecordExtractor)(nil)

// LoggingRecordExtractor wraps a RecordExtractor with debug logging.
type LoggingRecordExtractor struct {
	next   rara.RecordExtractor
	logger *slog.Logger
}

// NewLoggingRecordExtractor creates a new LoggingRecordExtractor.
func NewLoggingRecordExtractor(next rara.RecordExtractor, logger *slog.Logger) *LoggingRecordExtractor {
	return &LoggingRecordExtractor{next: next, logger: logger}
}

// ExtractRecord delegates to the wrapped extractor and logs the entity and id
// it found.
func (e *LoggingRecordExtractor) ExtractRecord(html string, pageURL string) (r *rara.Record, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", pageURL}
		if r != nil {
			attrs = append(attrs, "entity", r.Entity, "id", r.ID, "attributes", r.Attrs.Len())
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.ExtractRecord(html, pageURL)
}
