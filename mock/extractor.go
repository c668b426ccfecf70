package mock

import "github.com/fwojciec/rara"

// Compile-time interface verification.
var (
	_ rara.LinkExtractor   = (*LinkExtractor)(nil)
	_ rara.RecordExtractor = (*RecordExtractor)(nil)
)

// LinkExtractor is a mock implementation of rara.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}

// RecordExtractor is a mock implementation of rara.RecordExtractor.
type RecordExtractor struct {
	ExtractRecordFn func(html string, pageURL string) (*rara.Record, error)
}

func (e *RecordExtractor) ExtractRecord(html string, pageURL string) (*rara.Record, error) {
	return e.ExtractRecordFn(html, pageURL)
}
