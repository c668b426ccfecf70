package rara

// LinkExtractor finds article links on a listing page.
type LinkExtractor interface {
	// ExtractLinks returns the article URLs referenced by the listing page
	// in document order. Relative links resolve against baseURL.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// RecordExtractor turns an article page into a Record.
type RecordExtractor interface {
	// ExtractRecord parses the article page fetched from pageURL.
	// Returns EEXTRACT if the page is missing its title or body heading,
	// or if the title does not end in an integer id.
	ExtractRecord(html string, pageURL string) (*Record, error)
}
