package goquery

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rara"
)

// UniversalMarker is the title prefix of articles describing a universal
// rather than a rarity. Its entity keeps this exact spelling.
const UniversalMarker = "Universal"

// Default selectors for article pages.
const (
	DefaultTitleSelector       = "h1.post-title"
	DefaultBodySelector        = "div.post-content"
	DefaultBodyHeadingSelector = "h3"
	DefinitionListSelector     = "dl"
)

// bodyLabelSeparator splits the "Label: text" body heading.
const bodyLabelSeparator = ": "

// Ensure RecordExtractor implements rara.RecordExtractor at compile time.
var _ rara.RecordExtractor = (*RecordExtractor)(nil)

// RecordExtractor turns article pages into records.
type RecordExtractor struct {
	titleSelector string
	bodySelector  string
}

// RecordOption configures a RecordExtractor.
type RecordOption func(*RecordExtractor)

// WithTitleSelector overrides the selector of the title heading.
func WithTitleSelector(selector string) RecordOption {
	return func(e *RecordExtractor) {
		e.titleSelector = selector
	}
}

// WithBodySelector overrides the selector of the body container.
func WithBodySelector(selector string) RecordOption {
	return func(e *RecordExtractor) {
		e.bodySelector = selector
	}
}

// NewRecordExtractor creates a new RecordExtractor.
func NewRecordExtractor(opts ...RecordOption) *RecordExtractor {
	e := &RecordExtractor{
		titleSelector: DefaultTitleSelector,
		bodySelector:  DefaultBodySelector,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractRecord parses an article page into a record.
func (e *RecordExtractor) ExtractRecord(html string, pageURL string) (*rara.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, rara.Errorf(rara.EEXTRACT, "failed to parse HTML: %v", err)
	}

	title := doc.Find(e.titleSelector).First()
	if title.Length() == 0 {
		return nil, rara.Errorf(rara.EEXTRACT, "no title heading on %s", pageURL)
	}
	entity, id, err := ParseTitle(title.Text())
	if err != nil {
		return nil, err
	}

	heading := doc.Find(e.bodySelector).First().Find(DefaultBodyHeadingSelector).First()
	if heading.Length() == 0 {
		return nil, rara.Errorf(rara.EEXTRACT, "no body heading on %s", pageURL)
	}

	r := &rara.Record{
		URL:    pageURL,
		Entity: entity,
		ID:     id,
		Text:   ParseBodyText(heading.Text()),
	}

	doc.Find(DefinitionListSelector).Each(func(_ int, dl *goquery.Selection) {
		extractAttributes(dl, r)
	})

	return r, nil
}

// ParseTitle splits an article title into its entity and numeric id.
//
// "Universal 7:" yields ("Universal", 7): the marker is kept verbatim and
// trailing punctuation is stripped from the id. Any other title yields the
// lowercased words before the last token and the last token as id, so
// "Rarity 42" yields ("rarity", 42).
func ParseTitle(title string) (entity string, id int, err error) {
	tokens := strings.Fields(title)
	if len(tokens) == 0 {
		return "", 0, rara.Errorf(rara.EEXTRACT, "empty title")
	}

	var idToken string
	if tokens[0] == UniversalMarker {
		if len(tokens) < 2 {
			return "", 0, rara.Errorf(rara.EEXTRACT, "title %q has no id", title)
		}
		entity = UniversalMarker
		idToken = strings.TrimRightFunc(tokens[1], unicode.IsPunct)
	} else {
		entity = strings.ToLower(strings.Join(tokens[:len(tokens)-1], " "))
		idToken = tokens[len(tokens)-1]
	}

	id, err = strconv.Atoi(idToken)
	if err != nil {
		return "", 0, rara.Errorf(rara.EEXTRACT, "title %q: id %q is not an integer", title, idToken)
	}
	if id < 0 {
		return "", 0, rara.Errorf(rara.EEXTRACT, "title %q: id %d is negative", title, id)
	}
	return entity, id, nil
}

// ParseBodyText drops the leading "Label: " fragment of the body heading and
// returns the rest. Later separators are kept. A heading without a separator
// has no body text.
func ParseBodyText(heading string) string {
	parts := strings.Split(heading, bodyLabelSeparator)
	return strings.TrimSpace(strings.Join(parts[1:], bodyLabelSeparator))
}

// AttributeKey lowercases a definition term and joins its words with
// underscores: "Universals violated" becomes "universals_violated".
func AttributeKey(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), "_")
}

// extractAttributes walks the term/definition pairs of one definition list.
// A term not directly followed by a definition is skipped.
func extractAttributes(dl *goquery.Selection, r *rara.Record) {
	dl.ChildrenFiltered("dt").Each(func(_ int, dt *goquery.Selection) {
		dd := dt.Next()
		if !dd.Is("dd") {
			return
		}
		key := AttributeKey(dt.Text())
		if key == "" {
			return
		}
		r.SetAttr(key, attributeValue(key, dd))
	})
}

func attributeValue(key string, dd *goquery.Selection) string {
	if key != rara.AttrUniversalsViolated {
		return strings.TrimSpace(dd.Text())
	}
	var hrefs []string
	dd.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		hrefs = append(hrefs, href)
	})
	return strings.Join(hrefs, ", ")
}
