// Package goquery implements rara's link and record extractors on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rara"
)

// DefaultMoreLinkSelector matches the "read more" anchors on listing pages.
const DefaultMoreLinkSelector = "a.more-link"

// Ensure LinkExtractor implements rara.LinkExtractor at compile time.
var _ rara.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns the article links of a listing page.
type LinkExtractor struct {
	selector string
}

// LinkOption configures a LinkExtractor.
type LinkOption func(*LinkExtractor)

// WithLinkSelector overrides the CSS selector used to find article links.
func WithLinkSelector(selector string) LinkOption {
	return func(e *LinkExtractor) {
		e.selector = selector
	}
}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor(opts ...LinkOption) *LinkExtractor {
	e := &LinkExtractor{selector: DefaultMoreLinkSelector}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractLinks returns the href of every matching anchor in document order.
// Relative hrefs resolve against baseURL when it parses; anchors without an
// href are skipped.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, rara.Errorf(rara.EEXTRACT, "failed to parse HTML: %v", err)
	}

	var base *url.URL
	if baseURL != "" {
		if base, err = url.Parse(baseURL); err != nil {
			return nil, rara.Errorf(rara.EINVALID, "invalid base URL: %v", err)
		}
	}

	links := []string{}
	doc.Find(e.selector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		links = append(links, resolveURL(base, href))
	})

	return links, nil
}

// resolveURL resolves href against base. Unparseable hrefs and a nil base
// leave href unchanged.
func resolveURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
