// Package crawl provides the pagination crawl of a rarities archive.
// It coordinates listing-page fetches, link extraction, article fetches and
// record extraction, and accumulates records into a rara.Session.
package crawl

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/rara"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the paginated listing of the Raritätenkabinett.
const DefaultBaseURL = "https://typo.uni-konstanz.de/rara/category/raritaetenkabinett/page/"

// Crawler walks listing pages and turns every linked article into a record.
type Crawler struct {
	Fetcher     rara.Fetcher
	Links       rara.LinkExtractor
	Records     rara.RecordExtractor
	Concurrency int
	RetryDelays []time.Duration

	// Logger, if set, receives one line per fetch retry.
	Logger LogFunc
}

// State is a stage of the crawl.
type State int

const (
	StateIdle State = iota
	StatePaginating
	StateListing
	StateExtracting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePaginating:
		return "paginating"
	case StateListing:
		return "listing"
	case StateExtracting:
		return "extracting"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Pages  int
	Links  int
	Saved  int
	Failed int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	State     State
	Page      int
	Pages     int
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressPageStarted ProgressType = iota
	ProgressLinksFound
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// linkResult holds the outcome of processing a single article URL.
type linkResult struct {
	url    string
	record *rara.Record
	op     string
	err    error
}

// PageURL returns the listing URL of page n under base: base with a trailing
// slash, the page number, and a closing slash.
func PageURL(base string, n int) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strconv.Itoa(n) + "/"
}

// Crawl processes listing pages 1 through pages of baseURL and appends every
// extracted record to the session's collection. Per-item failures go to the
// session's error log and never stop the crawl. Canceling ctx stops the crawl
// between pages; records collected so far stay in the session.
func (c *Crawler) Crawl(ctx context.Context, session *rara.Session, baseURL string, pages int, progress ProgressFunc) (*Result, error) {
	if session == nil {
		return nil, rara.Errorf(rara.EINVALID, "crawl session required")
	}
	if pages < 0 {
		return nil, rara.Errorf(rara.EINVALID, "page count must be non-negative, got %d", pages)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	emit := func(event ProgressEvent) {
		if progress != nil {
			event.Pages = pages
			progress(event)
		}
	}

	var result Result
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return &result, err
		}

		pageURL := PageURL(baseURL, page)
		emit(ProgressEvent{Type: ProgressPageStarted, State: StatePaginating, Page: page, URL: pageURL})

		links, op, err := c.listLinks(ctx, pageURL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return &result, ctxErr
			}
			session.Errors.Add(pageURL, op, err)
			result.Failed++
			emit(ProgressEvent{Type: ProgressFailed, State: StateListing, Page: page, URL: pageURL, Error: err})
			continue
		}
		result.Pages++
		result.Links += len(links)
		emit(ProgressEvent{Type: ProgressLinksFound, State: StateListing, Page: page, URL: pageURL, Total: len(links)})

		for i, res := range c.processLinks(ctx, links) {
			event := ProgressEvent{State: StateExtracting, Page: page, URL: res.url, Completed: i + 1, Total: len(links)}
			if res.err != nil {
				if ctx.Err() != nil {
					continue
				}
				session.Errors.Add(res.url, res.op, res.err)
				result.Failed++
				event.Type = ProgressFailed
				event.Error = res.err
			} else {
				session.Collection.Append(res.record)
				result.Saved++
				event.Type = ProgressCompleted
			}
			emit(event)
		}
	}

	if err := ctx.Err(); err != nil {
		return &result, err
	}

	emit(ProgressEvent{Type: ProgressFinished, State: StateDone, Completed: result.Saved})
	return &result, nil
}

// listLinks fetches a listing page and returns its article links. On failure
// it also reports which operation failed.
func (c *Crawler) listLinks(ctx context.Context, pageURL string) ([]string, string, error) {
	html, err := c.fetch(ctx, pageURL)
	if err != nil {
		return nil, rara.OpFetch, err
	}
	links, err := c.Links.ExtractLinks(html, pageURL)
	if err != nil {
		return nil, rara.OpExtract, err
	}
	return links, "", nil
}

// processLinks fetches and extracts every link with at most Concurrency
// requests in flight. Results keep the order of links.
func (c *Crawler) processLinks(ctx context.Context, links []string) []linkResult {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]linkResult, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, link := range links {
		g.Go(func() error {
			results[i] = c.processLink(gctx, link)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// processLink fetches and extracts a single article.
func (c *Crawler) processLink(ctx context.Context, link string) linkResult {
	result := linkResult{url: link}

	html, err := c.fetch(ctx, link)
	if err != nil {
		result.op = rara.OpFetch
		result.err = err
		return result
	}

	record, err := c.Records.ExtractRecord(html, link)
	if err != nil {
		result.op = rara.OpExtract
		result.err = err
		return result
	}

	result.record = record
	return result
}

func (c *Crawler) fetch(ctx context.Context, url string) (string, error) {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, url, c.Fetcher.Fetch, c.Logger, delays)
}
