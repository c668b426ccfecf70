// Package http provides an HTTP-based implementation of rara.Fetcher.
package http

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/fwojciec/rara"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements rara.Fetcher at compile time.
var _ rara.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content using HTTP GET requests. Cookies set by the
// site persist across requests like a browser session, and every request
// carries a User-Agent picked at random from the configured pool.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	userAgents []string
	pick       func(n int) int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgents replaces the default User-Agent pool.
// An empty pool leaves the defaults in place.
func WithUserAgents(agents ...string) Option {
	return func(f *Fetcher) {
		if len(agents) > 0 {
			f.userAgents = agents
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		userAgents: DefaultUserAgents(),
		pick:       rand.IntN,
	}
	for _, opt := range opts {
		opt(f)
	}

	// cookiejar.New never returns an error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     jar,
	}

	return f
}

// Fetch retrieves the content at the given URL. Non-2xx responses return an
// ESTATUS error and transport failures an EFETCH error. A canceled or expired
// ctx returns the context's error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", rara.Errorf(rara.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", rara.Errorf(rara.EFETCH, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", rara.Errorf(rara.ESTATUS, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", rara.Errorf(rara.EFETCH, "reading %s: %v", url, err)
	}

	return string(body), nil
}

func (f *Fetcher) userAgent() string {
	return f.userAgents[f.pick(len(f.userAgents))]
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
