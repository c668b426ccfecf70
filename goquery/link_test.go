package goquery_test

import (
	"testing"

	"github.com/fwojciec/rara/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("returns read more links in document order", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<article>
	<h2><a href="https://example.com/rara/archive/3/">Rarity 3</a></h2>
	<a class="more-link" href="https://example.com/rara/archive/3/">Read more</a>
</article>
<article>
	<a class="more-link" href="https://example.com/rara/archive/1/">Read more</a>
</article>
<article>
	<a class="btn more-link" href="https://example.com/rara/archive/2/">Read more</a>
</article>
<a class="next" href="/page/2/">Next</a>
</body>
</html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/rara/page/1/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/rara/archive/3/",
			"https://example.com/rara/archive/1/",
			"https://example.com/rara/archive/2/",
		}, links)
	})

	t.Run("resolves relative links against base URL", func(t *testing.T) {
		t.Parallel()

		html := `<a class="more-link" href="/rara/archive/9/">Read more</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/rara/page/1/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/rara/archive/9/"}, links)
	})

	t.Run("keeps hrefs as-is without base URL", func(t *testing.T) {
		t.Parallel()

		html := `<a class="more-link" href="/rara/archive/9/">Read more</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "")

		require.NoError(t, err)
		assert.Equal(t, []string{"/rara/archive/9/"}, links)
	})

	t.Run("skips anchors without href", func(t *testing.T) {
		t.Parallel()

		html := `<a class="more-link">Read more</a><a class="more-link" href=" ">x</a><a class="more-link" href="https://example.com/a">y</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a"}, links)
	})

	t.Run("returns empty slice when page has no markers", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewLinkExtractor().ExtractLinks("", "https://example.com/")

		require.NoError(t, err)
		assert.NotNil(t, links)
		assert.Empty(t, links)
	})

	t.Run("honors custom selector", func(t *testing.T) {
		t.Parallel()

		html := `<a class="more-link" href="/a">a</a><a class="read-on" href="/b">b</a>`

		links, err := goquery.NewLinkExtractor(goquery.WithLinkSelector("a.read-on")).ExtractLinks(html, "")

		require.NoError(t, err)
		assert.Equal(t, []string{"/b"}, links)
	})
}
