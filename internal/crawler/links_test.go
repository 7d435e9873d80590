package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLinkExtractorListingMode requires content-shaped URLs or read-more
// anchors when harvesting from a listing page.
func TestLinkExtractorListingMode(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/blog/first-post">First Post</a>
		<a href="/blog/second-post">Second Post</a>
		<a href="/p/teaser">Read More</a>
		<a href="/about">About</a>
		<a href="https://other.net/blog/external">External</a>
		<a href="/assets/logo.png">Logo</a>
	</body></html>`

	extractor := NewLinkExtractor(DefaultRules(), nil)
	links, err := extractor.Extract(html, "https://example.com/blog", "example.com", true)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://example.com/blog/first-post",
		"https://example.com/blog/second-post",
		"https://example.com/p/teaser",
	}, links)
}

// TestLinkExtractorContentMode keeps any in-domain, non-excluded link from a
// content page regardless of its shape.
func TestLinkExtractorContentMode(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/about">About</a>
		<a href="/blog/related-post">Related</a>
		<a href="mailto:team@example.com">Mail</a>
	</body></html>`

	extractor := NewLinkExtractor(DefaultRules(), nil)
	links, err := extractor.Extract(html, "https://example.com/blog/post", "example.com", false)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://example.com/about",
		"https://example.com/blog/related-post",
	}, links)
}

// TestLinkExtractorFragments drops fragment-only links and strips fragments
// from real ones, deduplicating the results.
func TestLinkExtractorFragments(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="#section">Jump</a>
		<a href="/blog/post-a#top">Post A</a>
		<a href="/blog/post-a#bottom">Post A again</a>
		<a href="/blog/post-a">Post A plain</a>
	</body></html>`

	extractor := NewLinkExtractor(DefaultRules(), nil)
	links, err := extractor.Extract(html, "https://example.com/blog", "example.com", true)
	require.NoError(t, err)
	require.Equal(t, []string{"https://example.com/blog/post-a"}, links)
}

// TestLinkExtractorRelativeResolution resolves relative hrefs against the
// page URL.
func TestLinkExtractorRelativeResolution(t *testing.T) {
	t.Parallel()

	html := `<a href="deep-dive">Read more</a>`

	extractor := NewLinkExtractor(DefaultRules(), nil)
	links, err := extractor.Extract(html, "https://example.com/blog/", "example.com", true)
	require.NoError(t, err)
	require.Equal(t, []string{"https://example.com/blog/deep-dive"}, links)
}

// TestLinkExtractorSubdomains keeps subdomain links inside the crawl domain.
func TestLinkExtractorSubdomains(t *testing.T) {
	t.Parallel()

	html := `<a href="https://docs.example.com/docs/setup/install">Install</a>`

	extractor := NewLinkExtractor(DefaultRules(), nil)
	links, err := extractor.Extract(html, "https://example.com/", "example.com", true)
	require.NoError(t, err)
	require.Equal(t, []string{"https://docs.example.com/docs/setup/install"}, links)
}
