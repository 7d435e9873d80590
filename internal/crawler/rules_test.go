package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestIsListingPage classifies section roots, pagination, and the site root
// as listings, and individual posts as content.
func TestIsListingPage(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	listings := []string{
		"https://example.com/",
		"https://example.com",
		"https://example.com/blog",
		"https://example.com/blog/",
		"https://example.com/news",
		"https://example.com/docs",
		"https://example.com/blog/2",
		"https://example.com/blog/page/3",
	}
	for _, u := range listings {
		require.True(t, rules.IsListingPage(u), "expected listing: %s", u)
	}

	content := []string{
		"https://example.com/blog/my-first-post",
		"https://example.com/2024/01/launch-day",
		"https://example.com/about",
		"https://example.com/guides/getting-started",
	}
	for _, u := range content {
		require.False(t, rules.IsListingPage(u), "expected non-listing: %s", u)
	}
}

// TestIsExcluded knocks out assets, admin surfaces, and non-http schemes.
func TestIsExcluded(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	excluded := []string{
		"https://example.com/logo.png",
		"https://example.com/logo.PNG",
		"https://example.com/styles.css?v=3",
		"https://example.com/api/v1/items",
		"https://example.com/admin/panel",
		"https://example.com/login",
		"https://example.com/tag/golang",
		"mailto:someone@example.com",
		"javascript:void(0)",
	}
	for _, u := range excluded {
		require.True(t, rules.IsExcluded(u), "expected excluded: %s", u)
	}

	require.False(t, rules.IsExcluded("https://example.com/blog/css-tricks"))
	require.False(t, rules.IsExcluded("https://example.com/blog/my-post"))
}

// TestMatchesContentShape recognizes date-stamped and slugged article URLs.
func TestMatchesContentShape(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	require.True(t, rules.MatchesContentShape("https://example.com/2024/03/big-news"))
	require.True(t, rules.MatchesContentShape("https://example.com/blog/my-post"))
	require.True(t, rules.MatchesContentShape("https://example.com/docs/guides/install"))
	require.False(t, rules.MatchesContentShape("https://example.com/about"))
	require.False(t, rules.MatchesContentShape("https://example.com/"))
}

// TestMatchesAffordance matches read-more style anchors case-insensitively.
func TestMatchesAffordance(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	require.True(t, rules.MatchesAffordance("Read More"))
	require.True(t, rules.MatchesAffordance("  continue reading →"))
	require.True(t, rules.MatchesAffordance("Read the full story"))
	require.False(t, rules.MatchesAffordance("Home"))
	require.False(t, rules.MatchesAffordance(""))
}

// TestClassifyContent exercises rule ordering: a blog token anywhere beats a
// later guide token, and the default is "other".
func TestClassifyContent(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	tests := []struct {
		name    string
		url     string
		title   string
		content string
		want    ContentType
	}{
		{"blog by url", "https://example.com/blog/post", "Post", "text", ContentTypeBlog},
		{"blog by title", "https://example.com/p/1", "Our Blog Update", "text", ContentTypeBlog},
		{"blog beats guide when both match", "https://example.com/blog/guide-to-go", "Guide", "text", ContentTypeBlog},
		{"docs", "https://example.com/docs/install", "Install", "text", ContentTypeDocs},
		{"documentation by title", "https://example.com/p/2", "API Documentation", "text", ContentTypeDocs},
		{"article", "https://example.com/article/one", "One", "text", ContentTypeArticle},
		{"guide", "https://example.com/guide/two", "Two", "text", ContentTypeGuide},
		{"transcript by content", "https://example.com/p/3", "Episode 4", "full transcript follows", ContentTypeTranscript},
		{"podcast path", "https://example.com/podcast/ep-4", "Episode 4", "text", ContentTypePodcast},
		{"default other", "https://example.com/about", "About Us", "text", ContentTypeOther},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, rules.ClassifyContent(tc.url, tc.title, tc.content))
		})
	}
}
