package crawler

import (
	"net/url"
	"regexp"
	"strings"
)

// Extraction thresholds. Content pages are expected to be substantial, so
// their minimum is stricter than the fallback minimum used while walking the
// selector waterfall.
const (
	MinContentLength  = 200
	MinFallbackLength = 100
	MaxContentLength  = 10000
)

// ContentTypeRule maps a token found in the URL, title, or content to a
// ContentType. Rules are evaluated in order; the first match wins.
type ContentTypeRule struct {
	Type ContentType
	// URLOrTitle tokens match against the lowercased URL or title.
	URLOrTitle []string
	// Content tokens match against the lowercased content body.
	Content []string
}

// RuleSet parameterizes the crawl heuristics: which URL shapes are listing
// pages, which links are worth following, where page content lives, and how
// pages are classified. A single engine consumes these tables instead of
// duplicating control flow per site.
type RuleSet struct {
	// ListingPatterns match URL paths whose primary value is links to other
	// pages (section roots and their paginated forms).
	ListingPatterns []*regexp.Regexp
	// ExclusionPatterns knock out links that never hold extractable content.
	ExclusionPatterns []*regexp.Regexp
	// ContentShapePatterns match URL paths that look like individual
	// articles (date-stamped or slug segments under known content roots).
	ContentShapePatterns []*regexp.Regexp
	// AffordancePhrases are anchor texts that signal a link to a full
	// article regardless of its URL shape.
	AffordancePhrases []string
	// ContentSelectors is the waterfall tried from most to least specific
	// when locating the primary content region.
	ContentSelectors []string
	// NoiseSelectors are stripped before falling back to the full body.
	NoiseSelectors []string
	// ContentTypeRules is the ordered classification list.
	ContentTypeRules []ContentTypeRule
	// AuthorMetaSelectors are tried in order before the textual byline scan.
	AuthorMetaSelectors []AuthorSelector
	// BylinePattern captures "By FirstName LastName" from page text.
	BylinePattern *regexp.Regexp
}

// AuthorSelector pairs a goquery selector with the attribute holding the
// author value; an empty Attr means the element text is used.
type AuthorSelector struct {
	Selector string
	Attr     string
}

// DefaultRules returns the rule tables used for general-purpose sites.
func DefaultRules() *RuleSet {
	return &RuleSet{
		ListingPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^/(blog|news|articles|posts|guides|docs|resources|podcast|learn)$`),
			regexp.MustCompile(`^/(blog|news|articles|posts|guides|docs|resources|podcast|learn)/(page/)?\d+$`),
			regexp.MustCompile(`^/$`),
		},
		ExclusionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\.(jpe?g|png|gif|svg|webp|ico|css|js|json|xml|pdf|zip|gz|tar|mp3|mp4|woff2?)(\?|$)`),
			regexp.MustCompile(`/api/`),
			regexp.MustCompile(`/admin/`),
			regexp.MustCompile(`/(login|logout|register|signin|signup|auth|account)(/|$)`),
			regexp.MustCompile(`/(search|tag|tags|category|categories|archive)(/|$)`),
			regexp.MustCompile(`^mailto:|^tel:|^javascript:`),
		},
		ContentShapePatterns: []*regexp.Regexp{
			regexp.MustCompile(`/\d{4}/\d{2}/[^/]+`),
			regexp.MustCompile(`/(blog|news|articles|posts|guides|docs|resources|podcast|learn)/[^/]+[^/]$`),
			regexp.MustCompile(`/(blog|news|articles|posts|guides|docs|resources|podcast|learn)/.+/[^/]+$`),
		},
		AffordancePhrases: []string{
			"read more",
			"continue reading",
			"full article",
			"read article",
			"read the full",
			"view post",
			"learn more",
		},
		ContentSelectors: []string{
			"article",
			"[role=main]",
			"main",
			".post-content",
			".entry-content",
			".article-content",
			".article-body",
			".blog-post",
			".post",
			".content",
			"#content",
			".main-content",
		},
		NoiseSelectors: []string{
			"script",
			"style",
			"noscript",
			"nav",
			"header",
			"footer",
			"aside",
			"form",
			"iframe",
			".nav",
			".navbar",
			".menu",
			".sidebar",
			".ad",
			".ads",
			".advertisement",
			".promo",
			".newsletter",
			".social",
			".share",
			".comments",
			"#comments",
			".related",
			".cookie",
		},
		ContentTypeRules: []ContentTypeRule{
			{Type: ContentTypeBlog, URLOrTitle: []string{"blog"}},
			{Type: ContentTypeDocs, URLOrTitle: []string{"/docs/", "documentation"}},
			{Type: ContentTypeArticle, URLOrTitle: []string{"/article/", "article"}},
			{Type: ContentTypeGuide, URLOrTitle: []string{"/guide/", "guide"}},
			{Type: ContentTypeTranscript, Content: []string{"transcript"}},
			{Type: ContentTypePodcast, URLOrTitle: []string{"/podcast/"}},
		},
		AuthorMetaSelectors: []AuthorSelector{
			{Selector: `meta[name="author"]`, Attr: "content"},
			{Selector: `meta[property="article:author"]`, Attr: "content"},
			{Selector: `[class*="author"]`},
			{Selector: `[rel="author"]`},
		},
		BylinePattern: regexp.MustCompile(`[Bb]y\s+([A-Z][a-zA-Z'-]+(?:\s+[A-Z][a-zA-Z'-]+){1,2})`),
	}
}

// IsListingPage classifies a URL by shape: listing pages link to other pages
// and never yield an item directly.
func (r *RuleSet) IsListingPage(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.TrimSuffix(u.Path, "/")
	if path == "" {
		path = "/"
	}
	for _, pattern := range r.ListingPatterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether a link matches any exclusion pattern.
func (r *RuleSet) IsExcluded(rawURL string) bool {
	lowered := strings.ToLower(rawURL)
	for _, pattern := range r.ExclusionPatterns {
		if pattern.MatchString(lowered) {
			return true
		}
	}
	return false
}

// MatchesContentShape reports whether a URL path looks like an individual
// article.
func (r *RuleSet) MatchesContentShape(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	for _, pattern := range r.ContentShapePatterns {
		if pattern.MatchString(u.Path) {
			return true
		}
	}
	return false
}

// MatchesAffordance reports whether anchor text signals a link to a full
// article ("read more" and friends).
func (r *RuleSet) MatchesAffordance(anchorText string) bool {
	lowered := strings.ToLower(strings.TrimSpace(anchorText))
	if lowered == "" {
		return false
	}
	for _, phrase := range r.AffordancePhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// ClassifyContent runs the ordered content-type rule list over the lowercased
// url, title, and content. The ordering is part of the contract: the first
// matching rule wins.
func (r *RuleSet) ClassifyContent(rawURL, title, content string) ContentType {
	loweredURL := strings.ToLower(rawURL)
	loweredTitle := strings.ToLower(title)
	loweredContent := strings.ToLower(content)
	for _, rule := range r.ContentTypeRules {
		for _, token := range rule.URLOrTitle {
			if strings.Contains(loweredURL, token) || strings.Contains(loweredTitle, token) {
				return rule.Type
			}
		}
		for _, token := range rule.Content {
			if strings.Contains(loweredContent, token) {
				return rule.Type
			}
		}
	}
	return ContentTypeOther
}
