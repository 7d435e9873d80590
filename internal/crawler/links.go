package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// LinkExtractor harvests same-domain, content-relevant links from a page.
type LinkExtractor struct {
	rules  *RuleSet
	logger *zap.Logger
}

// NewLinkExtractor returns an extractor bound to a rule set.
func NewLinkExtractor(rules *RuleSet, logger *zap.Logger) *LinkExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkExtractor{rules: rules, logger: logger}
}

// Extract parses anchors from html, resolves each href against baseURL, and
// keeps a link only if it stays inside domain and survives the exclusion
// patterns. When fromListing is set a link must additionally match a content
// URL shape or carry an affordance anchor text ("read more" and friends),
// since listing pages link to plenty of chrome. Malformed hrefs are silently
// skipped and the output is deduplicated, preserving document order.
func (e *LinkExtractor) Extract(html, baseURL, domain string, fromListing bool) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		resolved, parseErr := base.Parse(href)
		if parseErr != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		// URLs are deduped and enqueued fragment-free; only fragment-only
		// hrefs are rejected outright.
		resolved.Fragment = ""

		absolute := resolved.String()
		if !InDomain(resolved.Hostname(), domain) {
			return
		}
		if e.rules.IsExcluded(absolute) {
			return
		}
		if fromListing &&
			!e.rules.MatchesContentShape(absolute) &&
			!e.rules.MatchesAffordance(anchor.Text()) {
			return
		}

		key, normErr := NormalizeURL(absolute)
		if normErr != nil {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		links = append(links, absolute)
	})

	e.logger.Debug("extracted links",
		zap.String("base", baseURL),
		zap.Bool("from_listing", fromListing),
		zap.Int("count", len(links)),
	)
	return links, nil
}
