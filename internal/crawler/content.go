package crawler

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t]+`)
	newlineRun = regexp.MustCompile(`\n{3,}`)
)

// ContentExtractor locates the primary content region of a page via the rule
// set's selector waterfall, cleans it, and builds an ExtractedItem.
type ContentExtractor struct {
	rules  *RuleSet
	logger *zap.Logger
}

// NewContentExtractor returns an extractor bound to a rule set.
func NewContentExtractor(rules *RuleSet, logger *zap.Logger) *ContentExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentExtractor{rules: rules, logger: logger}
}

// Extract parses html and returns an item, or nil when the page has no
// content worth keeping. A nil item with a nil error means the cleaned text
// fell below the minimum threshold; that is a skip, not a failure.
func (e *ContentExtractor) Extract(html, pageURL string) (*ExtractedItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	title := e.extractTitle(doc)
	content := e.locateContent(doc, pageURL, html)
	if len(content) < MinContentLength {
		e.logger.Debug("content below threshold",
			zap.String("url", pageURL),
			zap.Int("length", len(content)),
		)
		return nil, nil
	}
	if len(content) > MaxContentLength {
		content = truncateAtRune(content, MaxContentLength)
	}

	item := &ExtractedItem{
		Title:       title,
		Content:     content,
		ContentType: e.rules.ClassifyContent(pageURL, title, content),
		SourceURL:   pageURL,
	}

	if author := ExtractAuthor(doc, e.rules); author != "" {
		item.Author = author
		item.IdentityID = DeriveIdentity(author)
	}
	return item, nil
}

// extractTitle prefers the first h1, then the document title, then
// "Untitled".
func (e *ContentExtractor) extractTitle(doc *goquery.Document) string {
	if h1 := cleanText(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	if title := cleanText(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return "Untitled"
}

// locateContent walks the selector waterfall from most to least specific and
// accepts the first candidate whose cleaned text beats the fallback minimum.
// When no selector qualifies it tries readability extraction, and finally the
// full body with noise elements stripped.
func (e *ContentExtractor) locateContent(doc *goquery.Document, pageURL, rawHTML string) string {
	for _, selector := range e.rules.ContentSelectors {
		selection := doc.Find(selector).First()
		if selection.Length() == 0 {
			continue
		}
		cleaned := cleanText(selection.Text())
		if len(cleaned) >= MinFallbackLength {
			return cleaned
		}
	}

	if text := e.readabilityText(rawHTML, pageURL); len(text) >= MinFallbackLength {
		return text
	}

	stripped := goquery.CloneDocument(doc)
	body := stripped.Find("body")
	for _, selector := range e.rules.NoiseSelectors {
		body.Find(selector).Remove()
	}
	return cleanText(body.Text())
}

func (e *ContentExtractor) readabilityText(rawHTML, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), parsed)
	if err != nil {
		e.logger.Debug("readability extraction failed",
			zap.String("url", pageURL),
			zap.Error(err),
		)
		return ""
	}
	return cleanText(article.TextContent)
}

// cleanText collapses consecutive whitespace to single spaces and newline
// runs to paragraph breaks, then trims.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = newlineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// truncateAtRune cuts text to at most limit bytes without splitting a
// multi-byte rune.
func truncateAtRune(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}
