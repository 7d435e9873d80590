package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Mario263/OG-Tool/internal/identity"
)

// ExtractAuthor tries the rule set's author patterns in order: meta tags
// first, then author-classed elements, then a textual byline scan. It returns
// the first trimmed match, or "" when no pattern hits.
func ExtractAuthor(doc *goquery.Document, rules *RuleSet) string {
	for _, sel := range rules.AuthorMetaSelectors {
		selection := doc.Find(sel.Selector).First()
		if selection.Length() == 0 {
			continue
		}
		var value string
		if sel.Attr != "" {
			value, _ = selection.Attr(sel.Attr)
		} else {
			value = selection.Text()
		}
		value = cleanAuthor(value)
		if value != "" {
			return value
		}
	}

	if rules.BylinePattern != nil {
		if m := rules.BylinePattern.FindStringSubmatch(doc.Text()); len(m) > 1 {
			return cleanAuthor(m[1])
		}
	}
	return ""
}

// DeriveIdentity returns the stable fingerprint for an author string.
func DeriveIdentity(author string) string {
	return identity.Fingerprint(author)
}

// cleanAuthor trims whitespace and drops a leading "by " prefix left behind
// by byline elements.
func cleanAuthor(value string) string {
	value = strings.TrimSpace(value)
	lowered := strings.ToLower(value)
	if strings.HasPrefix(lowered, "by ") {
		value = strings.TrimSpace(value[3:])
	}
	if len(value) > 100 {
		return ""
	}
	return value
}
