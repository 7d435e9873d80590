// Package crawler implements the single-domain crawl engine: the URL
// frontier, the fetch fallback chain, the page classifier, the link and
// content extraction heuristics, and the controller that drives them.
package crawler

import (
	"errors"
	"fmt"
	"time"
)

// HardMaxPages is the ceiling no crawl may exceed regardless of configuration.
const HardMaxPages = 100

// Config holds the settings for one crawl session. It is immutable for the
// duration of the crawl.
type Config struct {
	SeedURL        string        `json:"seed_url" mapstructure:"seed_url"`
	MaxPages       int           `json:"max_pages" mapstructure:"max_pages"`
	MaxDepth       int           `json:"max_depth" mapstructure:"max_depth"`
	Delay          time.Duration `json:"delay" mapstructure:"delay"`
	RespectRobots  bool          `json:"respect_robots" mapstructure:"respect_robots"`
	UserAgent      string        `json:"-" mapstructure:"user_agent"`
	RequestTimeout time.Duration `json:"-" mapstructure:"request_timeout"`
	ProxyEndpoints []string      `json:"-" mapstructure:"proxy_endpoints"`
}

// ContentType labels what kind of material a page holds. Classification is an
// ordered first-match rule list; see RuleSet.ClassifyContent.
type ContentType string

// Known content types, in classification priority order.
const (
	ContentTypeBlog       ContentType = "blog"
	ContentTypeDocs       ContentType = "documentation"
	ContentTypeArticle    ContentType = "article"
	ContentTypeGuide      ContentType = "guide"
	ContentTypeTranscript ContentType = "transcript"
	ContentTypePodcast    ContentType = "podcast_transcript"
	ContentTypeOther      ContentType = "other"
)

// ExtractedItem is produced once per successfully processed content page and
// never mutated afterwards.
type ExtractedItem struct {
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	SourceURL   string      `json:"source_url"`
	Author      string      `json:"author,omitempty"`
	IdentityID  string      `json:"identity_id,omitempty"`
}

// Result is the aggregate outcome of a crawl. Items appear in extraction
// order.
type Result struct {
	TeamID string          `json:"team_id"`
	Items  []ExtractedItem `json:"items"`
}

// FrontierEntry is one unit of pending work.
type FrontierEntry struct {
	URL   string
	Depth int
}

// State tracks the controller's position in its lifecycle.
type State string

// Controller lifecycle states.
const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDraining State = "draining"
	StateCapped   State = "capped"
	StateDone     State = "done"
)

// ErrInvalidSeedURL indicates the seed URL could not be parsed or lacks an
// http(s) scheme; it aborts the crawl before any fetching starts.
var ErrInvalidSeedURL = errors.New("invalid seed url")

// ErrParseFailed indicates the HTML could not be parsed into a document.
var ErrParseFailed = errors.New("parse html")

// FetchError reports that every fetch strategy failed for one URL.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: all %d attempts failed: %v", e.URL, e.Attempts, e.Err)
}

// Unwrap exposes the last underlying attempt error.
func (e *FetchError) Unwrap() error {
	return e.Err
}
