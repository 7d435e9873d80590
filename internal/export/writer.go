// Package export writes crawl results to files in JSON, CSV and
// Markdown formats.
package export

import (
	"fmt"
	"io"

	"github.com/Mario263/OG-Tool/internal/crawler"
)

// Writer outputs a crawl result in some serialization format.
type Writer interface {
	// Write serializes the result to the underlying output and returns
	// the number of bytes written.
	Write(result *crawler.Result) (int, error)
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Validate checks that a result is complete enough to export. Every item
// must carry a title, content, source URL and content type.
func Validate(result *crawler.Result) error {
	if result == nil {
		return fmt.Errorf("export: nil result")
	}
	if result.TeamID == "" {
		return fmt.Errorf("export: missing team_id")
	}
	for i, item := range result.Items {
		if item.Title == "" {
			return fmt.Errorf("export: item %d: missing title", i)
		}
		if item.Content == "" {
			return fmt.Errorf("export: item %d: missing content", i)
		}
		if item.SourceURL == "" {
			return fmt.Errorf("export: item %d: missing source_url", i)
		}
		if item.ContentType == "" {
			return fmt.Errorf("export: item %d: missing content_type", i)
		}
	}
	return nil
}
