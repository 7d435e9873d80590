package export

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/Mario263/OG-Tool/internal/crawler"
)

// csvHeader is the fixed column order for CSV exports.
var csvHeader = []string{"team_id", "title", "content_type", "source_url", "author", "user_id", "content"}

// CSVWriter outputs results as RFC 4180 CSV, one row per extracted item.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write serializes the result as CSV with a header row.
func (w *CSVWriter) Write(result *crawler.Result) (int, error) {
	if err := Validate(result); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, item := range result.Items {
		row := []string{
			result.TeamID,
			item.Title,
			string(item.ContentType),
			item.SourceURL,
			item.Author,
			item.IdentityID,
			item.Content,
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
