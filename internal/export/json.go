package export

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/Mario263/OG-Tool/internal/crawler"
)

// JSONWriter outputs results as pretty-printed JSON. This is the primary
// interchange format and matches the shape returned by the HTTP API.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write serializes the result as indented JSON with a trailing newline.
func (w *JSONWriter) Write(result *crawler.Result) (int, error) {
	if err := Validate(result); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
