package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/Mario263/OG-Tool/internal/crawler"
)

// summaryExcerptLen bounds the content preview shown in the item table.
const summaryExcerptLen = 120

// MarkdownWriter outputs results as a human-readable Markdown report with
// a summary table followed by one section per extracted item.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write serializes the result as Markdown.
func (w *MarkdownWriter) Write(result *crawler.Result) (int, error) {
	if err := Validate(result); err != nil {
		return 0, err
	}

	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Report: " + result.TeamID)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Team", "`" + result.TeamID + "`"},
			{"Items", strconv.Itoa(len(result.Items))},
		},
	})
	md.PlainText("")

	if len(result.Items) > 0 {
		md.H2("Items")
		md.PlainText("")
		rows := make([][]string, 0, len(result.Items))
		for _, item := range result.Items {
			rows = append(rows, []string{
				item.Title,
				string(item.ContentType),
				item.SourceURL,
				authorCell(item),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Title", "Type", "Source", "Author"},
			Rows:   rows,
		})
		md.PlainText("")

		for _, item := range result.Items {
			md.H2(item.Title)
			md.PlainText("")
			md.BulletList(
				"Type: "+string(item.ContentType),
				"Source: "+item.SourceURL,
				"Author: "+authorCell(item),
			)
			md.PlainText("")
			md.PlainText(excerpt(item.Content))
			md.PlainText("")
		}
	}

	return len(md.String()), md.Build()
}

func authorCell(item crawler.ExtractedItem) string {
	if item.Author == "" {
		return "unknown"
	}
	return item.Author + " (" + item.IdentityID + ")"
}

// excerpt collapses whitespace and truncates long content for display.
func excerpt(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	if len(flat) <= summaryExcerptLen {
		return flat
	}
	return flat[:summaryExcerptLen] + "..."
}
