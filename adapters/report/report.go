// Package report renders result tables as Markdown or HTML documents.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"py50/domain/stats"
	"py50/internal/errors"
)

// SymbolColumn is the column added for significance symbols
const SymbolColumn = "significance"

// Section is one result table with an optional figure
type Section struct {
	Title   string
	Note    string
	Table   *stats.ResultTable
	Symbols []string // one per table row; ignored on length mismatch
	Figure  string   // image path relative to the report
}

// Report is an ordered list of sections
type Report struct {
	Title     string
	Decimals  int
	CreatedAt time.Time
	Sections  []Section
}

// New creates an empty report. Numbers are written with four decimals.
func New(title string) *Report {
	return &Report{Title: title, Decimals: 4, CreatedAt: time.Now()}
}

// Add appends a section
func (r *Report) Add(s Section) {
	r.Sections = append(r.Sections, s)
}

// Markdown renders the report as GitHub flavoured Markdown
func (r *Report) Markdown() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "_Generated %s_\n\n", r.CreatedAt.Format(time.RFC3339))
	}
	for _, s := range r.Sections {
		if s.Title != "" {
			fmt.Fprintf(&b, "## %s\n\n", s.Title)
		}
		if s.Note != "" {
			fmt.Fprintf(&b, "%s\n\n", s.Note)
		}
		if s.Figure != "" {
			fmt.Fprintf(&b, "![%s](%s)\n\n", s.Title, filepath.ToSlash(s.Figure))
		}
		if s.Table != nil {
			writeTable(&b, s.Table, s.Symbols, r.Decimals)
			b.WriteString("\n")
		}
	}
	return b.Bytes()
}

// HTML renders the report as a complete HTML page
func (r *Report) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: r.Title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML(r.Markdown(), p, renderer)
}

// Save writes the report to path as .md or .html
func (r *Report) Save(path string) error {
	var content []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		content = r.Markdown()
	case ".html", ".htm":
		content = r.HTML()
	default:
		return errors.InvalidInput(fmt.Sprintf("report must be .md or .html, got %q", filepath.Ext(path)))
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.IOError("create report directory", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.IOError("write "+path, err)
	}
	return nil
}

func writeTable(b *bytes.Buffer, table *stats.ResultTable, symbols []string, decimals int) {
	columns := table.Columns()
	withSymbols := len(symbols) > 0 && len(symbols) == table.NumRows()
	if withSymbols {
		columns = append(columns, SymbolColumn)
	}

	b.WriteString("|")
	for _, c := range columns {
		b.WriteString(" " + escape(c) + " |")
	}
	b.WriteString("\n|")
	for range columns {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for i := 0; i < table.NumRows(); i++ {
		b.WriteString("|")
		for _, v := range table.Row(i) {
			b.WriteString(" " + escape(stats.FormatCell(v, decimals)) + " |")
		}
		if withSymbols {
			b.WriteString(" " + escape(symbols[i]) + " |")
		}
		b.WriteString("\n")
	}
}

// escape keeps cell text from breaking the table or being read as emphasis
func escape(s string) string {
	r := strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "\n", " ")
	return r.Replace(s)
}
