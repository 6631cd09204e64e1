package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"py50/domain/stats"
	"py50/internal/errors"
)

func sampleReport() *Report {
	table := stats.NewResultTable("pairwise_tukey", stats.ColA, stats.ColB, stats.ColPTukey)
	table.AddRow("ctrl", "drug_a", 0.0004)
	table.AddRow("ctrl", "drug_b", math.NaN())

	r := New("py50 results")
	r.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.Add(Section{Title: "Tukey HSD", Note: "score by group", Table: table, Symbols: []string{"***", "ns"}, Figure: "figs/tukey.png"})
	return r
}

func TestMarkdown(t *testing.T) {
	md := string(sampleReport().Markdown())

	assert.True(t, strings.HasPrefix(md, "# py50 results\n"))
	assert.Contains(t, md, "_Generated 2024-05-01T12:00:00Z_")
	assert.Contains(t, md, "## Tukey HSD")
	assert.Contains(t, md, "![Tukey HSD](figs/tukey.png)")
	assert.Contains(t, md, "| A | B | p-tukey | significance |")
	assert.Contains(t, md, `| ctrl | drug\_a | 0.0004 | \*\*\* |`)
	assert.Contains(t, md, "| NaN | ns |")
}

func TestMarkdown_SymbolsIgnoredOnMismatch(t *testing.T) {
	r := sampleReport()
	r.Sections[0].Symbols = []string{"*"}
	assert.NotContains(t, string(r.Markdown()), SymbolColumn)
}

func TestHTML(t *testing.T) {
	page := string(sampleReport().HTML())
	assert.Contains(t, page, "<title>py50 results</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "***")
	assert.Contains(t, page, "drug_a")
	assert.NotContains(t, page, `\*`)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport()

	require.NoError(t, r.Save(filepath.Join(dir, "out", "report.md")))
	require.NoError(t, r.Save(filepath.Join(dir, "report.html")))

	md, err := os.ReadFile(filepath.Join(dir, "out", "report.md"))
	require.NoError(t, err)
	assert.Equal(t, r.Markdown(), md)

	err = r.Save(filepath.Join(dir, "report.pdf"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
