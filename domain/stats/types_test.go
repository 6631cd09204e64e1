package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"py50/domain/core"
)

func TestParseTestType(t *testing.T) {
	for _, name := range []string{"tukey", "gameshowell", "ptest"} {
		tt, err := ParseTestType(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(tt))
	}

	_, err := ParseTestType("")
	assert.True(t, errors.Is(err, core.ErrMissingTest))
	assert.False(t, errors.Is(err, core.ErrUnsupportedTest))

	_, err = ParseTestType("invalid-test")
	assert.True(t, errors.Is(err, core.ErrUnsupportedTest))
	assert.Contains(t, err.Error(), "invalid-test")

	_, err = ParseTestType("Tukey")
	assert.True(t, errors.Is(err, core.ErrUnsupportedTest))
}

func TestPValueColumn(t *testing.T) {
	assert.Equal(t, "p-tukey", TestTukey.PValueColumn())
	assert.Equal(t, "pval", TestGamesHowell.PValueColumn())
	assert.Equal(t, "p-unc", TestPairwise.PValueColumn())
}

func TestResultTable(t *testing.T) {
	table := NewResultTable("demo", ColA, ColB, "T", ColPUnc)
	table.AddRow("x", "y", 2.5, 0.01)
	table.AddRow("x", "z", 3, math.NaN())

	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, "y", table.Value(0, ColB))
	assert.Nil(t, table.Value(0, "missing"))

	tv, err := table.Floats("T")
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 3}, tv)

	pairs, err := table.Pairs()
	require.NoError(t, err)
	assert.Equal(t, []Pair{{A: "x", B: "y"}, {A: "x", B: "z"}}, pairs)

	assert.Panics(t, func() { table.AddRow("only one") })

	_, err = table.Floats("nope")
	assert.True(t, errors.Is(err, core.ErrColumnNotFound))
}

func TestResultTable_AddColumn(t *testing.T) {
	table := NewResultTable("demo", ColA)
	table.AddRow("a")
	table.AddRow("b")

	require.NoError(t, table.AddColumn("stars", []interface{}{"*", "ns"}))
	assert.Equal(t, "ns", table.Value(1, "stars"))
	assert.Error(t, table.AddColumn("short", []interface{}{"x"}))
	assert.Error(t, table.AddColumn(ColA, []interface{}{"x", "y"}))
}

func TestResultTable_Fingerprint(t *testing.T) {
	build := func(p float64) *ResultTable {
		table := NewResultTable("demo", ColA, ColPUnc)
		table.AddRow("a", p)
		return table
	}
	assert.True(t, build(0.1).Fingerprint().Equals(build(0.1).Fingerprint()))
	assert.False(t, build(0.1).Fingerprint().Equals(build(0.2).Fingerprint()))
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", FormatCell(nil, 2))
	assert.Equal(t, "NaN", FormatCell(math.NaN(), 2))
	assert.Equal(t, "0.12", FormatCell(0.1234, 2))
	assert.Equal(t, "0.1234", FormatCell(0.1234, -1))
	assert.Equal(t, "7", FormatCell(7, 2))
	assert.Equal(t, "true", FormatCell(true, 2))
	assert.Equal(t, "tukey", FormatCell("tukey", 2))
}

func TestOptions(t *testing.T) {
	opts, err := ParseOptions([]string{"effsize=cohen", "paired = false", "decimals=3"})
	require.NoError(t, err)

	require.NoError(t, opts.Check("effsize", "paired", "decimals"))
	err = opts.Check("effsize")
	assert.True(t, errors.Is(err, core.ErrInvalidOption))
	assert.Contains(t, err.Error(), "decimals")

	paired, err := opts.Bool("paired", true)
	require.NoError(t, err)
	assert.False(t, paired)

	decimals, err := opts.Int("decimals", 4)
	require.NoError(t, err)
	assert.Equal(t, 3, decimals)

	_, err = opts.OneOf("effsize", "hedges", "none", "hedges")
	assert.True(t, errors.Is(err, core.ErrInvalidOption))

	_, err = ParseOptions([]string{"novalue"})
	assert.Error(t, err)
}

func TestOptions_WithDoesNotMutate(t *testing.T) {
	base := Options{"a": 1}
	next := base.With("b", 2)
	_, ok := base["b"]
	assert.False(t, ok)
	assert.Equal(t, 2, next["b"])

	var none Options
	assert.Equal(t, "hedges", none.With("effsize", "hedges")["effsize"])
}
