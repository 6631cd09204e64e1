package plot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"py50/adapters/plot/palette"
	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
)

func testGroups() []dataset.Group {
	return []dataset.Group{
		{Label: "b", Values: []float64{6.1, 5.8, 6.4, 6.0, 5.9}},
		{Label: "a", Values: []float64{4.2, 4.5, 3.9, 4.1, 4.4}},
		{Label: "c", Values: []float64{8.3, 7.9, 8.6, 8.1, 8.4}},
	}
}

func deep(t *testing.T) palette.Palette {
	t.Helper()
	p, err := palette.Resolve("deep")
	require.NoError(t, err)
	return p
}

func TestNewBoxStats(t *testing.T) {
	bs := NewBoxStats([]float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	assert.Equal(t, 9, bs.N)
	assert.Equal(t, 5.0, bs.Median)
	assert.Equal(t, 2.5, bs.Q1)
	assert.Equal(t, 7.5, bs.Q3)
	assert.Equal(t, 1.0, bs.Low)
	assert.Equal(t, 8.0, bs.High)
	assert.Equal(t, []float64{100}, bs.Outliers)

	single := NewBoxStats([]float64{3})
	assert.Equal(t, 3.0, single.High)

	assert.Equal(t, 0, NewBoxStats(nil).N)
}

func TestNewBarStats(t *testing.T) {
	bs := NewBarStats([]float64{1, 2, 3, 4, 5}, 0.95)
	assert.Equal(t, 3.0, bs.Mean)
	assert.Less(t, bs.Lower, 3.0)
	assert.InDelta(t, 3.0-bs.Lower, bs.Upper-3.0, 1e-12)

	one := NewBarStats([]float64{2}, 0.95)
	assert.Equal(t, one.Lower, one.Upper)
}

func TestFigure_CategoriesAccumulate(t *testing.T) {
	fig := NewFigure()
	fig.AddBoxes(testGroups(), deep(t))
	assert.Equal(t, []string{"b", "a", "c"}, fig.Categories())

	fig.AddBars([]dataset.Group{{Label: "d", Values: []float64{1, 2}}, {Label: "a", Values: []float64{4}}}, deep(t))
	assert.Equal(t, []string{"b", "a", "c", "d"}, fig.Categories())
	assert.Equal(t, 2, fig.NumLayers())

	pos, err := fig.Position("c")
	require.NoError(t, err)
	assert.Equal(t, 3.0, pos)

	_, err = fig.Position("z")
	assert.True(t, errors.Is(err, core.ErrUnknownCategory))

	fig.Clear()
	assert.Empty(t, fig.Categories())
	assert.Equal(t, 0, fig.NumLayers())
}

func TestFigure_EmptyRender(t *testing.T) {
	var buf bytes.Buffer
	err := NewFigure().Render(&buf, FormatPNG, 0)
	assert.True(t, errors.Is(err, core.ErrEmptyFigure))
}

func TestAnnotator_Layout(t *testing.T) {
	fig := NewFigure()
	fig.AddBoxes(testGroups(), deep(t))

	pairs := []stats.Pair{{A: "a", B: "b"}, {A: "a", B: "c"}, {A: "b", B: "c"}}
	ann := NewAnnotator(fig, pairs)
	require.NoError(t, ann.SetCustomAnnotations([]string{"***", "**", "ns"}))

	brackets, err := ann.Layout()
	require.NoError(t, err)
	require.Len(t, brackets, 3)

	for i, b := range brackets {
		assert.Equal(t, pairs[i], b.Pair)
		assert.Less(t, b.X1, b.X2)
	}
	assert.Equal(t, "***", brackets[0].Text)
	assert.Equal(t, "ns", brackets[2].Text)

	// axis order is b, a, c so b-c spans every category and clears both
	// narrow brackets
	wide := brackets[2]
	assert.Greater(t, wide.Y, brackets[0].top(8.6-3.9))
	assert.Greater(t, wide.Y, brackets[1].top(8.6-3.9))
	assert.Greater(t, brackets[0].Y, 6.4)
	assert.Greater(t, brackets[1].Y, 8.6)
}

func TestAnnotator_Errors(t *testing.T) {
	fig := NewFigure()
	fig.AddBoxes(testGroups(), deep(t))

	ann := NewAnnotator(fig, []stats.Pair{{A: "a", B: "b"}})
	err := ann.SetCustomAnnotations([]string{"*", "**"})
	assert.True(t, errors.Is(err, core.ErrAnnotationMismatch))

	_, err = ann.Annotate()
	assert.True(t, errors.Is(err, core.ErrAnnotationMismatch))

	unknown := NewAnnotator(fig, []stats.Pair{{A: "a", B: "zzz"}})
	require.NoError(t, unknown.SetCustomAnnotations([]string{"*"}))
	_, err = unknown.Annotate()
	assert.True(t, errors.Is(err, core.ErrUnknownCategory))
	assert.Equal(t, 1, fig.NumLayers())
}

func TestAnnotator_AddsLayer(t *testing.T) {
	fig := NewFigure()
	fig.AddBoxes(testGroups(), deep(t))
	_, hiBefore, _ := fig.extent()

	ann := NewAnnotator(fig, []stats.Pair{{A: "b", B: "a"}})
	require.NoError(t, ann.SetCustomAnnotations([]string{"*"}))
	series, err := ann.Annotate()
	require.NoError(t, err)

	assert.Equal(t, 2, fig.NumLayers())
	assert.Len(t, series.Brackets, 1)
	_, hiAfter, _ := fig.extent()
	assert.Greater(t, hiAfter, hiBefore)
}

func TestFigure_RenderFormats(t *testing.T) {
	fig := NewFigure()
	fig.AddBoxes(testGroups(), deep(t))
	ann := NewAnnotator(fig, []stats.Pair{{A: "a", B: "b"}})
	require.NoError(t, ann.SetCustomAnnotations([]string{"***"}))
	_, err := ann.Annotate()
	require.NoError(t, err)

	var png bytes.Buffer
	require.NoError(t, fig.Render(&png, FormatPNG, 0))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	var svg bytes.Buffer
	require.NoError(t, fig.Render(&svg, FormatSVG, 0))
	assert.Contains(t, svg.String(), "<svg")
}

func TestFigure_Save(t *testing.T) {
	fig := NewFigure()
	fig.AddBars(testGroups(), deep(t))
	dir := t.TempDir()

	path := filepath.Join(dir, "out", "bars.png")
	require.NoError(t, fig.Save(path, SaveDPI))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	ch, err := fig.Chart(SaveDPI)
	require.NoError(t, err)
	assert.Greater(t, ch.Width, DefaultWidth*3)
	assert.Equal(t, 0.0, ch.YAxis.Range.GetMin())

	bad := filepath.Join(dir, "bars.pdf")
	err = fig.Save(bad, SaveDPI)
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
	_, statErr := os.Stat(bad)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/b/plot.PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	f, err = FormatFromPath("plot.svg")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	_, err = FormatFromPath("plot")
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}

func TestCurrentFigure(t *testing.T) {
	Close()
	first := Current()
	assert.Same(t, first, Current())

	Close()
	second := Current()
	assert.NotSame(t, first, second)

	mine := NewFigure()
	SetCurrent(mine)
	assert.Same(t, mine, Current())
	Close()
}
