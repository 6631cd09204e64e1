// Package plot draws categorical box and bar plots with significance
// brackets on top of go-chart.
package plot

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wcharczuk/go-chart/v2"

	"py50/domain/core"
)

// Default figure geometry in pixels at chart.DefaultDPI
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	// SaveDPI is the resolution used for saved figures
	SaveDPI = 300.0
)

// Layer is a series drawn over the categorical x axis. Category i sits at
// x = i+1.
type Layer interface {
	chart.Series
	// Extent returns the lowest and highest value the layer draws
	Extent() (float64, float64)
	// Top returns the highest value drawn at category position x
	Top(x float64) (float64, bool)
}

// Figure collects layers drawn over a shared set of categories. Layers added
// by successive plot calls accumulate until Clear.
type Figure struct {
	ID     core.FigureID
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int

	mu           sync.Mutex
	categories   []string
	layers       []Layer
	zeroBaseline bool
}

// NewFigure creates an empty figure. A zero Width or Height renders at the
// default size.
func NewFigure() *Figure {
	return &Figure{ID: core.NewFigureID()}
}

// size returns the figure geometry in pixels at chart.DefaultDPI
func (f *Figure) size() (int, int) {
	w, h := f.Width, f.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Categories returns the category labels in axis order
func (f *Figure) Categories() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.categories))
	copy(out, f.categories)
	return out
}

// NumLayers returns how many layers have been drawn
func (f *Figure) NumLayers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.layers)
}

// Clear removes all layers and categories. The figure keeps its ID.
func (f *Figure) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = nil
	f.layers = nil
	f.zeroBaseline = false
}

// addCategories appends labels not yet on the axis and returns the position
// of every given label.
func (f *Figure) addCategories(labels []string) []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	positions := make([]float64, len(labels))
	for i, l := range labels {
		idx := indexOf(f.categories, l)
		if idx < 0 {
			idx = len(f.categories)
			f.categories = append(f.categories, l)
		}
		positions[i] = float64(idx + 1)
	}
	return positions
}

// Position returns the x position of a category
func (f *Figure) Position(label string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := indexOf(f.categories, label)
	if idx < 0 {
		return 0, fmt.Errorf("%w %q: figure has %s", core.ErrUnknownCategory, label, strings.Join(f.categories, ", "))
	}
	return float64(idx + 1), nil
}

// AddLayer appends a layer drawn above the existing ones
func (f *Figure) AddLayer(l Layer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.layers = append(f.layers, l)
}

func (f *Figure) snapshotLayers() []Layer {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Layer, len(f.layers))
	copy(out, f.layers)
	return out
}

// extent returns the data extent of all layers
func (f *Figure) extent() (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range f.snapshotLayers() {
		a, b := l.Extent()
		lo, hi = math.Min(lo, a), math.Max(hi, b)
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, false
	}
	return lo, hi, true
}

// tops returns the highest drawn value at every category position
func (f *Figure) tops() map[float64]float64 {
	out := make(map[float64]float64)
	layers := f.snapshotLayers()
	for i := range f.Categories() {
		x := float64(i + 1)
		top := math.Inf(-1)
		for _, l := range layers {
			if v, ok := l.Top(x); ok {
				top = math.Max(top, v)
			}
		}
		out[x] = top
	}
	return out
}

// Chart builds the go-chart definition of the figure for a resolution
func (f *Figure) Chart(dpi float64) (chart.Chart, error) {
	categories := f.Categories()
	layers := f.snapshotLayers()
	if len(layers) == 0 || len(categories) == 0 {
		return chart.Chart{}, core.ErrEmptyFigure
	}
	lo, hi, ok := f.extent()
	if !ok {
		return chart.Chart{}, fmt.Errorf("%w: layers have no finite values", core.ErrEmptyFigure)
	}

	span := hi - lo
	if span <= 0 {
		span = math.Max(math.Abs(hi), 1)
	}
	yMin := lo - 0.05*span
	f.mu.Lock()
	if f.zeroBaseline && lo >= 0 {
		yMin = 0
	}
	f.mu.Unlock()
	yMax := hi + 0.05*span

	ticks := make([]chart.Tick, 0, len(categories)+2)
	ticks = append(ticks, chart.Tick{Value: 0.5})
	for i, c := range categories {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: c})
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(categories)) + 0.5})

	if dpi <= 0 {
		dpi = chart.DefaultDPI
	}
	scale := dpi / chart.DefaultDPI
	pad := int(math.Round(8 * scale))

	series := make([]chart.Series, len(layers))
	for i, l := range layers {
		series[i] = l
	}
	width, height := f.size()

	return chart.Chart{
		Title:      f.Title,
		Width:      int(math.Round(float64(width) * scale)),
		Height:     int(math.Round(float64(height) * scale)),
		DPI:        dpi,
		Background: chart.Style{Padding: chart.Box{Top: pad, Left: pad, Right: pad, Bottom: pad}},
		XAxis: chart.XAxis{
			Name:  f.XLabel,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(categories)) + 0.5},
		},
		YAxis: chart.YAxis{
			Name:  f.YLabel,
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: series,
	}, nil
}

// Format selects an output encoding
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFromPath infers the output format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q (use .png or .svg)", core.ErrUnsupportedFormat, filepath.Ext(path))
}

// Render writes the figure in the given format and resolution
func (f *Figure) Render(w io.Writer, format Format, dpi float64) error {
	ch, err := f.Chart(dpi)
	if err != nil {
		return err
	}
	switch format {
	case FormatPNG:
		return ch.Render(chart.PNG, w)
	case FormatSVG:
		return ch.Render(chart.SVG, w)
	}
	return fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, format)
}

// Save renders the figure to path. The format follows the extension and
// the file is only written once rendering succeeded.
func (f *Figure) Save(path string, dpi float64) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf, format, dpi); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
