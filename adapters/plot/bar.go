package plot

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"py50/adapters/plot/palette"
	"py50/domain/dataset"
)

// BarStats is a mean with its t-based confidence interval
type BarStats struct {
	N     int
	Mean  float64
	Lower float64
	Upper float64
}

// NewBarStats computes the mean of values and a confidence interval at the
// given level. With fewer than two values the interval collapses to the mean.
func NewBarStats(values []float64, confidence float64) BarStats {
	x := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			x = append(x, v)
		}
	}
	bs := BarStats{N: len(x)}
	if bs.N == 0 {
		return bs
	}
	mean, std := stat.MeanStdDev(x, nil)
	bs.Mean, bs.Lower, bs.Upper = mean, mean, mean
	if bs.N < 2 || std == 0 {
		return bs
	}
	dof := float64(bs.N - 1)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}.Quantile(1 - (1-confidence)/2)
	half := t * std / math.Sqrt(float64(bs.N))
	bs.Lower, bs.Upper = mean-half, mean+half
	return bs
}

// BarSeries draws one bar per category from zero to the mean, with an error
// bar spanning the confidence interval.
type BarSeries struct {
	Name      string
	Positions []float64
	Bars      []BarStats
	Palette   palette.Palette
	Width     float64 // bar width in category units
	Style     chart.Style
}

var _ Layer = (*BarSeries)(nil)

func (bs *BarSeries) GetName() string { return bs.Name }

func (bs *BarSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (bs *BarSeries) GetStyle() chart.Style { return bs.Style }

func (bs *BarSeries) Validate() error { return nil }

// Extent implements Layer. Bars always include zero.
func (bs *BarSeries) Extent() (float64, float64) {
	lo, hi := 0.0, 0.0
	drawn := false
	for _, b := range bs.Bars {
		if b.N == 0 {
			continue
		}
		drawn = true
		lo, hi = math.Min(lo, b.Lower), math.Max(hi, b.Upper)
	}
	if !drawn {
		return math.Inf(1), math.Inf(-1)
	}
	return lo, hi
}

// Top implements Layer
func (bs *BarSeries) Top(x float64) (float64, bool) {
	for i, p := range bs.Positions {
		if p == x && bs.Bars[i].N > 0 {
			return math.Max(bs.Bars[i].Upper, 0), true
		}
	}
	return 0, false
}

// Render implements chart.Series
func (bs *BarSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, s chart.Style) {
	c := newCanvas(r, canvasBox, xrange, yrange)
	width := bs.Width
	if width <= 0 {
		width = 0.7
	}
	half := c.halfWidth(width)
	capHalf := half / 3

	zero := math.Max(yrange.GetMin(), 0)
	for i, b := range bs.Bars {
		if b.N == 0 {
			continue
		}
		fill := bs.Palette.At(int(bs.Positions[i]) - 1)
		edge := edgeColor(fill)
		x := c.x(bs.Positions[i])

		top, bottom := c.y(b.Mean), c.y(zero)
		if top > bottom {
			top, bottom = bottom, top
		}
		c.rect(chart.Box{Left: x - half, Right: x + half, Top: top, Bottom: bottom}, fill, edge, 1)

		if b.Upper > b.Lower {
			c.line(edge, 1.5, [2]int{x, c.y(b.Lower)}, [2]int{x, c.y(b.Upper)})
			c.line(edge, 1.5, [2]int{x - capHalf, c.y(b.Upper)}, [2]int{x + capHalf, c.y(b.Upper)})
			c.line(edge, 1.5, [2]int{x - capHalf, c.y(b.Lower)}, [2]int{x + capHalf, c.y(b.Lower)})
		}
	}
}

// AddBars draws a bar with a 95% confidence interval for every group
func (f *Figure) AddBars(groups []dataset.Group, pal palette.Palette) *BarSeries {
	labels := make([]string, len(groups))
	bars := make([]BarStats, len(groups))
	for i, g := range groups {
		labels[i] = g.Label
		bars[i] = NewBarStats(g.Values, 0.95)
	}
	series := &BarSeries{
		Name:      "bar",
		Positions: f.addCategories(labels),
		Bars:      bars,
		Palette:   pal,
		Width:     0.7,
	}
	f.AddLayer(series)
	f.mu.Lock()
	f.zeroBaseline = true
	f.mu.Unlock()
	return series
}
