package plot

import (
	"math"

	mstats "github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2"

	"py50/adapters/plot/palette"
	"py50/domain/dataset"
)

// BoxStats is the five number summary drawn by a box plot. Quartiles are
// medians of the lower and upper halves; whiskers reach the most extreme
// values within 1.5 IQR of them.
type BoxStats struct {
	N        int
	Q1       float64
	Median   float64
	Q3       float64
	Low      float64
	High     float64
	Outliers []float64
}

// NewBoxStats summarizes values. NaNs are ignored.
func NewBoxStats(values []float64) BoxStats {
	x := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			x = append(x, v)
		}
	}
	bs := BoxStats{N: len(x)}
	switch bs.N {
	case 0:
		return bs
	case 1:
		bs.Q1, bs.Median, bs.Q3, bs.Low, bs.High = x[0], x[0], x[0], x[0], x[0]
		return bs
	}

	q, err := mstats.Quartile(x)
	if err != nil {
		return BoxStats{}
	}
	bs.Q1, bs.Median, bs.Q3 = q.Q1, q.Q2, q.Q3
	iqr := bs.Q3 - bs.Q1
	lowFence, highFence := bs.Q1-1.5*iqr, bs.Q3+1.5*iqr

	bs.Low, bs.High = bs.Q1, bs.Q3
	for _, v := range x {
		if v < lowFence || v > highFence {
			bs.Outliers = append(bs.Outliers, v)
			continue
		}
		bs.Low = math.Min(bs.Low, v)
		bs.High = math.Max(bs.High, v)
	}
	return bs
}

// max returns the highest drawn value including outliers
func (bs BoxStats) max() float64 {
	m := bs.High
	for _, o := range bs.Outliers {
		m = math.Max(m, o)
	}
	return m
}

func (bs BoxStats) min() float64 {
	m := bs.Low
	for _, o := range bs.Outliers {
		m = math.Min(m, o)
	}
	return m
}

// BoxSeries draws one box per category
type BoxSeries struct {
	Name      string
	Positions []float64
	Boxes     []BoxStats
	Palette   palette.Palette
	Width     float64 // box width in category units
	Style     chart.Style
}

var _ Layer = (*BoxSeries)(nil)

func (bs *BoxSeries) GetName() string { return bs.Name }

func (bs *BoxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (bs *BoxSeries) GetStyle() chart.Style { return bs.Style }

func (bs *BoxSeries) Validate() error { return nil }

// Extent implements Layer
func (bs *BoxSeries) Extent() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range bs.Boxes {
		if b.N == 0 {
			continue
		}
		lo, hi = math.Min(lo, b.min()), math.Max(hi, b.max())
	}
	return lo, hi
}

// Top implements Layer
func (bs *BoxSeries) Top(x float64) (float64, bool) {
	for i, p := range bs.Positions {
		if p == x && bs.Boxes[i].N > 0 {
			return bs.Boxes[i].max(), true
		}
	}
	return 0, false
}

// Render implements chart.Series
func (bs *BoxSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, s chart.Style) {
	c := newCanvas(r, canvasBox, xrange, yrange)
	width := bs.Width
	if width <= 0 {
		width = 0.6
	}
	half := c.halfWidth(width)
	capHalf := half / 2

	for i, b := range bs.Boxes {
		if b.N == 0 {
			continue
		}
		fill := bs.Palette.At(int(bs.Positions[i]) - 1)
		edge := edgeColor(fill)
		x := c.x(bs.Positions[i])

		c.line(edge, 1, [2]int{x, c.y(b.Q3)}, [2]int{x, c.y(b.High)})
		c.line(edge, 1, [2]int{x, c.y(b.Q1)}, [2]int{x, c.y(b.Low)})
		c.line(edge, 1, [2]int{x - capHalf, c.y(b.High)}, [2]int{x + capHalf, c.y(b.High)})
		c.line(edge, 1, [2]int{x - capHalf, c.y(b.Low)}, [2]int{x + capHalf, c.y(b.Low)})

		c.rect(chart.Box{Left: x - half, Right: x + half, Top: c.y(b.Q3), Bottom: c.y(b.Q1)}, fill, edge, 1)
		c.line(edge, 2, [2]int{x - half, c.y(b.Median)}, [2]int{x + half, c.y(b.Median)})

		for _, o := range b.Outliers {
			c.dot(x, c.y(o), 3, fill, edge)
		}
	}
}

// AddBoxes draws a box for every group, in group order. Groups without
// values keep their category slot but draw nothing.
func (f *Figure) AddBoxes(groups []dataset.Group, pal palette.Palette) *BoxSeries {
	labels := make([]string, len(groups))
	boxes := make([]BoxStats, len(groups))
	for i, g := range groups {
		labels[i] = g.Label
		boxes[i] = NewBoxStats(g.Values)
	}
	series := &BoxSeries{
		Name:      "box",
		Positions: f.addCategories(labels),
		Boxes:     boxes,
		Palette:   pal,
		Width:     0.6,
	}
	f.AddLayer(series)
	return series
}
