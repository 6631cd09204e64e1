package plot

import (
	"fmt"
	"math"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"py50/domain/core"
	"py50/domain/stats"
)

// Bracket layout as fractions of the data span
const (
	bracketGap  = 0.04
	bracketTick = 0.025
	bracketText = 0.07
)

// Bracket is a significance bar between two categories
type Bracket struct {
	Pair stats.Pair
	X1   float64
	X2   float64
	Y    float64 // bottom of the bracket legs
	Tick float64 // leg height
	Text string
}

// top is the highest value the bracket and its label occupy
func (b Bracket) top(span float64) float64 {
	return b.Y + b.Tick + bracketText*span
}

// Annotator places custom texts over pairs of categories of a figure
type Annotator struct {
	fig   *Figure
	pairs []stats.Pair
	texts []string
}

// NewAnnotator prepares annotations of pairs on fig
func NewAnnotator(fig *Figure, pairs []stats.Pair) *Annotator {
	cp := make([]stats.Pair, len(pairs))
	copy(cp, pairs)
	return &Annotator{fig: fig, pairs: cp}
}

// SetCustomAnnotations sets one text per pair, in pair order
func (a *Annotator) SetCustomAnnotations(texts []string) error {
	if len(texts) != len(a.pairs) {
		return core.NewAnnotationMismatchError(len(a.pairs), len(texts))
	}
	a.texts = make([]string, len(texts))
	copy(a.texts, texts)
	return nil
}

// Layout computes bracket positions without drawing them. Narrow brackets
// sit lowest; each bracket clears everything already drawn over the
// categories it spans.
func (a *Annotator) Layout() ([]Bracket, error) {
	brackets, _, err := a.layout()
	return brackets, err
}

func (a *Annotator) layout() ([]Bracket, float64, error) {
	if a.texts == nil && len(a.pairs) > 0 {
		return nil, 0, core.NewAnnotationMismatchError(len(a.pairs), 0)
	}
	lo, hi, ok := a.fig.extent()
	if !ok {
		return nil, 0, core.ErrEmptyFigure
	}
	span := hi - lo
	if span <= 0 {
		span = math.Max(math.Abs(hi), 1)
	}

	brackets := make([]Bracket, len(a.pairs))
	for i, p := range a.pairs {
		x1, err := a.fig.Position(p.A)
		if err != nil {
			return nil, 0, err
		}
		x2, err := a.fig.Position(p.B)
		if err != nil {
			return nil, 0, err
		}
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		brackets[i] = Bracket{Pair: p, X1: x1, X2: x2, Tick: bracketTick * span, Text: a.texts[i]}
	}

	order := make([]int, len(brackets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		bi, bj := brackets[order[i]], brackets[order[j]]
		return bi.X2-bi.X1 < bj.X2-bj.X1
	})

	tops := a.fig.tops()
	for _, idx := range order {
		b := &brackets[idx]
		base := math.Inf(-1)
		for x := b.X1; x <= b.X2; x++ {
			base = math.Max(base, tops[x])
		}
		if math.IsInf(base, -1) {
			base = hi
		}
		b.Y = base + bracketGap*span
		for x := b.X1; x <= b.X2; x++ {
			tops[x] = b.top(span)
		}
	}
	return brackets, span, nil
}

// Annotate lays out the brackets and adds them to the figure
func (a *Annotator) Annotate() (*BracketSeries, error) {
	brackets, span, err := a.layout()
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	series := &BracketSeries{Name: "annotations", Brackets: brackets, span: span}
	a.fig.AddLayer(series)
	return series, nil
}

// BracketSeries draws significance brackets with their labels
type BracketSeries struct {
	Name     string
	Brackets []Bracket
	Style    chart.Style
	span     float64
}

var _ Layer = (*BracketSeries)(nil)

func (bs *BracketSeries) GetName() string { return bs.Name }

func (bs *BracketSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (bs *BracketSeries) GetStyle() chart.Style { return bs.Style }

func (bs *BracketSeries) Validate() error { return nil }

// Extent implements Layer
func (bs *BracketSeries) Extent() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range bs.Brackets {
		lo, hi = math.Min(lo, b.Y), math.Max(hi, b.top(bs.span))
	}
	return lo, hi
}

// Top implements Layer
func (bs *BracketSeries) Top(x float64) (float64, bool) {
	top, found := math.Inf(-1), false
	for _, b := range bs.Brackets {
		if x >= b.X1 && x <= b.X2 {
			top, found = math.Max(top, b.top(bs.span)), true
		}
	}
	return top, found
}

// Render implements chart.Series
func (bs *BracketSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, s chart.Style) {
	c := newCanvas(r, canvasBox, xrange, yrange)
	text := textStyle(s, 11)
	for _, b := range bs.Brackets {
		x1, x2 := c.x(b.X1), c.x(b.X2)
		y0, y1 := c.y(b.Y), c.y(b.Y+b.Tick)
		c.line(drawing.ColorBlack, 1.2, [2]int{x1, y0}, [2]int{x1, y1}, [2]int{x2, y1}, [2]int{x2, y0})
		c.centeredText(b.Text, (x1+x2)/2, y1-int(c.px(3)), text)
	}
}
