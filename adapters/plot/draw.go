package plot

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// canvas maps data coordinates onto the pixel grid of one render pass
type canvas struct {
	r      chart.Renderer
	box    chart.Box
	xr, yr chart.Range
	scale  float64
}

func newCanvas(r chart.Renderer, box chart.Box, xr, yr chart.Range) canvas {
	scale := r.GetDPI() / chart.DefaultDPI
	if scale <= 0 {
		scale = 1
	}
	return canvas{r: r, box: box, xr: xr, yr: yr, scale: scale}
}

func (c canvas) x(v float64) int { return c.box.Left + c.xr.Translate(v) }

func (c canvas) y(v float64) int { return c.box.Bottom - c.yr.Translate(v) }

// halfWidth converts a width in category units to half of it in pixels
func (c canvas) halfWidth(w float64) int {
	px := float64(c.box.Width()) / c.xr.GetDelta() * w / 2
	return int(math.Max(1, math.Round(px)))
}

func (c canvas) px(v float64) float64 { return v * c.scale }

func (c canvas) line(color drawing.Color, width float64, points ...[2]int) {
	if len(points) < 2 {
		return
	}
	c.r.SetStrokeColor(color)
	c.r.SetStrokeWidth(c.px(width))
	c.r.SetStrokeDashArray(nil)
	c.r.MoveTo(points[0][0], points[0][1])
	for _, p := range points[1:] {
		c.r.LineTo(p[0], p[1])
	}
	c.r.Stroke()
	c.r.ResetStyle()
}

func (c canvas) rect(b chart.Box, fill, stroke drawing.Color, width float64) {
	chart.Draw.Box(c.r, b, chart.Style{FillColor: fill, StrokeColor: stroke, StrokeWidth: c.px(width)})
}

func (c canvas) dot(x, y int, radius float64, fill, stroke drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(c.px(1))
	c.r.Circle(c.px(radius), x, y)
	c.r.FillStroke()
	c.r.ResetStyle()
}

// centeredText draws text horizontally centered on x with its baseline at y
func (c canvas) centeredText(text string, x, y int, style chart.Style) {
	m := chart.Draw.MeasureText(c.r, text, style)
	chart.Draw.Text(c.r, text, x-m.Width()/2, y, style)
}

// edgeColor darkens a fill color for outlines
func edgeColor(fill drawing.Color) drawing.Color {
	return drawing.Color{R: fill.R / 2, G: fill.G / 2, B: fill.B / 2, A: 255}
}

func textStyle(s chart.Style, size float64) chart.Style {
	font := s.Font
	if font == nil {
		font, _ = chart.GetDefaultFont()
	}
	return chart.Style{Font: font, FontSize: size, FontColor: drawing.ColorBlack}
}
