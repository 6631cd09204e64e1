package app

import (
	"fmt"
	"path/filepath"

	"py50/adapters/plot"
	"py50/adapters/plot/palette"
	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
	"py50/internal"
	"py50/ports"
)

// PlotStyle selects how each category is drawn
type PlotStyle string

const (
	StyleBox PlotStyle = "box"
	StyleBar PlotStyle = "bar"
)

// drawFunc adds one layer for the given groups to a figure
type drawFunc func(fig *plot.Figure, groups []dataset.Group, pal palette.Palette)

var styles = map[PlotStyle]drawFunc{
	StyleBox: func(fig *plot.Figure, groups []dataset.Group, pal palette.Palette) { fig.AddBoxes(groups, pal) },
	StyleBar: func(fig *plot.Figure, groups []dataset.Group, pal palette.Palette) { fig.AddBars(groups, pal) },
}

// PlotRequest describes one annotated plot
type PlotRequest struct {
	X           string // categorical column, also the between factor of the test
	Y           string // dependent variable
	GroupCol    string // column whose first-seen order sets the category order; defaults to X
	Test        string // tukey, gameshowell or ptest
	Palette     string // palette name or comma separated hex colors
	SavePath    string // .png or .svg; empty to skip saving
	ReturnTable bool
	Style       PlotStyle // defaults to StyleBox
	Figure      *plot.Figure
	Options     stats.Options
}

// PlotDefaults holds the settings used when a request leaves them out
type PlotDefaults struct {
	DPI       float64
	Width     int
	Height    int
	Palette   string
	OutputDir string
}

// DefaultPlotDefaults returns the built-in plot settings
func DefaultPlotDefaults() PlotDefaults {
	return PlotDefaults{
		DPI:     plot.SaveDPI,
		Width:   plot.DefaultWidth,
		Height:  plot.DefaultHeight,
		Palette: palette.Default,
	}
}

// PlotService draws categorical plots annotated with the results of a
// pairwise test
type PlotService struct {
	dispatcher ports.TestDispatcherPort
	defaults   PlotDefaults
	logger     *internal.Logger
}

// NewPlotService creates a plot service that runs tests through dispatcher
func NewPlotService(dispatcher ports.TestDispatcherPort, defaults PlotDefaults, logger *internal.Logger) *PlotService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if defaults.DPI <= 0 {
		defaults.DPI = plot.SaveDPI
	}
	return &PlotService{dispatcher: dispatcher, defaults: defaults, logger: logger}
}

// BoxPlot draws a box per category
func (s *PlotService) BoxPlot(df *dataset.DataFrame, req PlotRequest) (*stats.ResultTable, error) {
	req.Style = StyleBox
	return s.Plot(df, req)
}

// BarPlot draws mean bars with confidence intervals. Only pairwise t-tests
// are supported; options and the save path are ignored.
func (s *PlotService) BarPlot(df *dataset.DataFrame, req PlotRequest) (*stats.ResultTable, error) {
	req.Style = StyleBar
	return s.Plot(df, req)
}

// Plot validates the request, runs the test, then draws the categories and
// the significance brackets. Nothing is drawn when validation or the test
// fails. The table is returned only when req.ReturnTable is set.
func (s *PlotService) Plot(df *dataset.DataFrame, req PlotRequest) (*stats.ResultTable, error) {
	style := req.Style
	if style == "" {
		style = StyleBox
	}
	draw, ok := styles[style]
	if !ok {
		return nil, core.NewInvalidOptionError("style", fmt.Sprintf("%q is not one of box, bar", style))
	}

	test, err := stats.ParseTestType(req.Test)
	if err != nil {
		return nil, err
	}
	opts, savePath := req.Options, req.SavePath
	if style == StyleBar {
		if test != stats.TestPairwise {
			return nil, core.NewUnsupportedTestError(req.Test, []string{string(stats.TestPairwise)})
		}
		opts, savePath = nil, ""
	}

	if df == nil {
		return nil, core.NewInsufficientDataError("plot", "no dataset given")
	}
	groupCol := req.GroupCol
	if groupCol == "" {
		groupCol = req.X
	}
	if err := df.Require("x", req.X, "y", req.Y, "group_col", groupCol); err != nil {
		return nil, err
	}
	categories, err := df.Unique(groupCol)
	if err != nil {
		return nil, err
	}

	paletteSpec := req.Palette
	if paletteSpec == "" {
		paletteSpec = s.defaults.Palette
	}
	pal, err := palette.Resolve(paletteSpec)
	if err != nil {
		return nil, err
	}

	symbols, table, err := s.dispatcher.Dispatch(string(test), df, req.Y, req.X, opts)
	if err != nil {
		return nil, err
	}
	pairs, err := table.Pairs()
	if err != nil {
		return nil, err
	}
	if len(pairs) != len(symbols) {
		return nil, core.NewAnnotationMismatchError(len(pairs), len(symbols))
	}
	if err := checkPairs(pairs, categories); err != nil {
		return nil, err
	}

	groups, err := categoryGroups(df, req.Y, req.X, categories)
	if err != nil {
		return nil, err
	}

	fig := req.Figure
	if fig == nil {
		fig = plot.Current()
	}
	s.prepare(fig, req)
	draw(fig, groups, pal)

	annotator := plot.NewAnnotator(fig, pairs)
	if err := annotator.SetCustomAnnotations(symbols); err != nil {
		return nil, err
	}
	if _, err := annotator.Annotate(); err != nil {
		return nil, err
	}
	s.logger.Debug("figure %s: %s plot of %s by %s with %d brackets", fig.ID, style, req.Y, req.X, len(pairs))

	if savePath != "" {
		if _, err := s.SaveFigure(fig, savePath); err != nil {
			return nil, err
		}
	}

	if !req.ReturnTable {
		return nil, nil
	}
	return table, nil
}

// ResolvePath places a relative figure path under the configured output
// directory
func (s *PlotService) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || s.defaults.OutputDir == "" {
		return path
	}
	return filepath.Join(s.defaults.OutputDir, path)
}

// SaveFigure writes fig at the configured resolution and returns the path
// it was written to
func (s *PlotService) SaveFigure(fig *plot.Figure, path string) (string, error) {
	path = s.ResolvePath(path)
	if err := fig.Save(path, s.defaults.DPI); err != nil {
		return "", err
	}
	s.logger.Info("saved figure %s to %s", fig.ID, path)
	return path, nil
}

// prepare fills in labels and size the caller left unset on a figure that has
// nothing drawn yet
func (s *PlotService) prepare(fig *plot.Figure, req PlotRequest) {
	if fig.NumLayers() > 0 {
		return
	}
	if fig.XLabel == "" {
		fig.XLabel = req.X
	}
	if fig.YLabel == "" {
		fig.YLabel = req.Y
	}
	if fig.Width == 0 {
		fig.Width = s.defaults.Width
	}
	if fig.Height == 0 {
		fig.Height = s.defaults.Height
	}
}

// categoryGroups returns the dv values of every category in category order.
// Categories without values get an empty group.
func categoryGroups(df *dataset.DataFrame, dv, x string, categories []string) ([]dataset.Group, error) {
	byX, err := df.GroupValues(dv, x, dataset.OrderFirstSeen)
	if err != nil {
		return nil, err
	}
	values := make(map[string][]float64, len(byX))
	for _, g := range byX {
		values[g.Label] = g.Values
	}
	groups := make([]dataset.Group, len(categories))
	for i, c := range categories {
		groups[i] = dataset.Group{Label: c, Values: values[c]}
	}
	return groups, nil
}

func checkPairs(pairs []stats.Pair, categories []string) error {
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}
	for _, p := range pairs {
		for _, label := range []string{p.A, p.B} {
			if !known[label] {
				return fmt.Errorf("%w %q", core.ErrUnknownCategory, label)
			}
		}
	}
	return nil
}
