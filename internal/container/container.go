package container

import (
	"fmt"

	"py50/adapters/excel"
	"py50/adapters/plot"
	"py50/app"
	"py50/internal"
	"py50/internal/config"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Data access
	Reader *excel.DataReader
	Writer *excel.TableWriter

	// Services
	Stats *app.StatsService
	Plots *app.PlotService
}

// Options adjust how the container builds its components
type Options struct {
	Logger      *internal.Logger // replaces the logger built from Config.Log
	Sheet       string
	Categorical []string
}

// New creates a new dependency injection container
func New(cfg *config.Config, opts Options) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{Config: cfg, Logger: opts.Logger}
	if c.Logger == nil {
		c.Logger = internal.NewLogger(cfg.Log.Level)
	}

	c.initData(opts)
	c.initServices()
	c.Logger.Debug("container ready (dpi %.0f, palette %s)", cfg.Plot.DPI, cfg.Plot.Palette)
	return c, nil
}

func (c *Container) initData(opts Options) {
	readerConfig := excel.DefaultReaderConfig()
	readerConfig.Sheet = opts.Sheet
	readerConfig.Categorical = opts.Categorical
	c.Reader = excel.NewDataReader(readerConfig, c.Logger)
	c.Writer = excel.NewTableWriter(c.Logger)
}

func (c *Container) initServices() {
	c.Stats = app.NewStatsService(c.Logger)
	c.Plots = app.NewPlotService(c.Stats, PlotDefaults(c.Config), c.Logger)
}

// PlotDefaults maps the plot configuration onto service defaults
func PlotDefaults(cfg *config.Config) app.PlotDefaults {
	return app.PlotDefaults{
		DPI:       cfg.Plot.DPI,
		Width:     cfg.Plot.Width,
		Height:    cfg.Plot.Height,
		Palette:   cfg.Plot.Palette,
		OutputDir: cfg.Plot.OutputDir,
	}
}

// Shutdown releases the process-wide current figure
func (c *Container) Shutdown() {
	plot.Close()
	c.Logger.Trace("container shut down")
}
