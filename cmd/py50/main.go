package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"py50/adapters/excel"
	"py50/app"
	"py50/internal"
	"py50/internal/config"
	"py50/internal/container"
	"py50/internal/errors"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not read .env: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", errors.Classify(err), err)
		os.Exit(1)
	}
}

// env holds the services shared by all commands. It is filled in before any
// command runs.
type env struct {
	container *container.Container

	cfg    *config.Config
	logger *internal.Logger
	stats  *app.StatsService
	plots  *app.PlotService
	reader *excel.DataReader
	writer *excel.TableWriter

	dataFile    string
	sheet       string
	categorical []string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "py50",
		Short: "Statistical comparisons and annotated box and bar plots",
		Long: `py50 runs pairwise statistical tests on tabular data and draws box or bar
plots annotated with significance brackets.

Data is read from .csv or .xlsx files. Settings come from the environment
(or a .env file):
- PY50_DATA_FILE   default data file
- PY50_DPI         resolution of saved figures (default: 300)
- PY50_WIDTH       figure width in pixels (default: 640)
- PY50_HEIGHT      figure height in pixels (default: 480)
- PY50_PALETTE     default palette (default: deep)
- PY50_OUTPUT_DIR  directory for relative figure paths
- LOG_LEVEL        ERROR|WARN|INFO|DEBUG|TRACE`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.container != nil {
				e.container.Shutdown()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&e.dataFile, "data", "", "Data file (.csv or .xlsx); defaults to PY50_DATA_FILE")
	rootCmd.PersistentFlags().StringVar(&e.sheet, "sheet", "", "Worksheet to read from an .xlsx file (default: first)")
	rootCmd.PersistentFlags().StringSliceVar(&e.categorical, "categorical", nil, "Columns to read as labels even if numeric")
	rootCmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Log level; overrides LOG_LEVEL")

	rootCmd.AddCommand(
		newDispatchCmd(e),
		newTTestCmd(e),
		newNormalityCmd(e),
		newHomoscedasticityCmd(e),
		newAnovaCmd(e),
		newRMAnovaCmd(e),
		newMixedAnovaCmd(e),
		newPosthocCmd(e),
		newDescribeCmd(e),
		newPlotCmd(e),
	)
	return rootCmd
}

func (e *env) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	e.cfg = cfg

	level := cfg.Log.Level
	if e.logLevel != "" {
		parsed, ok := internal.ParseLogLevel(e.logLevel)
		if !ok {
			return errors.InvalidInput(fmt.Sprintf("unknown log level %q", e.logLevel))
		}
		level = parsed
	}

	c, err := container.New(cfg, container.Options{
		Logger:      internal.NewLogger(level),
		Sheet:       e.sheet,
		Categorical: e.categorical,
	})
	if err != nil {
		return err
	}
	e.container = c
	e.logger, e.reader, e.writer = c.Logger, c.Reader, c.Writer
	e.stats, e.plots = c.Stats, c.Plots
	return nil
}
