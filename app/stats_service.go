package app

import (
	"fmt"

	"py50/adapters/stats/inference"
	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
	"py50/internal"
	"py50/ports"
)

// StatsService forwards datasets to the inference routines. It keeps no
// state between calls.
type StatsService struct {
	logger *internal.Logger
}

var _ ports.InferencePort = (*StatsService)(nil)

// NewStatsService creates a stats service. A nil logger uses the default one.
func NewStatsService(logger *internal.Logger) *StatsService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &StatsService{logger: logger}
}

// Dispatch runs the pairwise test named by test and converts the p-value of
// every result row into a significance symbol. The test name is validated
// before anything is computed.
func (s *StatsService) Dispatch(test string, df *dataset.DataFrame, dv, between string, opts stats.Options) ([]string, *stats.ResultTable, error) {
	tt, err := stats.ParseTestType(test)
	if err != nil {
		return nil, nil, err
	}
	if err := requireColumns(df, "dv", dv, "between", between); err != nil {
		return nil, nil, err
	}

	var table *stats.ResultTable
	switch tt {
	case stats.TestTukey:
		if _, ok := opts["effsize"]; !ok {
			opts = opts.With("effsize", inference.EffsizeHedges)
		}
		table, err = inference.PairwiseTukey(df, dv, between, opts)
	case stats.TestGamesHowell:
		table, err = inference.PairwiseGamesHowell(df, dv, between, opts)
	case stats.TestPairwise:
		table, err = inference.PairwiseTests(df, dv, between, opts)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", tt, err)
	}

	pvalues, err := table.Floats(tt.PValueColumn())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", tt, err)
	}
	symbols := stats.Symbols(pvalues)
	s.logger.Debug("%s on %s by %s: %d comparisons (%s)", tt, dv, between, len(symbols), table.Fingerprint().String()[:12])
	return symbols, table, nil
}

// TTest runs the column-wise t-test matrix
func (s *StatsService) TTest(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error) {
	if err := requireColumns(df); err != nil {
		return nil, err
	}
	return s.run("ttest", func() (*stats.ResultTable, error) { return inference.ColumnTTests(df, opts) })
}

// Normality tests each group of dv for normality. Without dv every numeric
// column is tested.
func (s *StatsService) Normality(df *dataset.DataFrame, dv, group string, opts stats.Options) (*stats.ResultTable, error) {
	if err := requireColumns(df); err != nil {
		return nil, err
	}
	return s.run("normality", func() (*stats.ResultTable, error) { return inference.Normality(df, dv, group, opts) })
}

// Homoscedasticity tests equality of variances across groups. Without dv and
// group the numeric columns are compared with each other.
func (s *StatsService) Homoscedasticity(df *dataset.DataFrame, dv, group string, opts stats.Options) (*stats.ResultTable, error) {
	if err := requireColumns(df); err != nil {
		return nil, err
	}
	return s.run("homoscedasticity", func() (*stats.ResultTable, error) { return inference.Homoscedasticity(df, dv, group, opts) })
}

// Anova runs a one-way ANOVA
func (s *StatsService) Anova(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error) {
	if err := requireColumns(df, "dv", dv, "between", between); err != nil {
		return nil, err
	}
	return s.run("anova", func() (*stats.ResultTable, error) { return inference.Anova(df, dv, between, opts) })
}

// WelchAnova runs Welch's ANOVA for unequal variances
func (s *StatsService) WelchAnova(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error) {
	if err := requireColumns(df, "dv", dv, "between", between); err != nil {
		return nil, err
	}
	return s.run("welch_anova", func() (*stats.ResultTable, error) { return inference.WelchAnova(df, dv, between, opts) })
}

// RMAnova runs a one-way repeated measures ANOVA
func (s *StatsService) RMAnova(df *dataset.DataFrame, dv, within, subject string, opts stats.Options) (*stats.ResultTable, error) {
	if err := requireColumns(df, "dv", dv, "within", within, "subject", subject); err != nil {
		return nil, err
	}
	return s.run("rm_anova", func() (*stats.ResultTable, error) { return inference.RMAnova(df, dv, within, subject, opts) })
}

// MixedAnova runs a split-plot ANOVA with one within and one between factor
func (s *StatsService) MixedAnova(df *dataset.DataFrame, dv, within, between, subject string, opts stats.Options) (*stats.ResultTable, error) {
	if err := requireColumns(df, "dv", dv, "within", within, "between", between, "subject", subject); err != nil {
		return nil, err
	}
	return s.run("mixed_anova", func() (*stats.ResultTable, error) {
		return inference.MixedAnova(df, dv, within, between, subject, opts)
	})
}

// Tukey runs Tukey's HSD without converting p-values
func (s *StatsService) Tukey(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error) {
	if err := requireColumns(df, "dv", dv, "between", between); err != nil {
		return nil, err
	}
	return s.run("tukey", func() (*stats.ResultTable, error) { return inference.PairwiseTukey(df, dv, between, opts) })
}

// GamesHowell runs the Games-Howell post-hoc test
func (s *StatsService) GamesHowell(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error) {
	if err := requireColumns(df, "dv", dv, "between", between); err != nil {
		return nil, err
	}
	return s.run("gameshowell", func() (*stats.ResultTable, error) { return inference.PairwiseGamesHowell(df, dv, between, opts) })
}

// PairwiseTests runs pairwise t-tests (or Mann-Whitney tests) between groups
func (s *StatsService) PairwiseTests(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error) {
	if err := requireColumns(df, "dv", dv, "between", between); err != nil {
		return nil, err
	}
	return s.run("pairwise_tests", func() (*stats.ResultTable, error) { return inference.PairwiseTests(df, dv, between, opts) })
}

// Describe summarizes dv per group. An empty group describes the whole column.
func (s *StatsService) Describe(df *dataset.DataFrame, dv, group string) (*stats.ResultTable, error) {
	if err := requireColumns(df, "dv", dv); err != nil {
		return nil, err
	}
	if group != "" {
		if err := requireColumns(df, "group", group); err != nil {
			return nil, err
		}
	}
	return s.run("describe", func() (*stats.ResultTable, error) { return inference.Describe(df, dv, group) })
}

func (s *StatsService) run(name string, fn func() (*stats.ResultTable, error)) (*stats.ResultTable, error) {
	table, err := fn()
	if err != nil {
		s.logger.Debug("%s failed: %v", name, err)
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	s.logger.Trace("%s returned %d rows", name, table.NumRows())
	return table, nil
}

func requireColumns(df *dataset.DataFrame, paramColumn ...string) error {
	if df == nil {
		return core.NewInsufficientDataError("dataset", "no dataset given")
	}
	return df.Require(paramColumn...)
}
