package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"py50/domain/dataset"
	"py50/domain/stats"
	"py50/internal/errors"
)

// tableFunc runs one analysis on a loaded data frame
type tableFunc func(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error)

// runTable loads the data, runs fn and emits its table
func (e *env) runTable(cmd *cobra.Command, o *outputFlags, title string, fn tableFunc) error {
	opts, err := o.parsedOptions()
	if err != nil {
		return err
	}
	df, err := e.loadData()
	if err != nil {
		return err
	}
	table, err := fn(df, opts)
	if err != nil {
		return err
	}
	return e.emit(cmd, o, result{title: title, table: table})
}

func newDispatchCmd(e *env) *cobra.Command {
	var dv, between string
	o := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "dispatch [tukey|gameshowell|ptest]",
		Short: "Run a pairwise test and print significance symbols",
		Long: `Run the pairwise test used for plot annotation and print the result table
with one significance symbol per comparison:
  p < 0.001 ***, p < 0.01 **, p < 0.05 *, otherwise ns

Example: py50 dispatch tukey --data data.csv --dv score --between group -o effsize=cohen`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := o.parsedOptions()
			if err != nil {
				return err
			}
			df, err := e.loadData()
			if err != nil {
				return err
			}
			symbols, table, err := e.stats.Dispatch(args[0], df, dv, between, opts)
			if err != nil {
				return err
			}
			return e.emit(cmd, o, result{title: fmt.Sprintf("%s: %s by %s", args[0], dv, between), table: table, symbols: symbols})
		},
	}

	cmd.Flags().StringVar(&dv, "dv", "", "Dependent variable column")
	cmd.Flags().StringVar(&between, "between", "", "Grouping column")
	o.register(cmd)
	return cmd
}

func newTTestCmd(e *env) *cobra.Command {
	var columns []string
	o := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "ttest",
		Short: "T-test every pair of numeric columns",
		Long: `Run a t-test between every pair of numeric columns and print the matrix:
T values below the diagonal, p-values above it.

Options: paired (default true), stars, decimals, alternative, correction.

Example: py50 ttest --data wide.csv --columns before,after -o paired=true -o stars=true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTable(cmd, o, "t-tests", func(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error) {
				if len(columns) > 0 {
					opts = opts.With("columns", columns)
				}
				return e.stats.TTest(df, opts)
			})
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to compare (default: all numeric)")
	o.register(cmd)
	return cmd
}

func newNormalityCmd(e *env) *cobra.Command {
	var dv, group string
	o := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "normality",
		Short: "Test normality per group",
		Long: `Test whether dv is normally distributed in every group. Without --dv every
numeric column is tested.

Options: method (shapiro|jarque_bera), alpha.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTable(cmd, o, "normality", func(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error) {
				return e.stats.Normality(df, dv, group, opts)
			})
		},
	}

	cmd.Flags().StringVar(&dv, "dv", "", "Dependent variable column")
	cmd.Flags().StringVar(&group, "group", "", "Grouping column")
	o.register(cmd)
	return cmd
}

func newHomoscedasticityCmd(e *env) *cobra.Command {
	var dv, group string
	o := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "homoscedasticity",
		Short: "Test equality of variances across groups",
		Long: `Test whether the groups share a common variance.

Options: method (levene|bartlett), center (median|mean), alpha.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTable(cmd, o, "homoscedasticity", func(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error) {
				return e.stats.Homoscedasticity(df, dv, group, opts)
			})
		},
	}

	cmd.Flags().StringVar(&dv, "dv", "", "Dependent variable column")
	cmd.Flags().StringVar(&group, "group", "", "Grouping column")
	o.register(cmd)
	return cmd
}

func newAnovaCmd(e *env) *cobra.Command {
	var dv, between string
	var welch bool
	o := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "anova",
		Short: "One-way ANOVA",
		Long: `Run a one-way ANOVA of dv across the levels of between.

Options: detailed, effsize (np2|n2). --welch runs Welch's ANOVA instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := "anova"
			if welch {
				title = "welch anova"
			}
			return e.runTable(cmd, o, title, func(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error) {
				if welch {
					return e.stats.WelchAnova(df, dv, between, opts)
				}
				return e.stats.Anova(df, dv, between, opts)
			})
		},
	}

	cmd.Flags().StringVar(&dv, "dv", "", "Dependent variable column")
	cmd.Flags().StringVar(&between, "between", "", "Grouping column")
	cmd.Flags().BoolVar(&welch, "welch", false, "Use Welch's ANOVA for unequal variances")
	o.register(cmd)
	return cmd
}

func newRMAnovaCmd(e *env) *cobra.Command {
	var dv, within, subject string
	o := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "rm-anova",
		Short: "One-way repeated measures ANOVA",
		Long: `Run a repeated measures ANOVA on long-format data with Greenhouse-Geisser
correction and Mauchly's sphericity test.

Options: correction (auto|true|false), detailed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTable(cmd, o, "repeated measures anova", func(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error) {
				return e.stats.RMAnova(df, dv, within, subject, opts)
			})
		},
	}

	cmd.Flags().StringVar(&dv, "dv", "", "Dependent variable column")
	cmd.Flags().StringVar(&within, "within", "", "Within-subject factor column")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject identifier column")
	o.register(cmd)
	return cmd
}

func newMixedAnovaCmd(e *env) *cobra.Command {
	var dv, within, between, subject string
	o := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "mixed-anova",
		Short: "Split-plot ANOVA with one within and one between factor",
		Long: `Run a mixed ANOVA on long-format data.

Options: correction (auto|true|false).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTable(cmd, o, "mixed anova", func(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error) {
				return e.stats.MixedAnova(df, dv, within, between, subject, opts)
			})
		},
	}

	cmd.Flags().StringVar(&dv, "dv", "", "Dependent variable column")
	cmd.Flags().StringVar(&within, "within", "", "Within-subject factor column")
	cmd.Flags().StringVar(&between, "between", "", "Between-subject factor column")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject identifier column")
	o.register(cmd)
	return cmd
}

func newPosthocCmd(e *env) *cobra.Command {
	var dv, between string
	o := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "posthoc [tukey|gameshowell|pairwise]",
		Short: "Pairwise post-hoc comparisons",
		Long: `Compare every pair of groups and print the raw table.

tukey and gameshowell accept effsize (none|cohen|hedges). pairwise accepts
parametric, alternative, correction, padjust (none|bonf|holm|fdr_bh) and effsize.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"tukey", "gameshowell", "pairwise"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var fn func(*dataset.DataFrame, string, string, stats.Options) (*stats.ResultTable, error)
			switch strings.ToLower(args[0]) {
			case "tukey":
				fn = e.stats.Tukey
			case "gameshowell":
				fn = e.stats.GamesHowell
			case "pairwise":
				fn = e.stats.PairwiseTests
			default:
				return errors.InvalidInput(fmt.Sprintf("unknown post-hoc test %q (use tukey, gameshowell or pairwise)", args[0]))
			}
			return e.runTable(cmd, o, args[0], func(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error) {
				return fn(df, dv, between, opts)
			})
		},
	}

	cmd.Flags().StringVar(&dv, "dv", "", "Dependent variable column")
	cmd.Flags().StringVar(&between, "between", "", "Grouping column")
	o.register(cmd)
	return cmd
}

func newDescribeCmd(e *env) *cobra.Command {
	var dv, group string
	o := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Descriptive statistics per group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTable(cmd, o, "describe "+dv, func(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error) {
				if len(opts) > 0 {
					return nil, errors.InvalidInput("describe takes no options")
				}
				return e.stats.Describe(df, dv, group)
			})
		},
	}

	cmd.Flags().StringVar(&dv, "dv", "", "Column to describe")
	cmd.Flags().StringVar(&group, "group", "", "Grouping column")
	o.register(cmd)
	return cmd
}
