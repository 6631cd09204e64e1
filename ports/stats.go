package ports

import (
	"py50/domain/dataset"
	"py50/domain/stats"
)

// TestDispatcherPort runs the pairwise test selected for plot annotation and
// returns one significance symbol per result row.
type TestDispatcherPort interface {
	Dispatch(test string, df *dataset.DataFrame, dv, between string, opts stats.Options) ([]string, *stats.ResultTable, error)
}

// InferencePort forwards a dataset to the statistics routines. Tables are
// returned as computed.
type InferencePort interface {
	TestDispatcherPort

	TTest(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error)
	Normality(df *dataset.DataFrame, dv, group string, opts stats.Options) (*stats.ResultTable, error)
	Homoscedasticity(df *dataset.DataFrame, dv, group string, opts stats.Options) (*stats.ResultTable, error)
	Anova(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error)
	WelchAnova(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error)
	RMAnova(df *dataset.DataFrame, dv, within, subject string, opts stats.Options) (*stats.ResultTable, error)
	MixedAnova(df *dataset.DataFrame, dv, within, between, subject string, opts stats.Options) (*stats.ResultTable, error)
	Tukey(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error)
	GamesHowell(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error)
	PairwiseTests(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error)
	Describe(df *dataset.DataFrame, dv, group string) (*stats.ResultTable, error)
}
