package inference

import (
	"fmt"

	mstats "github.com/montanaflynn/stats"

	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
)

// Summary holds descriptive statistics of one sample
type Summary struct {
	N      int
	Mean   float64
	Std    float64
	Median float64
	Min    float64
	Max    float64
}

// Summarize describes a sample. The standard deviation uses n-1 and is zero
// for a single value.
func Summarize(values []float64) (Summary, error) {
	s := Summary{N: len(values)}
	if s.N == 0 {
		return s, core.NewInsufficientDataError("describe", "no values")
	}
	var err error
	if s.Mean, err = mstats.Mean(values); err != nil {
		return s, err
	}
	if s.N > 1 {
		if s.Std, err = mstats.StandardDeviationSample(values); err != nil {
			return s, err
		}
	}
	if s.Median, err = mstats.Median(values); err != nil {
		return s, err
	}
	if s.Min, err = mstats.Min(values); err != nil {
		return s, err
	}
	if s.Max, err = mstats.Max(values); err != nil {
		return s, err
	}
	return s, nil
}

// Describe summarizes dv per group in first-seen order, or the whole column
// when group is empty.
func Describe(df *dataset.DataFrame, dv, group string) (*stats.ResultTable, error) {
	var samples []dataset.Group
	label := "Variable"
	if group != "" {
		if err := df.Require("dv", dv, "group", group); err != nil {
			return nil, err
		}
		var err error
		if samples, err = df.GroupValues(dv, group, dataset.OrderFirstSeen); err != nil {
			return nil, err
		}
		label = group
	} else {
		if err := df.Require("dv", dv); err != nil {
			return nil, err
		}
		values, err := df.Floats(dv)
		if err != nil {
			return nil, err
		}
		samples = []dataset.Group{{Label: dv, Values: finite(values)}}
	}

	table := stats.NewResultTable("describe", label, "n", "mean", "std", "median", "min", "max")
	for _, g := range samples {
		s, err := Summarize(g.Values)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", label, g.Label, err)
		}
		table.AddRow(g.Label, s.N, s.Mean, s.Std, s.Median, s.Min, s.Max)
	}
	return table, nil
}
