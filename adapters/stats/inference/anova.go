package inference

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
)

// AnovaResult is a one-way analysis of variance decomposition
type AnovaResult struct {
	SSBetween float64
	SSWithin  float64
	DFBetween float64
	DFWithin  float64
	MSBetween float64
	MSWithin  float64
	F         float64
	PValue    float64
	NP2       float64
}

// OneWayAnova partitions the variance of the pooled groups
func OneWayAnova(groups []dataset.Group) (AnovaResult, error) {
	var res AnovaResult
	if len(groups) < 2 {
		return res, core.NewInsufficientDataError("anova", fmt.Sprintf("need at least 2 groups, got %d", len(groups)))
	}

	var all []float64
	for _, g := range groups {
		if len(g.Values) == 0 {
			return res, core.NewInsufficientDataError("anova", "group "+g.Label+" is empty")
		}
		all = append(all, g.Values...)
	}
	grand := stat.Mean(all, nil)

	for _, g := range groups {
		m := stat.Mean(g.Values, nil)
		res.SSBetween += float64(len(g.Values)) * (m - grand) * (m - grand)
		for _, v := range g.Values {
			res.SSWithin += (v - m) * (v - m)
		}
	}

	res.DFBetween = float64(len(groups) - 1)
	res.DFWithin = float64(len(all) - len(groups))
	if res.DFWithin < 1 {
		return res, core.NewInsufficientDataError("anova", "no residual degrees of freedom")
	}
	res.MSBetween = res.SSBetween / res.DFBetween
	res.MSWithin = res.SSWithin / res.DFWithin
	res.F = res.MSBetween / res.MSWithin
	res.PValue = fPValue(res.F, res.DFBetween, res.DFWithin)
	res.NP2 = res.SSBetween / (res.SSBetween + res.SSWithin)
	return res, nil
}

// Anova runs a one-way ANOVA of dv across the levels of between.
// Options: detailed (bool), effsize (np2|n2).
func Anova(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error) {
	if err := opts.Check("detailed", "effsize"); err != nil {
		return nil, err
	}
	detailed, err := opts.Bool("detailed", false)
	if err != nil {
		return nil, err
	}
	effsize, err := opts.OneOf("effsize", "np2", "np2", "n2")
	if err != nil {
		return nil, err
	}

	groups, err := groupsFor(df, dv, between)
	if err != nil {
		return nil, err
	}
	res, err := OneWayAnova(groups)
	if err != nil {
		return nil, err
	}

	if !detailed {
		table := stats.NewResultTable("anova", stats.ColSource, "ddof1", "ddof2", "F", stats.ColPUnc, effsize)
		table.AddRow(between, int(res.DFBetween), int(res.DFWithin), res.F, res.PValue, res.NP2)
		return table, nil
	}

	table := stats.NewResultTable("anova", stats.ColSource, "SS", "DF", "MS", "F", stats.ColPUnc, effsize)
	table.AddRow(between, res.SSBetween, int(res.DFBetween), res.MSBetween, res.F, res.PValue, res.NP2)
	table.AddRow("Within", res.SSWithin, int(res.DFWithin), res.MSWithin, math.NaN(), math.NaN(), math.NaN())
	return table, nil
}

// WelchAnova runs a one-way ANOVA that does not assume equal variances
func WelchAnova(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error) {
	if err := opts.Check(); err != nil {
		return nil, err
	}
	groups, err := groupsFor(df, dv, between)
	if err != nil {
		return nil, err
	}
	classic, err := OneWayAnova(groups)
	if err != nil {
		return nil, err
	}

	k := float64(len(groups))
	weights := make([]float64, len(groups))
	means := make([]float64, len(groups))
	sumW := 0.0
	for i, g := range groups {
		if len(g.Values) < 2 {
			return nil, core.NewInsufficientDataError("welch anova", "group "+g.Label+" has fewer than 2 values")
		}
		m, v := stat.MeanVariance(g.Values, nil)
		if v == 0 {
			return nil, core.NewInsufficientDataError("welch anova", "group "+g.Label+" has zero variance")
		}
		means[i] = m
		weights[i] = float64(len(g.Values)) / v
		sumW += weights[i]
	}
	adjMean := stat.Mean(means, weights)

	a, tmp := 0.0, 0.0
	for i, g := range groups {
		a += weights[i] * (means[i] - adjMean) * (means[i] - adjMean)
		r := 1 - weights[i]/sumW
		tmp += r * r / float64(len(g.Values)-1)
	}
	a /= k - 1
	b := 1 + 2*(k-2)/(k*k-1)*tmp
	f := a / b
	ddof2 := (k*k - 1) / (3 * tmp)

	table := stats.NewResultTable("welch_anova", stats.ColSource, "ddof1", "ddof2", "F", stats.ColPUnc, "np2")
	table.AddRow(between, int(k-1), ddof2, f, fPValue(f, k-1, ddof2), classic.NP2)
	return table, nil
}

// groupsFor validates the columns and splits dv by between in sorted label order
func groupsFor(df *dataset.DataFrame, dv, between string) ([]dataset.Group, error) {
	if err := df.Require("dv", dv, "between", between); err != nil {
		return nil, err
	}
	groups, err := df.GroupValues(dv, between, dataset.OrderSorted)
	if err != nil {
		return nil, err
	}
	if len(groups) < 2 {
		return nil, core.NewInsufficientDataError(between, fmt.Sprintf("need at least 2 groups, got %d", len(groups)))
	}
	return groups, nil
}
