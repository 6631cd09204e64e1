package inference

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
)

// Homoscedasticity test methods
const (
	MethodLevene   = "levene"
	MethodBartlett = "bartlett"
)

// Levene computes Levene's W for equality of variances. center selects the
// location used for absolute deviations: "median" (Brown-Forsythe) or "mean".
func Levene(groups []dataset.Group, center string) (float64, float64, error) {
	k := len(groups)
	if k < 2 {
		return math.NaN(), math.NaN(), core.NewInsufficientDataError("levene", "need at least 2 groups")
	}

	devs := make([][]float64, k)
	var all []float64
	for i, g := range groups {
		if len(g.Values) == 0 {
			return math.NaN(), math.NaN(), core.NewInsufficientDataError("levene", "group "+g.Label+" is empty")
		}
		var loc float64
		if center == "mean" {
			loc = stat.Mean(g.Values, nil)
		} else {
			m, err := mstats.Median(g.Values)
			if err != nil {
				return math.NaN(), math.NaN(), fmt.Errorf("levene median of %s: %w", g.Label, err)
			}
			loc = m
		}
		devs[i] = make([]float64, len(g.Values))
		for j, v := range g.Values {
			devs[i][j] = math.Abs(v - loc)
		}
		all = append(all, devs[i]...)
	}

	n := float64(len(all))
	grand := stat.Mean(all, nil)
	num, den := 0.0, 0.0
	for _, d := range devs {
		m := stat.Mean(d, nil)
		num += float64(len(d)) * (m - grand) * (m - grand)
		for _, v := range d {
			den += (v - m) * (v - m)
		}
	}
	df1, df2 := float64(k-1), n-float64(k)
	if df2 < 1 {
		return math.NaN(), math.NaN(), core.NewInsufficientDataError("levene", "no residual degrees of freedom")
	}
	w := (df2 / df1) * num / den
	return w, fPValue(w, df1, df2), nil
}

// Bartlett computes Bartlett's T statistic for equality of variances
func Bartlett(groups []dataset.Group) (float64, float64, error) {
	k := float64(len(groups))
	if k < 2 {
		return math.NaN(), math.NaN(), core.NewInsufficientDataError("bartlett", "need at least 2 groups")
	}

	n, sumLog, pooled, inv := 0.0, 0.0, 0.0, 0.0
	for _, g := range groups {
		ni := float64(len(g.Values))
		if ni < 2 {
			return math.NaN(), math.NaN(), core.NewInsufficientDataError("bartlett", "group "+g.Label+" has fewer than 2 values")
		}
		v := stat.Variance(g.Values, nil)
		n += ni
		sumLog += (ni - 1) * math.Log(v)
		pooled += (ni - 1) * v
		inv += 1 / (ni - 1)
	}
	pooled /= n - k
	num := (n-k)*math.Log(pooled) - sumLog
	den := 1 + (inv-1/(n-k))/(3*(k-1))
	t := num / den
	return t, chiSquarePValue(t, k-1), nil
}

// Homoscedasticity tests whether the groups of dv share a common variance.
// Without a group every numeric column is treated as one group.
// Options: method (levene|bartlett), center (median|mean), alpha.
func Homoscedasticity(df *dataset.DataFrame, dv, group string, opts stats.Options) (*stats.ResultTable, error) {
	if err := opts.Check("method", "center", "alpha"); err != nil {
		return nil, err
	}
	method, err := opts.OneOf("method", MethodLevene, MethodLevene, MethodBartlett)
	if err != nil {
		return nil, err
	}
	center, err := opts.OneOf("center", "median", "median", "mean")
	if err != nil {
		return nil, err
	}
	alpha, err := opts.Float("alpha", 0.05)
	if err != nil {
		return nil, err
	}

	var groups []dataset.Group
	if group != "" {
		if err := df.Require("dv", dv, "group", group); err != nil {
			return nil, err
		}
		if groups, err = df.GroupValues(dv, group, dataset.OrderFirstSeen); err != nil {
			return nil, err
		}
	} else {
		if dv != "" {
			return nil, core.NewColumnNotFoundError("group", group)
		}
		for _, c := range df.NumericColumns() {
			values, _ := df.Floats(c)
			groups = append(groups, dataset.Group{Label: c, Values: finite(values)})
		}
	}

	if method == MethodBartlett {
		t, p, err := Bartlett(groups)
		if err != nil {
			return nil, err
		}
		table := stats.NewResultTable("homoscedasticity", "Method", "T", stats.ColPVal, "equal_var")
		table.AddRow(method, t, p, p > alpha)
		return table, nil
	}

	w, p, err := Levene(groups, center)
	if err != nil {
		return nil, err
	}
	table := stats.NewResultTable("homoscedasticity", "Method", "W", stats.ColPVal, "equal_var")
	table.AddRow(method, w, p, p > alpha)
	return table, nil
}
