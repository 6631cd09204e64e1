package inference

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
)

// PairwiseTukey runs Tukey's honestly significant difference test on every
// pair of between levels. Levels are compared in sorted order.
// Options: effsize (none|cohen|hedges, default hedges).
func PairwiseTukey(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error) {
	if err := opts.Check("effsize"); err != nil {
		return nil, err
	}
	effsize, err := opts.OneOf("effsize", EffsizeHedges, effsizes...)
	if err != nil {
		return nil, err
	}

	groups, err := groupsFor(df, dv, between)
	if err != nil {
		return nil, err
	}
	aov, err := OneWayAnova(groups)
	if err != nil {
		return nil, err
	}
	if aov.DFWithin < 1 {
		return nil, core.NewInsufficientDataError("tukey", "need at least 1 residual degree of freedom")
	}

	columns := []string{stats.ColA, stats.ColB, "mean(A)", "mean(B)", "diff", "se", "T", stats.ColPTukey}
	if effsize != EffsizeNone {
		columns = append(columns, effsize)
	}
	table := stats.NewResultTable("pairwise_tukey", columns...)

	k := float64(len(groups))
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			gi, gj := groups[i], groups[j]
			mi := stat.Mean(gi.Values, nil)
			mj := stat.Mean(gj.Values, nil)
			diff := mi - mj
			se := math.Sqrt(aov.MSWithin/float64(len(gi.Values)) + aov.MSWithin/float64(len(gj.Values)))
			t := diff / se
			p := StudentizedRangeSurvival(math.Sqrt2*math.Abs(t), k, aov.DFWithin)
			if math.IsNaN(p) {
				return nil, core.NewInsufficientDataError("tukey",
					fmt.Sprintf("no p-value for %s-%s (se %g)", gi.Label, gj.Label, se))
			}

			row := []interface{}{gi.Label, gj.Label, mi, mj, diff, se, t, p}
			if effsize != EffsizeNone {
				row = append(row, EffectSize(gi.Values, gj.Values, false, effsize))
			}
			table.AddRow(row...)
		}
	}
	return table, nil
}

// PairwiseGamesHowell runs the Games-Howell post-hoc test, which does not
// assume equal group variances.
// Options: effsize (none|cohen|hedges, default hedges).
func PairwiseGamesHowell(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error) {
	if err := opts.Check("effsize"); err != nil {
		return nil, err
	}
	effsize, err := opts.OneOf("effsize", EffsizeHedges, effsizes...)
	if err != nil {
		return nil, err
	}

	groups, err := groupsFor(df, dv, between)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		if len(g.Values) < 2 {
			return nil, core.NewInsufficientDataError("gameshowell", "group "+g.Label+" has fewer than 2 values")
		}
	}

	columns := []string{stats.ColA, stats.ColB, "mean(A)", "mean(B)", "diff", "se", "T", "df", stats.ColPVal}
	if effsize != EffsizeNone {
		columns = append(columns, effsize)
	}
	table := stats.NewResultTable("pairwise_gameshowell", columns...)

	k := float64(len(groups))
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			gi, gj := groups[i], groups[j]
			ni, nj := float64(len(gi.Values)), float64(len(gj.Values))
			mi, vi := stat.MeanVariance(gi.Values, nil)
			mj, vj := stat.MeanVariance(gj.Values, nil)
			ai, aj := vi/ni, vj/nj

			diff := mi - mj
			se := math.Sqrt(ai + aj)
			t := diff / se
			dof := (ai + aj) * (ai + aj) / (ai*ai/(ni-1) + aj*aj/(nj-1))
			p := StudentizedRangeSurvival(math.Sqrt2*math.Abs(t), k, dof)
			if math.IsNaN(p) {
				return nil, core.NewInsufficientDataError("gameshowell",
					fmt.Sprintf("no p-value for %s-%s (se %g, df %g)", gi.Label, gj.Label, se, dof))
			}

			row := []interface{}{gi.Label, gj.Label, mi, mj, diff, se, t, dof, p}
			if effsize != EffsizeNone {
				row = append(row, EffectSize(gi.Values, gj.Values, false, effsize))
			}
			table.AddRow(row...)
		}
	}
	return table, nil
}
