package inference

import (
	"py50/domain/dataset"
	"py50/domain/stats"
)

// PairwiseTests runs a two-sample test on every pair of between levels.
// Options: parametric (bool, default true), alternative, correction
// (auto|true|false), padjust (none|bonf|holm|fdr_bh), effsize.
func PairwiseTests(df *dataset.DataFrame, dv, between string, opts stats.Options) (*stats.ResultTable, error) {
	if err := opts.Check("parametric", "alternative", "correction", "padjust", "effsize"); err != nil {
		return nil, err
	}
	parametric, err := opts.Bool("parametric", true)
	if err != nil {
		return nil, err
	}
	alternative, err := opts.OneOf("alternative", TwoSided, alternatives...)
	if err != nil {
		return nil, err
	}
	correction, err := opts.OneOf("correction", CorrectionAuto, CorrectionAuto, CorrectionTrue, CorrectionFalse)
	if err != nil {
		return nil, err
	}
	padjust, err := opts.OneOf("padjust", PAdjustNone, padjustMethods...)
	if err != nil {
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

	statCol := "T"
	if !parametric {
		statCol = "U-val"
	}
	columns := []string{stats.ColContrast, stats.ColA, stats.ColB, "Paired", "Parametric", statCol}
	if parametric {
		columns = append(columns, "dof")
	}
	columns = append(columns, "alternative", stats.ColPUnc)

	type rowData struct {
		a, b      string
		statistic float64
		dof       float64
		p         float64
		ef        float64
	}
	var rows []rowData
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			gi, gj := groups[i], groups[j]
			r := rowData{a: gi.Label, b: gj.Label}
			if parametric {
				tt, err := TTest(gi.Values, gj.Values, false, alternative, correction)
				if err != nil {
					return nil, err
				}
				r.statistic, r.dof, r.p = tt.T, tt.DoF, tt.PValue
			} else {
				mw, err := MannWhitneyU(gi.Values, gj.Values, alternative)
				if err != nil {
					return nil, err
				}
				r.statistic, r.p = mw.U, mw.PValue
			}
			r.ef = EffectSize(gi.Values, gj.Values, false, effsize)
			rows = append(rows, r)
		}
	}

	var adjusted []float64
	if padjust != PAdjustNone {
		columns = append(columns, stats.ColPCorr, "p-adjust")
		raw := make([]float64, len(rows))
		for i, r := range rows {
			raw[i] = r.p
		}
		adjusted = AdjustPValues(raw, padjust)
	}
	if effsize != EffsizeNone {
		columns = append(columns, effsize)
	}

	table := stats.NewResultTable("pairwise_tests", columns...)
	for i, r := range rows {
		row := []interface{}{between, r.a, r.b, false, parametric, r.statistic}
		if parametric {
			row = append(row, r.dof)
		}
		row = append(row, alternative, r.p)
		if adjusted != nil {
			row = append(row, adjusted[i], padjust)
		}
		if effsize != EffsizeNone {
			row = append(row, r.ef)
		}
		table.AddRow(row...)
	}
	return table, nil
}
