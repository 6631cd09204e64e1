package inference

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
)

// RMAnovaResult is a one-way repeated-measures decomposition
type RMAnovaResult struct {
	SSEffect   float64
	SSSubject  float64
	SSError    float64
	DFEffect   float64
	DFError    float64
	F          float64
	PValue     float64
	NG2        float64
	Sphericity SphericityResult
	PValueGG   float64
}

// OneWayRMAnova analyses a subjects by levels table
func OneWayRMAnova(data [][]float64) (RMAnovaResult, error) {
	var res RMAnovaResult
	n := len(data)
	if n < 2 {
		return res, core.NewInsufficientDataError("rm_anova", "need at least 2 subjects")
	}
	k := len(data[0])
	if k < 2 {
		return res, core.NewInsufficientDataError("rm_anova", "need at least 2 within levels")
	}

	levelMeans := make([]float64, k)
	subjectMeans := make([]float64, n)
	grand := 0.0
	for i, row := range data {
		subjectMeans[i] = stat.Mean(row, nil)
		for j, v := range row {
			levelMeans[j] += v / float64(n)
			grand += v
		}
	}
	grand /= float64(n * k)

	total := 0.0
	for _, row := range data {
		for _, v := range row {
			total += (v - grand) * (v - grand)
		}
	}
	for _, m := range levelMeans {
		res.SSEffect += float64(n) * (m - grand) * (m - grand)
	}
	for _, m := range subjectMeans {
		res.SSSubject += float64(k) * (m - grand) * (m - grand)
	}
	res.SSError = total - res.SSEffect - res.SSSubject

	res.DFEffect = float64(k - 1)
	res.DFError = float64((k - 1) * (n - 1))
	res.F = (res.SSEffect / res.DFEffect) / (res.SSError / res.DFError)
	res.PValue = fPValue(res.F, res.DFEffect, res.DFError)
	res.NG2 = res.SSEffect / (res.SSEffect + res.SSSubject + res.SSError)

	res.Sphericity = Mauchly(data, 0.05)
	eps := res.Sphericity.Epsilon
	res.PValueGG = fPValue(res.F, res.DFEffect*eps, res.DFError*eps)
	return res, nil
}

// RMAnova runs a one-way repeated-measures ANOVA of dv across the levels of
// within, matching rows by subject. Subjects without a value for every level
// are dropped.
// Options: correction (auto|true|false), detailed (bool).
func RMAnova(df *dataset.DataFrame, dv, within, subject string, opts stats.Options) (*stats.ResultTable, error) {
	if err := opts.Check("correction", "detailed"); err != nil {
		return nil, err
	}
	correction, err := opts.OneOf("correction", CorrectionAuto, CorrectionAuto, CorrectionTrue, CorrectionFalse)
	if err != nil {
		return nil, err
	}
	detailed, err := opts.Bool("detailed", false)
	if err != nil {
		return nil, err
	}
	if err := df.Require("dv", dv, "within", within, "subject", subject); err != nil {
		return nil, err
	}

	wide, err := df.Pivot(dv, within, subject, "")
	if err != nil {
		return nil, err
	}
	res, err := OneWayRMAnova(wide.Data)
	if err != nil {
		return nil, err
	}
	eps := res.Sphericity.Epsilon

	if detailed {
		table := stats.NewResultTable("rm_anova", stats.ColSource, "SS", "DF", "MS", "F", stats.ColPUnc, "ng2", "eps")
		table.AddRow(within, res.SSEffect, int(res.DFEffect), res.SSEffect/res.DFEffect, res.F, res.PValue, res.NG2, eps)
		table.AddRow("Error", res.SSError, int(res.DFError), res.SSError/res.DFError, math.NaN(), math.NaN(), math.NaN(), math.NaN())
		return table, nil
	}

	corrected := correction == CorrectionTrue || (correction == CorrectionAuto && len(wide.Levels) > 2)
	columns := []string{stats.ColSource, "ddof1", "ddof2", "F", stats.ColPUnc}
	row := []interface{}{within, int(res.DFEffect), int(res.DFError), res.F, res.PValue}
	if corrected {
		columns = append(columns, "p-GG-corr")
		row = append(row, res.PValueGG)
	}
	columns = append(columns, "ng2", "eps")
	row = append(row, res.NG2, eps)
	if corrected {
		sp := res.Sphericity
		columns = append(columns, "sphericity", "W-spher", "p-spher")
		row = append(row, sp.Spherical, sp.W, sp.PValue)
	}

	table := stats.NewResultTable("rm_anova", columns...)
	table.AddRow(row...)
	return table, nil
}
