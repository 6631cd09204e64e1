package inference

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
)

// MixedAnova runs a split-plot ANOVA with one between-subject factor and one
// within-subject factor. The table has a row for between, within and their
// interaction.
// Options: correction (auto|true|false).
func MixedAnova(df *dataset.DataFrame, dv, within, between, subject string, opts stats.Options) (*stats.ResultTable, error) {
	if err := opts.Check("correction"); err != nil {
		return nil, err
	}
	correction, err := opts.OneOf("correction", CorrectionAuto, CorrectionAuto, CorrectionTrue, CorrectionFalse)
	if err != nil {
		return nil, err
	}
	if err := df.Require("dv", dv, "within", within, "between", between, "subject", subject); err != nil {
		return nil, err
	}

	wide, err := df.Pivot(dv, within, subject, between)
	if err != nil {
		return nil, err
	}

	groupIdx := make(map[string][]int)
	for i, g := range wide.Between {
		groupIdx[g] = append(groupIdx[g], i)
	}
	groups := make([]string, 0, len(groupIdx))
	for g := range groupIdx {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	n, k, ng := len(wide.Data), len(wide.Levels), len(groups)
	if ng < 2 {
		return nil, core.NewInsufficientDataError("mixed_anova", fmt.Sprintf("need at least 2 %s groups, got %d", between, ng))
	}
	if n-ng < 1 {
		return nil, core.NewInsufficientDataError("mixed_anova", "no subject degrees of freedom")
	}

	grand := 0.0
	levelMeans := make([]float64, k)
	subjectMeans := make([]float64, n)
	for i, row := range wide.Data {
		subjectMeans[i] = stat.Mean(row, nil)
		for j, v := range row {
			grand += v
			levelMeans[j] += v / float64(n)
		}
	}
	grand /= float64(n * k)

	total := 0.0
	for _, row := range wide.Data {
		for _, v := range row {
			total += (v - grand) * (v - grand)
		}
	}

	var ssBetween, ssSubjects, ssWithin, ssInter float64
	for _, m := range levelMeans {
		ssWithin += float64(n) * (m - grand) * (m - grand)
	}
	for _, g := range groups {
		members := groupIdx[g]
		size := float64(len(members))
		groupMean := 0.0
		cellMeans := make([]float64, k)
		for _, i := range members {
			groupMean += subjectMeans[i] / size
			for j, v := range wide.Data[i] {
				cellMeans[j] += v / size
			}
		}
		ssBetween += float64(k) * size * (groupMean - grand) * (groupMean - grand)
		for _, i := range members {
			d := subjectMeans[i] - groupMean
			ssSubjects += float64(k) * d * d
		}
		for j, cm := range cellMeans {
			d := cm - groupMean - levelMeans[j] + grand
			ssInter += size * d * d
		}
	}
	ssError := total - ssBetween - ssSubjects - ssWithin - ssInter

	dfBetween := float64(ng - 1)
	dfSubjects := float64(n - ng)
	dfWithin := float64(k - 1)
	dfInter := dfBetween * dfWithin
	dfError := dfSubjects * dfWithin

	msBetween, msWithin, msInter := ssBetween/dfBetween, ssWithin/dfWithin, ssInter/dfInter
	msSubjects, msError := ssSubjects/dfSubjects, ssError/dfError

	fBetween := msBetween / msSubjects
	fWithin := msWithin / msError
	fInter := msInter / msError

	sp := Mauchly(wide.Data, 0.05)
	corrected := correction == CorrectionTrue || (correction == CorrectionAuto && k > 2)

	columns := []string{stats.ColSource, "SS", "DF1", "DF2", "MS", "F", stats.ColPUnc, "np2", "eps"}
	if corrected {
		columns = append(columns, "p-GG-corr", "sphericity", "W-spher", "p-spher")
	}
	table := stats.NewResultTable("mixed_anova", columns...)

	nan := math.NaN()
	rows := [][]interface{}{
		{between, ssBetween, int(dfBetween), int(dfSubjects), msBetween, fBetween,
			fPValue(fBetween, dfBetween, dfSubjects), ssBetween / (ssBetween + ssSubjects), nan},
		{within, ssWithin, int(dfWithin), int(dfError), msWithin, fWithin,
			fPValue(fWithin, dfWithin, dfError), ssWithin / (ssWithin + ssError), sp.Epsilon},
		{"Interaction", ssInter, int(dfInter), int(dfError), msInter, fInter,
			fPValue(fInter, dfInter, dfError), ssInter / (ssInter + ssError), nan},
	}
	if corrected {
		rows[0] = append(rows[0], nan, nil, nan, nan)
		rows[1] = append(rows[1], fPValue(fWithin, dfWithin*sp.Epsilon, dfError*sp.Epsilon), sp.Spherical, sp.W, sp.PValue)
		rows[2] = append(rows[2], nan, nil, nan, nan)
	}
	for _, r := range rows {
		table.AddRow(r...)
	}
	return table, nil
}
