package inference

import (
	"math"
	"strconv"

	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
)

// ColumnTTests runs a t-test between every pair of numeric columns and lays
// the results out as a square matrix: T values below the diagonal, p-values
// (or significance stars) above it.
// Options: columns (list, default all numeric), paired (default true),
// stars (default false), decimals (default 4), alternative, correction.
func ColumnTTests(df *dataset.DataFrame, opts stats.Options) (*stats.ResultTable, error) {
	if err := opts.Check("columns", "paired", "stars", "decimals", "alternative", "correction"); err != nil {
		return nil, err
	}
	columns, err := opts.Strings("columns")
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		columns = df.NumericColumns()
	}
	paired, err := opts.Bool("paired", true)
	if err != nil {
		return nil, err
	}
	withStars, err := opts.Bool("stars", false)
	if err != nil {
		return nil, err
	}
	decimals, err := opts.Int("decimals", 4)
	if err != nil {
		return nil, err
	}
	if decimals < 0 {
		return nil, core.NewInvalidOptionError("decimals", "must not be negative")
	}
	alternative, err := opts.OneOf("alternative", TwoSided, alternatives...)
	if err != nil {
		return nil, err
	}
	correction, err := opts.OneOf("correction", CorrectionAuto, CorrectionAuto, CorrectionTrue, CorrectionFalse)
	if err != nil {
		return nil, err
	}

	if len(columns) < 2 {
		return nil, core.NewInsufficientDataError("ttest", "need at least 2 numeric columns")
	}
	data := make([][]float64, len(columns))
	for i, c := range columns {
		if data[i], err = df.Floats(c); err != nil {
			return nil, err
		}
	}

	header := append([]string{"Variable"}, columns...)
	table := stats.NewResultTable("ptests", header...)
	cells := make([][]interface{}, len(columns))
	for i := range cells {
		cells[i] = make([]interface{}, len(header))
		cells[i][0] = columns[i]
		cells[i][i+1] = "-"
	}

	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			x, y := dropMissing(data[i], data[j], paired)
			res, err := TTest(x, y, paired, alternative, correction)
			if err != nil {
				return nil, err
			}
			cells[j][i+1] = strconv.FormatFloat(res.T, 'f', decimals, 64)
			if withStars {
				cells[i][j+1] = pvalueStars(res.PValue)
			} else {
				cells[i][j+1] = strconv.FormatFloat(res.PValue, 'f', decimals, 64)
			}
		}
	}
	for _, row := range cells {
		table.AddRow(row...)
	}
	return table, nil
}

// dropMissing removes NaN values. Paired samples drop the whole pair.
func dropMissing(x, y []float64, paired bool) ([]float64, []float64) {
	if paired {
		var ox, oy []float64
		for i := range x {
			if i < len(y) && !math.IsNaN(x[i]) && !math.IsNaN(y[i]) {
				ox = append(ox, x[i])
				oy = append(oy, y[i])
			}
		}
		return ox, oy
	}
	return finite(x), finite(y)
}

func finite(v []float64) []float64 {
	out := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// pvalueStars marks significance in a matrix cell. Non-significant cells
// stay empty so the matrix reads cleanly.
func pvalueStars(p float64) string {
	switch {
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	}
	return ""
}
