package inference

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"py50/domain/core"
)

// TTestResult holds the outcome of a two-sample or paired t-test
type TTestResult struct {
	T           float64
	DoF         float64
	Alternative string
	PValue      float64
	Welch       bool
}

// Correction modes for unequal variances
const (
	CorrectionAuto  = "auto"
	CorrectionTrue  = "true"
	CorrectionFalse = "false"
)

// TTest compares the means of x and y. With correction "auto" Welch's
// correction is applied whenever the sample sizes differ.
func TTest(x, y []float64, paired bool, alternative, correction string) (TTestResult, error) {
	res := TTestResult{Alternative: alternative}
	nx, ny := float64(len(x)), float64(len(y))

	if paired {
		if len(x) != len(y) {
			return res, core.NewInsufficientDataError("paired t-test", "samples have different lengths")
		}
		if len(x) < 2 {
			return res, core.NewInsufficientDataError("paired t-test", "need at least 2 pairs")
		}
		d := make([]float64, len(x))
		for i := range x {
			d[i] = x[i] - y[i]
		}
		mean, variance := stat.MeanVariance(d, nil)
		res.T = mean / math.Sqrt(variance/nx)
		res.DoF = nx - 1
		res.PValue = tPValue(res.T, res.DoF, alternative)
		return res, nil
	}

	if len(x) < 2 || len(y) < 2 {
		return res, core.NewInsufficientDataError("t-test", "need at least 2 observations per sample")
	}

	mx, vx := stat.MeanVariance(x, nil)
	my, vy := stat.MeanVariance(y, nil)

	switch correction {
	case CorrectionTrue:
		res.Welch = true
	case CorrectionAuto:
		res.Welch = len(x) != len(y)
	}

	if res.Welch {
		ax, ay := vx/nx, vy/ny
		res.T = (mx - my) / math.Sqrt(ax+ay)
		res.DoF = (ax + ay) * (ax + ay) / (ax*ax/(nx-1) + ay*ay/(ny-1))
	} else {
		dof := nx + ny - 2
		pooled := ((nx-1)*vx + (ny-1)*vy) / dof
		res.T = (mx - my) / math.Sqrt(pooled*(1/nx+1/ny))
		res.DoF = dof
	}
	res.PValue = tPValue(res.T, res.DoF, alternative)
	return res, nil
}

// Effect size types
const (
	EffsizeNone   = "none"
	EffsizeCohen  = "cohen"
	EffsizeHedges = "hedges"
)

var effsizes = []string{EffsizeNone, EffsizeCohen, EffsizeHedges}

// EffectSize computes Cohen's d or Hedges' g between x and y. For paired
// samples the standardizer is the root mean of the two variances.
func EffectSize(x, y []float64, paired bool, eftype string) float64 {
	if eftype == EffsizeNone || len(x) < 2 || len(y) < 2 {
		return math.NaN()
	}
	nx, ny := float64(len(x)), float64(len(y))
	mx, vx := stat.MeanVariance(x, nil)
	my, vy := stat.MeanVariance(y, nil)

	var d float64
	if paired {
		d = (mx - my) / math.Sqrt((vx+vy)/2)
	} else {
		d = (mx - my) / math.Sqrt(((nx-1)*vx+(ny-1)*vy)/(nx+ny-2))
	}
	if eftype == EffsizeHedges {
		d *= 1 - 3/(4*(nx+ny)-9)
	}
	return d
}
