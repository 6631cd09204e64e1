package inference

import (
	"errors"

	moremath "github.com/aclements/go-moremath/stats"

	"py50/domain/core"
)

// MannWhitneyResult holds the U statistic of x and its p-value
type MannWhitneyResult struct {
	U      float64
	PValue float64
}

var locationHypotheses = map[string]moremath.LocationHypothesis{
	TwoSided: moremath.LocationDiffers,
	Greater:  moremath.LocationGreater,
	Less:     moremath.LocationLess,
}

// MannWhitneyU runs the rank-sum test of x against y. Small samples use the
// exact distribution of U; large samples fall back to the tie-corrected
// normal approximation.
func MannWhitneyU(x, y []float64, alternative string) (MannWhitneyResult, error) {
	var res MannWhitneyResult
	if len(x) == 0 || len(y) == 0 {
		return res, core.NewInsufficientDataError("mann-whitney", "both samples need observations")
	}
	alt, ok := locationHypotheses[alternative]
	if !ok {
		return res, core.NewInvalidOptionError("alternative", "unsupported value "+alternative)
	}

	r, err := moremath.MannWhitneyUTest(x, y, alt)
	switch {
	case errors.Is(err, moremath.ErrSamplesEqual):
		// every observation tied: no evidence of a location shift
		res.U = float64(len(x)*len(y)) / 2
		res.PValue = 1
		return res, nil
	case errors.Is(err, moremath.ErrSampleSize):
		return res, core.NewInsufficientDataError("mann-whitney", err.Error())
	case err != nil:
		return res, err
	}

	res.U = r.U
	res.PValue = r.P
	if res.PValue > 1 {
		res.PValue = 1
	}
	return res, nil
}
