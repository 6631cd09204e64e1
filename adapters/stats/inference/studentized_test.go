package inference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestStudentizedRangeCDF_KnownQuantile(t *testing.T) {
	// 95th percentile of the studentized range for 3 means and 12 df
	assert.InDelta(t, 0.95, StudentizedRangeCDF(3.772929, 3, 12), 2e-3)
}

func TestStudentizedRangeCDF_TwoMeansLargeDF(t *testing.T) {
	// With two means and infinite df, Q/sqrt(2) is the absolute value of a
	// standard normal.
	for _, q := range []float64{0.5, 1.5, 2.772, 4} {
		want := 2*distuv.UnitNormal.CDF(q/math.Sqrt2) - 1
		assert.InDelta(t, want, StudentizedRangeCDF(q, 2, 1e6), 1e-4, "q=%v", q)
	}
}

func TestStudentizedRangeCDF_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, StudentizedRangeCDF(0, 3, 10))
	assert.Equal(t, 0.0, StudentizedRangeCDF(-1, 3, 10))
	assert.Equal(t, 1.0, StudentizedRangeCDF(math.Inf(1), 3, 10))
	assert.True(t, math.IsNaN(StudentizedRangeCDF(2, 1, 10)))
	assert.True(t, math.IsNaN(StudentizedRangeCDF(2, 3, 0)))

	prev := 0.0
	for q := 0.5; q < 8; q += 0.5 {
		p := StudentizedRangeCDF(q, 4, 20)
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
	assert.InDelta(t, 1-StudentizedRangeCDF(3, 4, 20), StudentizedRangeSurvival(3, 4, 20), 1e-12)
}

func TestStudentizedRangeCDF_SmallDF(t *testing.T) {
	// Two means: Q/sqrt(2) is |T| with df degrees of freedom
	for _, df := range []float64{0.5, 1, 1.005, 1.5, 1.99} {
		tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		for _, q := range []float64{1, 3, 6, 20} {
			want := 2*tdist.CDF(q/math.Sqrt2) - 1
			assert.InDelta(t, want, StudentizedRangeCDF(q, 2, df), 1e-4, "q=%v df=%v", q, df)
		}
	}
}

func TestStudentizedRangeCDF_ContinuousAtTwoDF(t *testing.T) {
	for _, q := range []float64{2, 4, 8} {
		below := StudentizedRangeCDF(q, 3, 1.9999)
		at := StudentizedRangeCDF(q, 3, 2)
		assert.InDelta(t, at, below, 1e-3, "q=%v", q)
	}
}
