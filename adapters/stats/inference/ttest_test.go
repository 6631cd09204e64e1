package inference

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"py50/domain/core"
	"py50/domain/stats"
)

func TestTTest_Student(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 3, 4, 5, 6}

	res, err := TTest(x, y, false, TwoSided, CorrectionAuto)
	require.NoError(t, err)
	assert.False(t, res.Welch)
	assert.InDelta(t, -1.0, res.T, 1e-12)
	assert.Equal(t, 8.0, res.DoF)
	assert.InDelta(t, 0.3466, res.PValue, 1e-3)

	less, err := TTest(x, y, false, Less, CorrectionAuto)
	require.NoError(t, err)
	assert.InDelta(t, res.PValue/2, less.PValue, 1e-12)
}

func TestTTest_WelchWhenSizesDiffer(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{2, 4, 6, 8}

	res, err := TTest(x, y, false, TwoSided, CorrectionAuto)
	require.NoError(t, err)
	assert.True(t, res.Welch)
	assert.Less(t, res.DoF, 8.0)

	pooled, err := TTest(x, y, false, TwoSided, CorrectionFalse)
	require.NoError(t, err)
	assert.False(t, pooled.Welch)
	assert.Equal(t, 8.0, pooled.DoF)
}

func TestTTest_Paired(t *testing.T) {
	x := []float64{10, 12, 11, 14, 13}
	y := []float64{11, 14, 12, 15, 16}

	res, err := TTest(x, y, true, TwoSided, CorrectionAuto)
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.DoF)
	assert.Less(t, res.T, 0.0)

	_, err = TTest(x, y[:3], true, TwoSided, CorrectionAuto)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}

func TestTTest_TooFewObservations(t *testing.T) {
	_, err := TTest([]float64{1}, []float64{1, 2}, false, TwoSided, CorrectionAuto)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}

func TestEffectSize(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 3, 4, 5, 6}

	cohen := EffectSize(x, y, false, EffsizeCohen)
	assert.InDelta(t, -1/math.Sqrt(2.5), cohen, 1e-12)

	hedges := EffectSize(x, y, false, EffsizeHedges)
	assert.InDelta(t, cohen*(1-3.0/31), hedges, 1e-12)

	assert.True(t, math.IsNaN(EffectSize(x, y, false, EffsizeNone)))
	assert.True(t, math.IsNaN(EffectSize(x[:1], y, false, EffsizeCohen)))
}

func TestMannWhitneyU(t *testing.T) {
	res, err := MannWhitneyU([]float64{1, 2, 3, 4}, []float64{5, 6, 7, 8}, TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.U)
	assert.InDelta(t, 2.0/70, res.PValue, 1e-9)

	greater, err := MannWhitneyU([]float64{1, 2, 3, 4}, []float64{5, 6, 7, 8}, Greater)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, greater.PValue, 1e-9)

	less, err := MannWhitneyU([]float64{1, 2, 3, 4}, []float64{5, 6, 7, 8}, Less)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/70, less.PValue, 1e-9)

	_, err = MannWhitneyU(nil, []float64{1}, TwoSided)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}

func TestMannWhitneyU_ExactSmallSamples(t *testing.T) {
	// C(10,5) = 252 arrangements, only the two extremes are as separated
	res, err := MannWhitneyU([]float64{1, 2, 3, 4, 5}, []float64{6, 7, 8, 9, 10}, TwoSided)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/252, res.PValue, 1e-9)
	assert.Equal(t, "**", stats.Stars(res.PValue))
}

func TestMannWhitneyU_AllTied(t *testing.T) {
	res, err := MannWhitneyU([]float64{2, 2, 2}, []float64{2, 2}, TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.U)
	assert.Equal(t, 1.0, res.PValue)
}

func TestPairwiseTests_NonParametricSymbols(t *testing.T) {
	df := groupFrame(t, map[string][]float64{
		"x": {1, 2, 3, 4, 5},
		"y": {6, 7, 8, 9, 10},
	}, "x", "y")

	table, err := PairwiseTests(df, "score", "group", stats.Options{"parametric": false})
	require.NoError(t, err)
	p, err := table.Floats(stats.ColPUnc)
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.InDelta(t, 2.0/252, p[0], 1e-9)
	assert.Equal(t, []string{"**"}, stats.Symbols(p))
}

func TestAdjustPValues(t *testing.T) {
	p := []float64{0.01, 0.04, 0.03}

	tests := []struct {
		method string
		want   []float64
	}{
		{PAdjustNone, []float64{0.01, 0.04, 0.03}},
		{PAdjustBonf, []float64{0.03, 0.12, 0.09}},
		{PAdjustHolm, []float64{0.03, 0.06, 0.06}},
		{PAdjustBH, []float64{0.03, 0.04, 0.04}},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got := AdjustPValues(p, tt.method)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}

	withNaN := AdjustPValues([]float64{0.02, math.NaN()}, PAdjustBonf)
	assert.InDelta(t, 0.02, withNaN[0], 1e-12)
	assert.True(t, math.IsNaN(withNaN[1]))
}
