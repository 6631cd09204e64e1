package inference

import (
	"math"
	"sort"
)

// P-value adjustment methods
const (
	PAdjustNone = "none"
	PAdjustBonf = "bonf"
	PAdjustHolm = "holm"
	PAdjustBH   = "fdr_bh"
)

var padjustMethods = []string{PAdjustNone, PAdjustBonf, PAdjustHolm, PAdjustBH}

// AdjustPValues corrects a family of p-values for multiple comparisons.
// NaN entries are left as NaN and do not count toward the family size.
func AdjustPValues(pvals []float64, method string) []float64 {
	out := make([]float64, len(pvals))
	copy(out, pvals)
	if method == PAdjustNone {
		return out
	}

	var idx []int
	for i, p := range pvals {
		if !math.IsNaN(p) {
			idx = append(idx, i)
		}
	}
	m := float64(len(idx))
	if m == 0 {
		return out
	}
	sort.SliceStable(idx, func(a, b int) bool { return pvals[idx[a]] < pvals[idx[b]] })

	switch method {
	case PAdjustBonf:
		for _, i := range idx {
			out[i] = math.Min(1, pvals[i]*m)
		}
	case PAdjustHolm:
		running := 0.0
		for rank, i := range idx {
			adj := math.Min(1, (m-float64(rank))*pvals[i])
			running = math.Max(running, adj)
			out[i] = running
		}
	case PAdjustBH:
		running := 1.0
		for rank := len(idx) - 1; rank >= 0; rank-- {
			i := idx[rank]
			adj := math.Min(1, pvals[i]*m/float64(rank+1))
			running = math.Min(running, adj)
			out[i] = running
		}
	}
	return out
}
