package inference

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SphericityResult is Mauchly's test together with the Greenhouse-Geisser
// epsilon of the same covariance structure.
type SphericityResult struct {
	Spherical bool
	W         float64
	ChiSq     float64
	DoF       float64
	PValue    float64
	Epsilon   float64
}

// doubleCenteredCov returns the level covariance matrix of a subjects by
// levels table with row and column means removed.
func doubleCenteredCov(data [][]float64) *mat.SymDense {
	n, k := len(data), len(data[0])
	raw := mat.NewDense(n, k, nil)
	for i, row := range data {
		raw.SetRow(i, row)
	}
	cov := mat.NewSymDense(k, nil)
	stat.CovarianceMatrix(cov, raw, nil)

	rowMeans := make([]float64, k)
	total := 0.0
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			rowMeans[i] += cov.At(i, j)
		}
		total += rowMeans[i]
		rowMeans[i] /= float64(k)
	}
	total /= float64(k * k)

	out := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			out.SetSym(i, j, cov.At(i, j)-rowMeans[i]-rowMeans[j]+total)
		}
	}
	return out
}

// GreenhouseGeisser estimates the sphericity correction factor epsilon
func GreenhouseGeisser(data [][]float64) float64 {
	k := float64(len(data[0]))
	if k < 3 {
		return 1
	}
	s := doubleCenteredCov(data)
	trace, sq := 0.0, 0.0
	for i := 0; i < s.SymmetricDim(); i++ {
		trace += s.At(i, i)
		for j := 0; j < s.SymmetricDim(); j++ {
			sq += s.At(i, j) * s.At(i, j)
		}
	}
	if sq == 0 {
		return 1
	}
	eps := trace * trace / ((k - 1) * sq)
	return math.Max(1/(k-1), math.Min(1, eps))
}

// Mauchly tests the sphericity assumption of a repeated-measures design
func Mauchly(data [][]float64, alpha float64) SphericityResult {
	n, k := float64(len(data)), len(data[0])
	res := SphericityResult{Spherical: true, W: 1, PValue: 1, Epsilon: GreenhouseGeisser(data)}
	if k < 3 {
		return res
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(doubleCenteredCov(data), false); !ok {
		res.W, res.PValue = math.NaN(), math.NaN()
		return res
	}
	// ascending; the smallest eigenvalue of a double-centered matrix is zero
	values := eig.Values(nil)[1:]

	d := float64(k - 1)
	prod, sum := 1.0, 0.0
	for _, v := range values {
		prod *= v
		sum += v
	}
	res.W = prod / math.Pow(sum/d, d)

	f := 1 - (2*d*d+d+2)/(6*d*(n-1))
	res.ChiSq = -(n - 1) * f * math.Log(res.W)
	res.DoF = d*(d+1)/2 - 1
	res.PValue = chiSquarePValue(res.ChiSq, res.DoF)
	res.Spherical = res.PValue > alpha
	return res
}
