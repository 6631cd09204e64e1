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

// Normality test methods
const (
	MethodShapiro    = "shapiro"
	MethodJarqueBera = "jarque_bera"
)

// ShapiroWilk returns the W statistic and p-value of the Shapiro-Wilk test,
// using Royston's (1995) approximation for the coefficients and p-value.
func ShapiroWilk(values []float64) (float64, float64, error) {
	n := len(values)
	if n < 3 {
		return math.NaN(), math.NaN(), core.NewInsufficientDataError("shapiro", fmt.Sprintf("need at least 3 values, got %d", n))
	}
	if n > 5000 {
		return math.NaN(), math.NaN(), core.NewInsufficientDataError("shapiro", fmt.Sprintf("at most 5000 values supported, got %d", n))
	}

	x := make([]float64, n)
	copy(x, values)
	sort.Float64s(x)
	if x[n-1]-x[0] < 1e-19 {
		return math.NaN(), math.NaN(), core.NewInsufficientDataError("shapiro", "all values are identical")
	}

	a := shapiroCoefficients(n)
	mean := stat.Mean(x, nil)
	num, ss := 0.0, 0.0
	for i, v := range x {
		num += a[i] * v
		ss += (v - mean) * (v - mean)
	}
	w := num * num / ss
	if w > 1 {
		w = 1
	}
	return w, shapiroPValue(w, n), nil
}

func shapiroCoefficients(n int) []float64 {
	a := make([]float64, n)
	if n == 3 {
		a[0], a[2] = -math.Sqrt(0.5), math.Sqrt(0.5)
		return a
	}

	fn := float64(n)
	m := make([]float64, n)
	summ2 := 0.0
	for i := range m {
		m[i] = normalQuantile((float64(i+1) - 0.375) / (fn + 0.25))
		summ2 += m[i] * m[i]
	}
	ssumm2 := math.Sqrt(summ2)
	u := 1 / math.Sqrt(fn)

	an := m[n-1]/ssumm2 + poly(u, 0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056)
	if n <= 5 {
		phi := (summ2 - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
		a[0], a[n-1] = -an, an
		return a
	}

	an1 := m[n-2]/ssumm2 + poly(u, 0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633)
	phi := (summ2 - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
	for i := 2; i < n-2; i++ {
		a[i] = m[i] / math.Sqrt(phi)
	}
	a[0], a[1] = -an, -an1
	a[n-2], a[n-1] = an1, an
	return a
}

func shapiroPValue(w float64, n int) float64 {
	if n == 3 {
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return math.Max(0, math.Min(1, p))
	}

	fn := float64(n)
	y := math.Log(1 - w)
	var m, s float64
	if n <= 11 {
		gamma := poly(fn, -2.273, 0.459)
		if y >= gamma {
			return 1e-99
		}
		y = -math.Log(gamma - y)
		m = poly(fn, 0.5440, -0.39978, 0.025054, -6.714e-4)
		s = math.Exp(poly(fn, 1.3822, -0.77857, 0.062767, -0.0020322))
	} else {
		ln := math.Log(fn)
		m = poly(ln, -1.5861, -0.31082, -0.083751, 0.0038915)
		s = math.Exp(poly(ln, -0.4803, -0.082676, 0.0030302))
	}
	return normalSurvival((y - m) / s)
}

// poly evaluates c[0] + c[1]*x + c[2]*x^2 + ...
func poly(x float64, c ...float64) float64 {
	out := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		out = out*x + c[i]
	}
	return out
}

// JarqueBera tests normality from sample skewness and kurtosis
func JarqueBera(values []float64) (float64, float64, error) {
	n := float64(len(values))
	if n < 3 {
		return math.NaN(), math.NaN(), core.NewInsufficientDataError("jarque_bera", fmt.Sprintf("need at least 3 values, got %d", len(values)))
	}
	mean := stat.Mean(values, nil)
	var m2, m3, m4 float64
	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2, m3, m4 = m2/n, m3/n, m4/n
	if m2 == 0 {
		return math.NaN(), math.NaN(), core.NewInsufficientDataError("jarque_bera", "all values are identical")
	}
	skew := m3 / math.Pow(m2, 1.5)
	kurt := m4/(m2*m2) - 3
	jb := n / 6 * (skew*skew + kurt*kurt/4)
	return jb, chiSquarePValue(jb, 2), nil
}

// Normality tests each group of dv (or each numeric column when dv and
// group are both empty) for a normal distribution.
// Options: method (shapiro|jarque_bera), alpha (default 0.05).
func Normality(df *dataset.DataFrame, dv, group string, opts stats.Options) (*stats.ResultTable, error) {
	if err := opts.Check("method", "alpha"); err != nil {
		return nil, err
	}
	method, err := opts.OneOf("method", MethodShapiro, MethodShapiro, MethodJarqueBera)
	if err != nil {
		return nil, err
	}
	alpha, err := opts.Float("alpha", 0.05)
	if err != nil {
		return nil, err
	}

	test := ShapiroWilk
	if method == MethodJarqueBera {
		test = JarqueBera
	}

	var samples []dataset.Group
	label := "Variable"
	switch {
	case group != "":
		if err := df.Require("dv", dv, "group", group); err != nil {
			return nil, err
		}
		if samples, err = df.GroupValues(dv, group, dataset.OrderFirstSeen); err != nil {
			return nil, err
		}
		label = group
	case dv != "":
		if err := df.Require("dv", dv); err != nil {
			return nil, err
		}
		values, err := df.Floats(dv)
		if err != nil {
			return nil, err
		}
		samples = []dataset.Group{{Label: dv, Values: finite(values)}}
	default:
		for _, c := range df.NumericColumns() {
			values, _ := df.Floats(c)
			samples = append(samples, dataset.Group{Label: c, Values: finite(values)})
		}
		if len(samples) == 0 {
			return nil, core.NewInsufficientDataError("normality", "no numeric columns")
		}
	}

	table := stats.NewResultTable("normality", label, "W", stats.ColPVal, "normal")
	for _, s := range samples {
		w, p, err := test(s.Values)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", label, s.Label, err)
		}
		table.AddRow(s.Label, w, p, p > alpha)
	}
	return table, nil
}
