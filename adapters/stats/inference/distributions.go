package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Alternative hypotheses accepted by the t-test family
const (
	TwoSided = "two-sided"
	Greater  = "greater"
	Less     = "less"
)

var alternatives = []string{TwoSided, Greater, Less}

// tPValue returns the p-value of a t statistic for the given alternative
func tPValue(t, dof float64, alternative string) float64 {
	if math.IsNaN(t) || dof <= 0 {
		return math.NaN()
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	switch alternative {
	case Greater:
		return dist.Survival(t)
	case Less:
		return dist.CDF(t)
	default:
		return math.Min(1, 2*dist.Survival(math.Abs(t)))
	}
}

// fPValue computes the upper tail probability of an F statistic
func fPValue(f, df1, df2 float64) float64 {
	if math.IsNaN(f) || df1 <= 0 || df2 <= 0 {
		return math.NaN()
	}
	if f <= 0 {
		return 1
	}
	return distuv.F{D1: df1, D2: df2}.Survival(f)
}

// chiSquarePValue computes the upper tail probability of a chi-square statistic
func chiSquarePValue(x, k float64) float64 {
	if math.IsNaN(x) || k <= 0 {
		return math.NaN()
	}
	if x <= 0 {
		return 1
	}
	return distuv.ChiSquared{K: k}.Survival(x)
}

// normalSurvival returns P(Z > z) for a standard normal Z
func normalSurvival(z float64) float64 {
	return distuv.UnitNormal.Survival(z)
}

// normalCDF returns P(Z <= z) for a standard normal Z
func normalCDF(z float64) float64 {
	return distuv.UnitNormal.CDF(z)
}

// normalQuantile is the inverse standard normal CDF
func normalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}
