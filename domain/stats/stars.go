package stats

import "math"

// NotSignificant is the symbol for p >= 0.05 or an undefined p-value
const NotSignificant = "ns"

// Stars maps a p-value to its significance symbol. Thresholds are strict:
// p < 0.001 "***", p < 0.01 "**", p < 0.05 "*", otherwise "ns".
func Stars(p float64) string {
	switch {
	case math.IsNaN(p):
		return NotSignificant
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	}
	return NotSignificant
}

// Symbols maps every p-value to its symbol, preserving order
func Symbols(pvalues []float64) []string {
	out := make([]string, len(pvalues))
	for i, p := range pvalues {
		out[i] = Stars(p)
	}
	return out
}
