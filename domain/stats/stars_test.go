package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStars(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0, "***"},
		{0.0009, "***"},
		{0.001, "**"},
		{0.0099, "**"},
		{0.01, "*"},
		{0.0499, "*"},
		{0.05, "ns"},
		{0.5, "ns"},
		{1, "ns"},
		{math.NaN(), "ns"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.p), "p=%v", tt.p)
	}
}

func TestStars_Monotonic(t *testing.T) {
	rank := map[string]int{"***": 3, "**": 2, "*": 1, "ns": 0}
	prev := rank[Stars(0)]
	for p := 0.0; p <= 1; p += 0.0005 {
		r := rank[Stars(p)]
		assert.LessOrEqual(t, r, prev)
		prev = r
	}
}

func TestSymbols(t *testing.T) {
	got := Symbols([]float64{0.2, 0.0001, 0.03})
	assert.Equal(t, []string{"ns", "***", "*"}, got)
	assert.Empty(t, Symbols(nil))
}
