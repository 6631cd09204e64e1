package stats

import (
	"py50/domain/core"
)

// TestType names a pairwise test that can be selected for plot annotation.
type TestType string

const (
	TestTukey       TestType = "tukey"       // Tukey HSD
	TestGamesHowell TestType = "gameshowell" // Games-Howell
	TestPairwise    TestType = "ptest"       // pairwise t-tests between groups
)

// SupportedTests lists the dispatchable tests in a stable order
var SupportedTests = []TestType{TestTukey, TestGamesHowell, TestPairwise}

// SupportedTestNames returns SupportedTests as plain strings
func SupportedTestNames() []string {
	names := make([]string, len(SupportedTests))
	for i, t := range SupportedTests {
		names[i] = string(t)
	}
	return names
}

// ParseTestType validates a test name. Matching is exact and case-sensitive.
// An empty name is reported as a missing test, anything else unknown as an
// unsupported one.
func ParseTestType(name string) (TestType, error) {
	if name == "" {
		return "", core.NewMissingTestError(SupportedTestNames())
	}
	for _, t := range SupportedTests {
		if string(t) == name {
			return t, nil
		}
	}
	return "", core.NewUnsupportedTestError(name, SupportedTestNames())
}

// PValueColumn is the result table column that carries the p-value of each
// comparison for the given test.
func (t TestType) PValueColumn() string {
	switch t {
	case TestTukey:
		return ColPTukey
	case TestGamesHowell:
		return ColPVal
	case TestPairwise:
		return ColPUnc
	}
	return ""
}

// Result table column names shared by producers and consumers
const (
	ColA        = "A"
	ColB        = "B"
	ColPTukey   = "p-tukey"
	ColPVal     = "pval"
	ColPUnc     = "p-unc"
	ColPCorr    = "p-corr"
	ColSource   = "Source"
	ColContrast = "Contrast"
)

// Pair is one comparison between two group labels.
type Pair struct {
	A string
	B string
}
