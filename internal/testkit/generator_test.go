package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupGenerator_Deterministic(t *testing.T) {
	first, err := NewGroupGenerator(DefaultGroupConfig()).Generate()
	require.NoError(t, err)
	second, err := NewGroupGenerator(DefaultGroupConfig()).Generate()
	require.NoError(t, err)

	a, err := first.Floats("response")
	require.NoError(t, err)
	b, err := second.Floats("response")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 80, first.NumRows())
}

func TestGroupGenerator_RejectsBadConfig(t *testing.T) {
	cfg := DefaultGroupConfig()
	cfg.Means = cfg.Means[:2]
	_, err := NewGroupGenerator(cfg).Generate()
	assert.Error(t, err)

	cfg = DefaultGroupConfig()
	cfg.PerGroup = 0
	_, err = NewGroupGenerator(cfg).Generate()
	assert.Error(t, err)
}

func TestFixtures(t *testing.T) {
	assert.Equal(t, 15, GroupedFrame().NumRows())
	assert.Equal(t, 18, RepeatedFrame().NumRows())
	assert.Equal(t, 30, PlantGrowth().NumRows())
	assert.Equal(t, []string{"before", "during", "after"}, ColumnsFrame().NumericColumns())
}
