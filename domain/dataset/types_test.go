package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"py50/domain/core"
)

func newFrame(t *testing.T) *DataFrame {
	t.Helper()
	df := NewDataFrame()
	require.NoError(t, df.AddStringColumn("species", []string{"gentoo", "adelie", "gentoo", "", "chinstrap", "adelie"}))
	require.NoError(t, df.AddFloatColumn("mass", []float64{5.1, 3.7, 5.4, 4.0, 3.9, math.NaN()}))
	require.NoError(t, df.AddFloatColumn("year", []float64{2007, 2008, 2007, 2009, 2008, 2009}))
	return df
}

func TestDataFrame_Columns(t *testing.T) {
	df := newFrame(t)

	assert.Equal(t, []string{"species", "mass", "year"}, df.Columns())
	assert.Equal(t, 6, df.NumRows())
	assert.True(t, df.HasColumn("mass"))
	assert.False(t, df.HasColumn("Mass"))
	assert.Equal(t, []string{"mass", "year"}, df.NumericColumns())
}

func TestDataFrame_AddErrors(t *testing.T) {
	df := newFrame(t)

	err := df.AddFloatColumn("mass", make([]float64, 6))
	assert.True(t, errors.Is(err, core.ErrDuplicateColumn))

	err = df.AddStringColumn("island", []string{"a"})
	assert.True(t, errors.Is(err, core.ErrColumnLength))
}

func TestDataFrame_CopiesInput(t *testing.T) {
	values := []float64{1, 2}
	df := NewDataFrame()
	require.NoError(t, df.AddFloatColumn("v", values))
	values[0] = 99

	got, err := df.Floats("v")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got[0])
}

func TestDataFrame_Accessors(t *testing.T) {
	df := newFrame(t)

	_, err := df.Floats("species")
	assert.True(t, errors.Is(err, core.ErrColumnType))

	_, err = df.Floats("island")
	assert.True(t, errors.Is(err, core.ErrColumnNotFound))

	labels, err := df.Labels("year")
	require.NoError(t, err)
	assert.Equal(t, "2007", labels[0])

	massLabels, err := df.Labels("mass")
	require.NoError(t, err)
	assert.Equal(t, "", massLabels[5])
}

func TestDataFrame_UniqueFirstSeen(t *testing.T) {
	df := newFrame(t)
	unique, err := df.Unique("species")
	require.NoError(t, err)
	assert.Equal(t, []string{"gentoo", "adelie", "chinstrap"}, unique)
}

func TestDataFrame_Require(t *testing.T) {
	df := newFrame(t)

	assert.NoError(t, df.Require("y", "mass", "x", "species"))

	err := df.Require("y", "mass", "x", "island")
	assert.True(t, errors.Is(err, core.ErrColumnNotFound))
	assert.Contains(t, err.Error(), "x=")

	err = df.Require("y", "")
	assert.True(t, errors.Is(err, core.ErrColumnNotFound))
	assert.Contains(t, err.Error(), "y is empty")
}

func TestGroupValues(t *testing.T) {
	df := newFrame(t)

	groups, err := df.GroupValues("mass", "species", OrderFirstSeen)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "gentoo", groups[0].Label)
	assert.Equal(t, []float64{5.1, 5.4}, groups[0].Values)
	// the NaN adelie row is skipped
	assert.Equal(t, []float64{3.7}, groups[1].Values)

	sorted, err := df.GroupValues("mass", "species", OrderSorted)
	require.NoError(t, err)
	assert.Equal(t, "adelie", sorted[0].Label)
	assert.Equal(t, "chinstrap", sorted[1].Label)
	assert.Equal(t, "gentoo", sorted[2].Label)
}

func TestPivot(t *testing.T) {
	df := NewDataFrame()
	require.NoError(t, df.AddStringColumn("subject", []string{"s1", "s1", "s2", "s2", "s3", "s1"}))
	require.NoError(t, df.AddStringColumn("time", []string{"pre", "post", "pre", "post", "pre", "post"}))
	require.NoError(t, df.AddStringColumn("arm", []string{"a", "a", "b", "b", "b", "a"}))
	require.NoError(t, df.AddFloatColumn("score", []float64{1, 2, 3, 5, 7, 4}))

	wide, err := df.Pivot("score", "time", "subject", "arm")
	require.NoError(t, err)

	assert.Equal(t, []string{"post", "pre"}, wide.Levels)
	// s3 has no post value and is dropped
	assert.Equal(t, []string{"s1", "s2"}, wide.Subjects)
	assert.Equal(t, [][]float64{{3, 1}, {5, 3}}, wide.Data)
	assert.Equal(t, []string{"a", "b"}, wide.Between)
}

func TestPivot_SubjectInTwoGroups(t *testing.T) {
	df := NewDataFrame()
	require.NoError(t, df.AddStringColumn("subject", []string{"s1", "s1", "s2", "s2"}))
	require.NoError(t, df.AddStringColumn("time", []string{"pre", "post", "pre", "post"}))
	require.NoError(t, df.AddStringColumn("arm", []string{"a", "b", "b", "b"}))
	require.NoError(t, df.AddFloatColumn("score", []float64{1, 2, 3, 4}))

	_, err := df.Pivot("score", "time", "subject", "arm")
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}
