package testkit

import (
	"fmt"

	"py50/domain/dataset"
)

// Fixed fixtures shared by package tests. Values are small and hand-picked so
// expected statistics stay stable across runs.

// GroupedFrame returns three groups of five observations in column "score",
// labelled by column "group" in the order b, a, c.
func GroupedFrame() *dataset.DataFrame {
	groups := []string{
		"b", "b", "b", "b", "b",
		"a", "a", "a", "a", "a",
		"c", "c", "c", "c", "c",
	}
	scores := []float64{
		6.1, 5.8, 6.4, 6.0, 5.9,
		4.2, 4.5, 3.9, 4.1, 4.4,
		8.3, 7.9, 8.6, 8.1, 8.4,
	}
	return mustFrame(
		stringCol{"group", groups},
		floatCol{"score", scores},
	)
}

// PlantGrowth returns R's PlantGrowth dataset: dried plant "weight" under a
// control and two treatments, labelled by "group". Its post-hoc p-values are
// published, so it pins down the pairwise routines.
func PlantGrowth() *dataset.DataFrame {
	var groups []string
	for _, g := range []string{"ctrl", "trt1", "trt2"} {
		for i := 0; i < 10; i++ {
			groups = append(groups, g)
		}
	}
	weights := []float64{
		4.17, 5.58, 5.18, 6.11, 4.50, 4.61, 5.17, 4.53, 5.33, 5.14,
		4.81, 4.17, 4.41, 3.59, 5.87, 3.83, 6.03, 4.89, 4.32, 4.69,
		6.31, 5.12, 5.54, 5.50, 5.37, 5.29, 4.92, 6.15, 5.80, 5.26,
	}
	return mustFrame(
		stringCol{"group", groups},
		floatCol{"weight", weights},
	)
}

// TwoGroupFrame returns two overlapping groups of unequal size
func TwoGroupFrame() *dataset.DataFrame {
	return mustFrame(
		stringCol{"arm", []string{"ctrl", "ctrl", "ctrl", "ctrl", "ctrl", "ctrl", "drug", "drug", "drug", "drug"}},
		floatCol{"value", []float64{10.1, 9.8, 10.4, 10.0, 9.6, 10.2, 10.3, 10.9, 10.6, 11.0}},
	)
}

// RepeatedFrame returns a long-format repeated-measures design: six subjects,
// three time points, and a two-level between-subject factor "treatment".
func RepeatedFrame() *dataset.DataFrame {
	subjects := []string{"s1", "s2", "s3", "s4", "s5", "s6"}
	treatment := []string{"placebo", "placebo", "placebo", "active", "active", "active"}
	times := []string{"t0", "t1", "t2"}
	values := [][]float64{
		{5.0, 5.2, 5.1},
		{4.8, 5.1, 5.3},
		{5.3, 5.2, 5.6},
		{5.1, 6.0, 7.1},
		{4.9, 6.2, 6.8},
		{5.2, 6.1, 7.4},
	}

	var subj, trt, tm []string
	var score []float64
	for i, s := range subjects {
		for j, t := range times {
			subj = append(subj, s)
			trt = append(trt, treatment[i])
			tm = append(tm, t)
			score = append(score, values[i][j])
		}
	}
	return mustFrame(
		stringCol{"subject", subj},
		stringCol{"time", tm},
		stringCol{"treatment", trt},
		floatCol{"score", score},
	)
}

// ColumnsFrame returns three paired numeric columns and one label column
func ColumnsFrame() *dataset.DataFrame {
	return mustFrame(
		stringCol{"id", []string{"p1", "p2", "p3", "p4", "p5", "p6"}},
		floatCol{"before", []float64{12.1, 11.4, 13.0, 12.6, 11.9, 12.3}},
		floatCol{"during", []float64{12.4, 11.9, 13.2, 13.1, 12.2, 12.5}},
		floatCol{"after", []float64{14.0, 13.1, 14.8, 14.2, 13.6, 14.1}},
	)
}

type stringCol struct {
	name   string
	values []string
}

type floatCol struct {
	name   string
	values []float64
}

func mustFrame(cols ...interface{}) *dataset.DataFrame {
	df := dataset.NewDataFrame()
	for _, c := range cols {
		var err error
		switch col := c.(type) {
		case stringCol:
			err = df.AddStringColumn(col.name, col.values)
		case floatCol:
			err = df.AddFloatColumn(col.name, col.values)
		default:
			err = fmt.Errorf("unknown column fixture %T", c)
		}
		if err != nil {
			panic(err)
		}
	}
	return df
}
