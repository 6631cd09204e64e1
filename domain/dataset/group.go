package dataset

import (
	"math"
	"sort"

	"py50/domain/core"
)

// GroupOrder selects how group labels are ordered.
type GroupOrder int

const (
	// OrderFirstSeen keeps labels in order of first occurrence.
	OrderFirstSeen GroupOrder = iota
	// OrderSorted sorts labels lexically.
	OrderSorted
)

// Group holds the non-missing dependent values of one group label.
type Group struct {
	Label  string
	Values []float64
}

// GroupValues splits the numeric column dv by the labels of column by.
// Rows with a missing value or an empty label are skipped.
func (df *DataFrame) GroupValues(dv, by string, order GroupOrder) ([]Group, error) {
	values, err := df.Floats(dv)
	if err != nil {
		return nil, err
	}
	labels, err := df.Labels(by)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var groups []Group
	for i, l := range labels {
		if l == "" || math.IsNaN(values[i]) {
			continue
		}
		idx, ok := index[l]
		if !ok {
			idx = len(groups)
			index[l] = idx
			groups = append(groups, Group{Label: l})
		}
		groups[idx].Values = append(groups[idx].Values, values[i])
	}

	if order == OrderSorted {
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Label < groups[j].Label })
	}
	return groups, nil
}

// Wide is a subject-by-level table of a repeated-measures design.
type Wide struct {
	Levels   []string    // within-subject levels, sorted
	Subjects []string    // subjects with a complete set of levels, first-seen order
	Data     [][]float64 // Data[subject][level]
	Between  []string    // optional between-subject label per subject
}

// Pivot reshapes long data into one row per subject and one column per level
// of within. Subjects missing any level are dropped. When between is not empty
// each subject must carry a single between label. Duplicated cells are averaged.
func (df *DataFrame) Pivot(dv, within, subject, between string) (*Wide, error) {
	values, err := df.Floats(dv)
	if err != nil {
		return nil, err
	}
	levelsCol, err := df.Labels(within)
	if err != nil {
		return nil, err
	}
	subjectsCol, err := df.Labels(subject)
	if err != nil {
		return nil, err
	}
	var betweenCol []string
	if between != "" {
		if betweenCol, err = df.Labels(between); err != nil {
			return nil, err
		}
	}

	levels, err := df.Unique(within)
	if err != nil {
		return nil, err
	}
	sort.Strings(levels)
	levelIdx := make(map[string]int, len(levels))
	for i, l := range levels {
		levelIdx[l] = i
	}

	type cell struct {
		sum   float64
		count int
	}
	subjIdx := make(map[string]int)
	var subjects []string
	var cells [][]cell
	var groupOf []string
	for i := range values {
		s, l := subjectsCol[i], levelsCol[i]
		if s == "" || l == "" || math.IsNaN(values[i]) {
			continue
		}
		idx, ok := subjIdx[s]
		if !ok {
			idx = len(subjects)
			subjIdx[s] = idx
			subjects = append(subjects, s)
			cells = append(cells, make([]cell, len(levels)))
			groupOf = append(groupOf, "")
		}
		if betweenCol != nil {
			g := betweenCol[i]
			if groupOf[idx] != "" && groupOf[idx] != g {
				return nil, core.NewInsufficientDataError("pivot", "subject "+s+" appears in more than one "+between+" group")
			}
			groupOf[idx] = g
		}
		c := &cells[idx][levelIdx[l]]
		c.sum += values[i]
		c.count++
	}

	wide := &Wide{Levels: levels}
	for i, s := range subjects {
		row := make([]float64, len(levels))
		complete := true
		for j, c := range cells[i] {
			if c.count == 0 {
				complete = false
				break
			}
			row[j] = c.sum / float64(c.count)
		}
		if !complete || (betweenCol != nil && groupOf[i] == "") {
			continue
		}
		wide.Subjects = append(wide.Subjects, s)
		wide.Data = append(wide.Data, row)
		if betweenCol != nil {
			wide.Between = append(wide.Between, groupOf[i])
		}
	}

	if len(wide.Subjects) < 2 {
		return nil, core.NewInsufficientDataError("pivot", "fewer than 2 subjects with a value for every level of "+within)
	}
	return wide, nil
}
