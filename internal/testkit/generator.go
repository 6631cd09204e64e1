package testkit

import (
	"fmt"
	"math/rand"

	"py50/domain/dataset"
)

// GroupGeneratorConfig configures the grouped sample generator
type GroupGeneratorConfig struct {
	Groups      []string  `json:"groups"`
	PerGroup    int       `json:"per_group"`
	Means       []float64 `json:"means"`
	StdDev      float64   `json:"std_dev"`
	GroupColumn string    `json:"group_column"`
	ValueColumn string    `json:"value_column"`
	Seed        int64     `json:"seed"`
}

// DefaultGroupConfig returns four well separated groups
func DefaultGroupConfig() GroupGeneratorConfig {
	return GroupGeneratorConfig{
		Groups:      []string{"control", "low", "mid", "high"},
		PerGroup:    20,
		Means:       []float64{10, 10.5, 13, 16},
		StdDev:      1,
		GroupColumn: "dose",
		ValueColumn: "response",
		Seed:        42,
	}
}

// GroupGenerator draws normally distributed samples per group
type GroupGenerator struct {
	config GroupGeneratorConfig
	rng    *rand.Rand
}

// NewGroupGenerator creates a generator with a fixed seed
func NewGroupGenerator(config GroupGeneratorConfig) *GroupGenerator {
	return &GroupGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns a long-format frame with one row per observation
func (g *GroupGenerator) Generate() (*dataset.DataFrame, error) {
	if len(g.config.Means) != len(g.config.Groups) {
		return nil, fmt.Errorf("got %d means for %d groups", len(g.config.Means), len(g.config.Groups))
	}
	if g.config.PerGroup < 1 {
		return nil, fmt.Errorf("per group count must be positive, got %d", g.config.PerGroup)
	}

	labels := make([]string, 0, len(g.config.Groups)*g.config.PerGroup)
	values := make([]float64, 0, cap(labels))
	for i, name := range g.config.Groups {
		for j := 0; j < g.config.PerGroup; j++ {
			labels = append(labels, name)
			values = append(values, g.config.Means[i]+g.rng.NormFloat64()*g.config.StdDev)
		}
	}

	df := dataset.NewDataFrame()
	if err := df.AddStringColumn(g.config.GroupColumn, labels); err != nil {
		return nil, err
	}
	if err := df.AddFloatColumn(g.config.ValueColumn, values); err != nil {
		return nil, err
	}
	return df, nil
}
