package lockin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWeightsValidate(t *testing.T) {
	w := DefaultWeights()
	assert.NoError(t, w.Validate())
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)

	w.Animals = 0.5
	assert.Error(t, w.Validate())

	w = DefaultWeights()
	w.Growth = -0.2
	w.Animals = 0.7
	assert.Error(t, w.Validate())
}

func TestWeighted7Score(t *testing.T) {
	s := Weighted7{Weights: DefaultWeights()}

	tests := []struct {
		name     string
		dims     DimensionSet
		expected int
	}{
		{name: "all zero still carries the support gap", dims: DimensionSet{}, expected: 10},
		{name: "full support removes the gap", dims: DimensionSet{DimSupport: 100}, expected: 0},
		{name: "animals only", dims: DimensionSet{DimAnimals: 100, DimSupport: 100}, expected: 30},
		{name: "suffering only", dims: DimensionSet{DimSuffering: 100, DimSupport: 100}, expected: 20},
		{name: "maximum risk", dims: DimensionSet{
			DimAnimals: 100, DimSuffering: 100, DimCanTheyFeel: 100,
			DimGrowth: 100, DimPathDependence: 100,
		}, expected: 100},
		{name: "midpoint", dims: DimensionSet{
			DimAnimals: 50, DimSuffering: 50, DimCanTheyFeel: 50, DimGrowth: 50,
			DimSupport: 50, DimPathDependence: 50,
		}, expected: 50},
		{name: "uncertainty is not weighted", dims: DimensionSet{DimUncertainty: 100, DimSupport: 100}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Score(Normalize(tt.dims, SchemaWeighted7).Dimensions))
		})
	}
}

func TestWeighted7Monotonicity(t *testing.T) {
	s := Weighted7{Weights: DefaultWeights()}
	base := DimensionSet{
		DimAnimals: 30, DimSuffering: 30, DimCanTheyFeel: 30, DimGrowth: 30,
		DimSupport: 30, DimPathDependence: 30, DimUncertainty: 30,
	}

	increasing := []string{DimAnimals, DimSuffering, DimCanTheyFeel, DimGrowth, DimPathDependence}
	for _, key := range increasing {
		prev := -1
		for v := 0; v <= 100; v++ {
			d := copyDims(base)
			d[key] = v
			score := s.Score(d)
			assert.GreaterOrEqual(t, score, prev, "%s=%d decreased the score", key, v)
			prev = score
		}
	}

	prev := 101
	for v := 0; v <= 100; v++ {
		d := copyDims(base)
		d[DimSupport] = v
		score := s.Score(d)
		assert.LessOrEqual(t, score, prev, "support=%d increased the score", v)
		prev = score
	}
}

func TestEqual9Score(t *testing.T) {
	tests := []struct {
		name     string
		dims     DimensionSet
		expected int
	}{
		{name: "all fifty", dims: uniform(50), expected: 50},
		{name: "all zero", dims: DimensionSet{}, expected: 0},
		{name: "all hundred", dims: uniform(100), expected: 100},
		{name: "rounds the mean", dims: DimensionSet{DimRegulatoryCapture: 100}, expected: 11},
		{name: "rounds up from .89", dims: presetValues(t, "Insect Farming 2024"), expected: 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equal9{}.Score(Normalize(tt.dims, SchemaEqual9).Dimensions))
		})
	}
}

func uniform(v int) DimensionSet {
	d := DimensionSet{}
	for _, k := range SchemaEqual9.Keys() {
		d[k] = v
	}
	return d
}

func copyDims(d DimensionSet) DimensionSet {
	cp := make(DimensionSet, len(d))
	for k, v := range d {
		cp[k] = v
	}
	return cp
}

func presetValues(t *testing.T, name string) DimensionSet {
	t.Helper()
	p, ok := FindPreset(name)
	if !ok {
		t.Fatalf("preset %q not found", name)
	}
	return p.Values
}
