package lockin

import (
	"fmt"
	"math"
)

// Strategy turns a normalized dimension set into a 0-100 score
type Strategy interface {
	Schema() Schema
	Score(d DimensionSet) int
}

// WeightSet holds the weighted-7 coefficients. Uncertainty carries no weight;
// it only widens the range.
type WeightSet struct {
	Animals        float64 `json:"animals"`
	Suffering      float64 `json:"suffering"`
	CanTheyFeel    float64 `json:"canTheyFeel"`
	Growth         float64 `json:"growth"`
	SupportGap     float64 `json:"support"`
	PathDependence float64 `json:"pathDependence"`
}

// DefaultWeights returns the expert-supplied weighting
func DefaultWeights() WeightSet {
	return WeightSet{
		Animals:        0.30,
		Suffering:      0.20,
		CanTheyFeel:    0.15,
		Growth:         0.20,
		SupportGap:     0.10,
		PathDependence: 0.05,
	}
}

// Sum returns the total of all weights
func (w WeightSet) Sum() float64 {
	return w.Animals + w.Suffering + w.CanTheyFeel + w.Growth + w.SupportGap + w.PathDependence
}

// Validate checks that weights are non-negative and sum to 1.0
func (w WeightSet) Validate() error {
	for name, v := range map[string]float64{
		DimAnimals: w.Animals, DimSuffering: w.Suffering, DimCanTheyFeel: w.CanTheyFeel,
		DimGrowth: w.Growth, DimSupport: w.SupportGap, DimPathDependence: w.PathDependence,
	} {
		if v < 0 {
			return fmt.Errorf("negative weight for %s: %f", name, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	return nil
}

// Weighted7 scores the 7-dimension schema with fixed weights. Support counts
// inversely: more oversight support lowers the risk.
type Weighted7 struct {
	Weights WeightSet
}

func (Weighted7) Schema() Schema { return SchemaWeighted7 }

// Score normalises each term to [0,1] before rescaling. The order matters:
// it decides which way float error tips the half-up rounding.
func (s Weighted7) Score(d DimensionSet) int {
	norm := func(key string) float64 { return float64(d[key]) / 100.0 }
	w := s.Weights

	raw := w.Animals*norm(DimAnimals)*100 +
		w.Suffering*norm(DimSuffering)*100 +
		w.CanTheyFeel*norm(DimCanTheyFeel)*100 +
		w.Growth*norm(DimGrowth)*100 +
		w.SupportGap*(100-norm(DimSupport)*100) +
		w.PathDependence*norm(DimPathDependence)*100

	return roundHalfUp(raw)
}

// Equal9 scores the 9-dimension schema as a flat mean
type Equal9 struct{}

func (Equal9) Schema() Schema { return SchemaEqual9 }

func (Equal9) Score(d DimensionSet) int {
	sum := 0
	for _, k := range equal9Keys {
		sum += d[k]
	}
	return roundHalfUp(float64(sum) / float64(len(equal9Keys)))
}
