package trajectory

import _ "embed"

const (
	// DefaultSpecies and DefaultTechnology select the reference baseline
	DefaultSpecies    = "chickens"
	DefaultTechnology = "factoryFarming"
)

//go:embed data/trajectories.json
var defaultDataset []byte

// DefaultBaseline is the canonical battery-cage egg production trajectory,
// used whenever the loaded dataset has no chickens/factoryFarming entry.
func DefaultBaseline() Trajectory {
	return Trajectory{
		Points: []Point{
			{Year: 1923, Score: 5, Stage: "Early Research"},
			{Year: 1930, Score: 12, Stage: "Early Research"},
			{Year: 1935, Score: 22, Stage: "Early Commercialization"},
			{Year: 1940, Score: 32, Stage: "Early Commercialization"},
			{Year: 1945, Score: 45, Stage: "Scaling"},
			{Year: 1950, Score: 60, Stage: "Scaling"},
			{Year: 1955, Score: 72, Stage: "Infrastructure Building"},
			{Year: 1960, Score: 92, Stage: "Regulatory Capture"},
			{Year: 1965, Score: 97, Stage: "Locked In"},
		},
	}
}

// LoadDefault builds a store from the embedded dataset
func LoadDefault() (*Store, error) {
	return Parse(defaultDataset, FormatJSON)
}
