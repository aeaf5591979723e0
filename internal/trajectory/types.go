package trajectory

import "fmt"

// Uncertainty is the confidence attached to a historical data point
type Uncertainty string

const (
	UncertaintyLow    Uncertainty = "low"
	UncertaintyMedium Uncertainty = "medium"
	UncertaintyHigh   Uncertainty = "high"
)

// Valid reports whether u is empty or one of the known levels
func (u Uncertainty) Valid() bool {
	switch u {
	case "", UncertaintyLow, UncertaintyMedium, UncertaintyHigh:
		return true
	}
	return false
}

// Point is a single year on a reference trajectory
type Point struct {
	Year        int         `json:"year" yaml:"year"`
	Score       int         `json:"score" yaml:"score"`
	Stage       string      `json:"stage" yaml:"stage"`
	Milestone   string      `json:"milestone,omitempty" yaml:"milestone,omitempty"`
	Uncertainty Uncertainty `json:"uncertainty,omitempty" yaml:"uncertainty,omitempty"`
}

// Trajectory is an ordered historical record of lock-in score over time
type Trajectory struct {
	Technology  string  `json:"technology,omitempty" yaml:"technology,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Points      []Point `json:"trajectory" yaml:"trajectory"`
}

// Len returns the number of points on the trajectory
func (t Trajectory) Len() int {
	return len(t.Points)
}

// clone returns a copy whose point slice does not alias t's
func (t Trajectory) clone() Trajectory {
	cp := t
	cp.Points = append([]Point(nil), t.Points...)
	return cp
}

// SpeciesData groups the trajectories recorded for one species
type SpeciesData struct {
	Trajectories map[string]Trajectory `json:"trajectories" yaml:"trajectories"`
}

// Dataset maps species name to its trajectories
type Dataset map[string]SpeciesData

// Validate checks score bounds, year ordering and uncertainty labels
func (d Dataset) Validate() error {
	for species, data := range d {
		if species == "" {
			return fmt.Errorf("dataset contains an empty species name")
		}
		for tech, traj := range data.Trajectories {
			if tech == "" {
				return fmt.Errorf("species %s has an empty technology name", species)
			}
			for i, p := range traj.Points {
				if p.Score < 0 || p.Score > 100 {
					return fmt.Errorf("%s/%s point %d: score %d outside [0,100]", species, tech, i, p.Score)
				}
				if !p.Uncertainty.Valid() {
					return fmt.Errorf("%s/%s point %d: unknown uncertainty %q", species, tech, i, p.Uncertainty)
				}
				if i > 0 && p.Year < traj.Points[i-1].Year {
					return fmt.Errorf("%s/%s point %d: year %d precedes %d", species, tech, i, p.Year, traj.Points[i-1].Year)
				}
			}
		}
	}
	return nil
}
