package lockin

import (
	"encoding/json"
	"fmt"
)

// maxBandFraction is the half-width of the range at uncertainty=100, as a
// fraction of the score
const maxBandFraction = 0.5

// Range is a confidence interval around a score, encoded as [lower, upper]
type Range struct {
	Lower int
	Upper int
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Lower, r.Upper})
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("range must be a two-element array: %w", err)
	}
	r.Lower, r.Upper = pair[0], pair[1]
	return nil
}

// EstimateRange widens score symmetrically by uncertainty. Only the bounds
// are clamped into [0,100], so 0 <= Lower <= Upper <= 100 always holds.
func EstimateRange(score, uncertainty int) Range {
	factor := float64(uncertainty) / 100.0 * maxBandFraction
	delta := roundHalfUp(float64(score) * factor)

	return Range{
		Lower: clampRating(score - delta),
		Upper: clampRating(score + delta),
	}
}
