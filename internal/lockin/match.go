package lockin

import (
	"encoding/json"

	"github.com/ZanzyTHEbar/lews/internal/trajectory"
)

// HistoricalMatch is the trajectory point closest to a score. The zero value
// means no trajectory was available and encodes as all-null fields.
type HistoricalMatch struct {
	point *trajectory.Point
}

// Point returns the matched point, if any
func (m HistoricalMatch) Point() (trajectory.Point, bool) {
	if m.point == nil {
		return trajectory.Point{}, false
	}
	return *m.point, true
}

func (m HistoricalMatch) MarshalJSON() ([]byte, error) {
	if m.point == nil {
		return []byte(`{"year":null,"score":null,"stage":null}`), nil
	}
	return json.Marshal(m.point)
}

func (m *HistoricalMatch) UnmarshalJSON(data []byte) error {
	var raw struct {
		Year *int `json:"year"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Year == nil {
		m.point = nil
		return nil
	}
	var p trajectory.Point
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	m.point = &p
	return nil
}

// FindClosest scans points in order and keeps the first one with the smallest
// absolute score distance.
func FindClosest(points []trajectory.Point, score int) HistoricalMatch {
	best := -1
	bestDiff := 0
	for i, p := range points {
		diff := p.Score - score
		if diff < 0 {
			diff = -diff
		}
		if best < 0 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	if best < 0 {
		return HistoricalMatch{}
	}
	p := points[best]
	return HistoricalMatch{point: &p}
}
