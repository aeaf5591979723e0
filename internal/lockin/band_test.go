package lockin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRange(t *testing.T) {
	tests := []struct {
		name        string
		score       int
		uncertainty int
		want        Range
	}{
		{name: "no uncertainty", score: 50, uncertainty: 0, want: Range{50, 50}},
		{name: "half uncertainty rounds half up", score: 50, uncertainty: 50, want: Range{37, 63}},
		{name: "full uncertainty", score: 80, uncertainty: 100, want: Range{40, 100}},
		{name: "zero score", score: 0, uncertainty: 100, want: Range{0, 0}},
		{name: "score above range", score: 150, uncertainty: 0, want: Range{100, 100}},
		// delta is taken from the raw score: 150 - round(150*0.5) = 75
		{name: "score above range with uncertainty", score: 150, uncertainty: 100, want: Range{75, 100}},
		{name: "negative score", score: -20, uncertainty: 100, want: Range{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateRange(tt.score, tt.uncertainty))
		})
	}
}

func TestEstimateRangeBounds(t *testing.T) {
	for score := -50; score <= 150; score += 5 {
		for unc := 0; unc <= 100; unc += 10 {
			r := EstimateRange(score, unc)
			assert.GreaterOrEqual(t, r.Lower, 0)
			assert.LessOrEqual(t, r.Lower, r.Upper)
			assert.LessOrEqual(t, r.Upper, 100)
			if score >= 0 && score <= 100 {
				assert.LessOrEqual(t, r.Lower, score)
				assert.GreaterOrEqual(t, r.Upper, score)
			}
		}
	}
}

func TestRangeJSON(t *testing.T) {
	data, err := json.Marshal(Range{Lower: 37, Upper: 63})
	require.NoError(t, err)
	assert.JSONEq(t, `[37,63]`, string(data))

	var r Range
	require.NoError(t, json.Unmarshal([]byte(`[1,2]`), &r))
	assert.Equal(t, Range{1, 2}, r)
	assert.Error(t, json.Unmarshal([]byte(`{"lower":1}`), &r))
}
