package trajectory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDataset = `
cows:
  trajectories:
    automatedDairy:
      technology: Automated dairy
      trajectory:
        - year: 2015
          score: 30
          stage: Early Commercialization
          uncertainty: medium
        - year: 2023
          score: 55
          stage: Scaling
`

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "data.json", want: FormatJSON},
		{path: "data.YAML", want: FormatYAML},
		{path: "data.yml", want: FormatYAML},
		{path: "data.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDataset), 0o644))

	store, err := Load(path)
	require.NoError(t, err)

	traj, err := store.Lookup("cows", "automatedDairy")
	require.NoError(t, err)
	assert.Equal(t, "Automated dairy", traj.Technology)
	assert.Equal(t, 2, traj.Len())
	assert.Equal(t, UncertaintyMedium, traj.Points[0].Uncertainty)

	// no chickens entry, so the canonical baseline applies
	assert.Equal(t, DefaultBaseline(), store.Baseline())
}

func TestLoadEmptyPathUsesEmbedded(t *testing.T) {
	store, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, store.Count())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "score above range",
			data: `{"chickens":{"trajectories":{"x":{"trajectory":[{"year":1,"score":101,"stage":"s"}]}}}}`,
		},
		{
			name: "years out of order",
			data: `{"chickens":{"trajectories":{"x":{"trajectory":[{"year":2000,"score":1,"stage":"s"},{"year":1990,"score":2,"stage":"s"}]}}}}`,
		},
		{
			name: "unknown uncertainty",
			data: `{"chickens":{"trajectories":{"x":{"trajectory":[{"year":1,"score":1,"stage":"s","uncertainty":"extreme"}]}}}}`,
		},
		{
			name: "malformed json",
			data: `{"chickens":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatJSON)
			assert.Error(t, err)
		})
	}
}
