package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ZanzyTHEbar/lews/internal/config"
	"github.com/ZanzyTHEbar/lews/internal/lockin"
	"github.com/ZanzyTHEbar/lews/internal/monitoring"
	"github.com/ZanzyTHEbar/lews/internal/trajectory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestAssessPreset(t *testing.T) {
	out, err := execute(t, "", "assess", "--preset", "Insect Farming 2024")
	require.NoError(t, err)

	var res lockin.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, lockin.SchemaEqual9, res.Strategy)
	assert.Equal(t, 64, res.Score)
	assert.Equal(t, lockin.StageScaling, res.Stage)
}

func TestAssessStdin(t *testing.T) {
	out, err := execute(t, `{"animals": 50, "canTheyFeel": 50, "suffering": 50, "growth": 50, "support": 50, "pathDependence": 50, "uncertainty": 50}`,
		"assess", "--file", "-", "--year", "1930")
	require.NoError(t, err)

	var res lockin.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 50, res.Score)
	// 50 is closest to the 1945 point (score 45); 1945 - 1930 - 5 year offset = 10
	assert.Equal(t, "~10 years", res.TimeUntilLockin)
	require.NotNil(t, res.Range)
	assert.Equal(t, lockin.Range{Lower: 37, Upper: 63}, *res.Range)
}

func TestAssessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dims.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"breedingLockIn": 90}`), 0o600))

	out, err := execute(t, "", "assess", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"strategy": "equal9"`)
	assert.Contains(t, out, `"score": 10`)
}

func TestAssessErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{name: "no input", args: []string{"assess"}, want: "one of --file or --preset is required"},
		{name: "unknown preset", args: []string{"assess", "--preset", "Nope"}, want: `unknown preset "Nope"`},
		{name: "mixed schema", stdin: `{"animals": 1, "breedingLockIn": 1}`, args: []string{"assess", "-f", "-"}, want: "more than one schema"},
		{name: "bad strategy", stdin: `{}`, args: []string{"assess", "-f", "-", "--strategy", "median"}, want: "unknown strategy"},
		{name: "missing file", args: []string{"assess", "-f", "/does/not/exist.json"}, want: "failed to open dimensions file"},
		{name: "both sources", args: []string{"assess", "-f", "-", "--preset", "Reset to Middle"}, want: "none of the others"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTrajectoryCommand(t *testing.T) {
	out, err := execute(t, "", "trajectory", "--species", "wildlife", "--tech", "wildlifeAI")
	require.NoError(t, err)

	var got trajectory.Trajectory
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Wildlife automation & AI management", got.Technology)
	assert.NotEmpty(t, got.Points)

	_, err = execute(t, "", "trajectory", "--species", "unicorns")
	require.Error(t, err)
	assert.ErrorIs(t, err, trajectory.ErrSpeciesNotFound)

	out, err = execute(t, "", "trajectory", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, `"insects": [`)
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "", "presets")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), len(lockin.Presets()))
	assert.Contains(t, out, "Chicken Industry (Baseline)")

	out, err = execute(t, "", "presets", "--json")
	require.NoError(t, err)
	var presets []lockin.Preset
	require.NoError(t, json.Unmarshal([]byte(out), &presets))
	assert.Len(t, presets, 11)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--config", "/ignored/by/version.yaml")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestInvalidConfig(t *testing.T) {
	_, err := execute(t, "", "presets", "--config", "/does/not/exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = execute(t, "", "presets", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func testApp(t *testing.T) *app {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Mode = "test"
	return &app{cfg: cfg, logger: monitoring.NewLogger(io.Discard, slog.LevelError)}
}

func TestBuildServer(t *testing.T) {
	a := testApp(t)
	a.cfg.RateLimit.Enabled = true
	a.cfg.Cache.Enabled = true

	srv, err := a.buildServer(context.Background())
	require.NoError(t, err)
	defer srv.close()

	require.NotNil(t, srv.limiter)
	require.NotNil(t, srv.cache)
	assert.Equal(t, a.cfg.Addr(), srv.http.Addr)

	w := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestBuildServerBadTrajectoryFile(t *testing.T) {
	a := testApp(t)
	a.cfg.Trajectories.File = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := a.buildServer(context.Background())
	require.Error(t, err)
}

func TestServeStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	a := testApp(t)
	a.cfg.Server.Port = port

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, a.serve(ctx))
}
