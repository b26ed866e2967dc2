package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/spatialgo/codec"
	"github.com/hupe1980/spatialgo/internal/job"
)

func writeJob(t *testing.T, operation string) (dir string, cfgPath string) {
	t.Helper()
	dir = t.TempDir()

	ds := job.Dataset{
		Coords:   codec.Matrix{Rows: 3, Cols: 2, Data: []float64{0, 1, 2, 0, 0, 0}},
		Features: codec.Matrix{Rows: 1, Cols: 3, Data: []float64{1, 2, 4}},
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "points.json"), codec.MustMarshal(codec.Default, ds), 0o644))

	cfgPath = filepath.Join(dir, "job.yaml")
	yaml := "store:\n  kind: local\n  path: " + dir + "\n" +
		"input: points.json\noutput: out/result.json\noperation: " + operation + "\n" +
		"kernel:\n  radius: 0\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))
	return dir, cfgPath
}

func withFlags(t *testing.T, cfgPath string, validate bool) {
	t.Helper()
	oldCfg, oldValidate := *configFile, *validateOnly
	*configFile, *validateOnly = cfgPath, validate
	t.Cleanup(func() {
		*configFile, *validateOnly = oldCfg, oldValidate
	})
}

func TestRun(t *testing.T) {
	dir, cfgPath := writeJob(t, job.OpFilter)
	withFlags(t, cfgPath, false)

	require.NoError(t, run())

	data, err := os.ReadFile(filepath.Join(dir, "out", "result.json"))
	require.NoError(t, err)

	var res job.Result
	require.NoError(t, codec.Default.Unmarshal(data, &res))
	require.NotNil(t, res.Smoothed)
	assert.InDeltaSlice(t, []float64{1, 2, 4}, res.Smoothed.Data, 1e-12)
}

func TestRunValidateOnly(t *testing.T) {
	dir, cfgPath := writeJob(t, job.OpFilter)
	withFlags(t, cfgPath, true)

	require.NoError(t, run())

	_, err := os.Stat(filepath.Join(dir, "out", "result.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunBadConfig(t *testing.T) {
	_, cfgPath := writeJob(t, "smooth")
	withFlags(t, cfgPath, false)

	assert.ErrorContains(t, run(), "operation must be")
}
