package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, runtime.NumCPU(), cfg.Processing.Workers)
	assert.Equal(t, 0, cfg.Processing.FrameAxis)
	assert.Zero(t, cfg.Processing.FrameDuration, "default produces all frames")
	assert.True(t, cfg.Output.Verbose)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slicestream.yaml")
	doc := `
processing:
  workers: 3
  frameAxis: 2
  frameStart: 1
  frameDuration: 2
output:
  verbose: false
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Processing.Workers)
	assert.Equal(t, 2, cfg.Processing.FrameAxis)
	assert.Equal(t, 1, cfg.Processing.FrameStart)
	assert.Equal(t, 2, cfg.Processing.FrameDuration)
	assert.False(t, cfg.Output.Verbose)
	assert.True(t, cfg.Output.FrameStats, "unset fields keep their defaults")
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("processing:\n  workers: 0\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cfg.yaml")

	cfg := DefaultConfig()
	cfg.Processing.Workers = 5
	cfg.Processing.FrameAxis = 1
	require.NoError(t, SaveConfig(cfg, path))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Processing.FrameAxis = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Processing.FrameDuration = -2
	assert.Error(t, cfg.Validate())
}
