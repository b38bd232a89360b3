package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 2440.0, cfg.Sheet.Width)
	assert.Equal(t, 1220.0, cfg.Sheet.Height)
	assert.Equal(t, 8.0, cfg.Nesting.Spacing)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingPathUsesDefaults(t *testing.T) {
	// An explicit path that does not exist is an error, an empty path
	// with no config file in the search locations is not.
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2440.0, cfg.Sheet.Width)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staircut.yaml")
	data := []byte("sheet:\n  width: 3050\n  height: 1525\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3050.0, cfg.Sheet.Width)
	assert.Equal(t, 1525.0, cfg.Sheet.Height)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, 8.0, cfg.Nesting.Spacing)
	assert.Equal(t, ":8000", cfg.Server.Addr)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheet: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Output.Dir = "/tmp/artifacts"
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/artifacts", loaded.Output.Dir)
	assert.Equal(t, cfg.Sheet, loaded.Sheet)
}
