package viewer

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	data := `
title = "Orbit"
width = 800
scene = "levels/orbit.yaml"
gpu_bounds = false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Orbit", cfg.Title)
	assert.Equal(t, int32(800), cfg.Width)
	assert.Equal(t, int32(720), cfg.Height)
	assert.Equal(t, "levels/orbit.yaml", cfg.Scene)
	assert.False(t, cfg.GPUBounds)
	assert.True(t, cfg.HotReload)
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	cfg := DefaultConfig()
	cfg.ShowBounds = true
	cfg.TargetFPS = 30
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero capacity", func(c *Config) { c.BoundsCapacity = 0 }},
		{"panel wider than window", func(c *Config) { c.PanelWidth = c.Width }},
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, DefaultConfig().Validate())

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = -5"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("width = ["), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigLevel(t *testing.T) {
	cfg := DefaultConfig()
	for text, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg.LogLevel = text
		got, err := cfg.Level()
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}
}
