package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100.0, cfg.Camera.Perspective.FovY)
	assert.Equal(t, 0.05, cfg.Camera.Scroll.IncreaseDelta)
	assert.Equal(t, 0.95, cfg.Camera.Scroll.DecreaseRatio)
	assert.Equal(t, 0.01, cfg.Camera.Scroll.Threshold)
	assert.Equal(t, 0.05, cfg.Camera.Key.Ratio)
	assert.Equal(t, 500.0, cfg.Camera.Depth)
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "scene.toml", `
[camera]
depth = 250.0
initial_position = [0.0, 1.5, 4.0]

[camera.perspective]
fov_y = 60.0

[frame]
width = 640
height = 480

[log]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Camera.Depth)
	assert.Equal(t, [3]float64{0, 1.5, 4}, cfg.Camera.InitialPosition)
	assert.Equal(t, 60.0, cfg.Camera.Perspective.FovY)
	assert.Equal(t, uint32(640), cfg.Frame.Width)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.95, cfg.Camera.Scroll.DecreaseRatio)
	assert.Equal(t, Default().Bindings, cfg.Bindings)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "scene.yml", `
camera:
  key:
    ratio: 0.2
  scroll:
    threshold: 0.001
bindings:
  transform: 20
  scene:
    spheres: 21
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Camera.Key.Ratio)
	assert.Equal(t, 0.001, cfg.Camera.Scroll.Threshold)
	assert.Equal(t, uint32(20), cfg.Bindings.Transform)
	assert.Equal(t, uint32(21), cfg.Bindings.Scene.Spheres)
	assert.Equal(t, Default().Bindings.Scene.Planes, cfg.Bindings.Scene.Planes)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("scene.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(write(t, "bad.toml", "camera = ["))
	assert.Error(t, err)

	_, err = Load(write(t, "bad.yaml", "camera:\n  depth: -1\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero depth", func(c *Config) { c.Camera.Depth = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.Perspective.FovY = 180 }},
		{"ratio one", func(c *Config) { c.Camera.Scroll.DecreaseRatio = 1 }},
		{"negative threshold", func(c *Config) { c.Camera.Scroll.Threshold = -0.1 }},
		{"zero frame", func(c *Config) { c.Frame.Height = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"shared slot", func(c *Config) { c.Bindings.Scene.Cones = c.Bindings.Scene.Spheres }},
		{"transform clash", func(c *Config) { c.Bindings.Transform = c.Bindings.Viewport.FrameData }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	for _, name := range []string{"out.toml", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Camera.InitialPosition = [3]float64{1, 2, 3}
			cfg.Frame.Width = 320
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(cfg, path))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
	assert.ErrorIs(t, Save(Default(), "out.ini"), ErrUnknownFormat)
}
