// Package config loads session configuration from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/rtscene/camera"
	"github.com/gogpu/rtscene/scene"
	"github.com/gogpu/rtscene/viewport"
)

// Config errors.
var (
	// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("config: invalid")
)

// Bindings collects the bind group slot of every session buffer.
type Bindings struct {
	Transform uint32            `toml:"transform" yaml:"transform"`
	Scene     scene.Bindings    `toml:"scene" yaml:"scene"`
	Viewport  viewport.Bindings `toml:"viewport" yaml:"viewport"`
}

// FrameConfig is the initial framebuffer size.
type FrameConfig struct {
	Width  uint32 `toml:"width" yaml:"width"`
	Height uint32 `toml:"height" yaml:"height"`
}

// LogConfig selects the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Config is the full session configuration.
type Config struct {
	Camera   camera.Config `toml:"camera" yaml:"camera"`
	Bindings Bindings      `toml:"bindings" yaml:"bindings"`
	Frame    FrameConfig   `toml:"frame" yaml:"frame"`
	Log      LogConfig     `toml:"log" yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Camera: camera.DefaultConfig(),
		Bindings: Bindings{
			Transform: 2,
			Scene:     scene.DefaultBindings(),
			Viewport:  viewport.DefaultBindings(),
		},
		Frame: FrameConfig{Width: 1024, Height: 1024},
		Log:   LogConfig{Level: "info"},
	}
}

type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads path over the defaults and validates the result. Keys
// missing from the file keep their default values.
func Load(path string) (Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	switch f {
	case formatTOML:
		err = toml.Unmarshal(data, &cfg)
	case formatYAML:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path in the format implied by its extension.
func Save(c Config, path string) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case formatTOML:
		data, err = toml.Marshal(c)
	case formatYAML:
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	cam := c.Camera
	switch {
	case cam.Depth <= 0:
		return fmt.Errorf("%w: camera.depth must be positive, got %v", ErrInvalid, cam.Depth)
	case cam.Perspective.FovY <= 0 || cam.Perspective.FovY >= 180:
		return fmt.Errorf("%w: camera.perspective.fov_y must be in (0, 180), got %v", ErrInvalid, cam.Perspective.FovY)
	case cam.Scroll.DecreaseRatio <= 0 || cam.Scroll.DecreaseRatio >= 1:
		return fmt.Errorf("%w: camera.scroll.decrease_ratio must be in (0, 1), got %v", ErrInvalid, cam.Scroll.DecreaseRatio)
	case cam.Scroll.Threshold < 0:
		return fmt.Errorf("%w: camera.scroll.threshold must not be negative, got %v", ErrInvalid, cam.Scroll.Threshold)
	case c.Frame.Width == 0 || c.Frame.Height == 0:
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalid, c.Frame.Width, c.Frame.Height)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return c.checkBindings()
}

// checkBindings rejects two buffers sharing a slot. The quad is a vertex
// buffer slot and lives in its own namespace.
func (c Config) checkBindings() error {
	seen := map[uint32]string{c.Bindings.Transform: "transform"}
	add := func(name string, slot uint32) error {
		if other, ok := seen[slot]; ok {
			return fmt.Errorf("%w: bindings %s and %s share slot %d", ErrInvalid, other, name, slot)
		}
		seen[slot] = name
		return nil
	}
	if err := add("frame_scale", c.Bindings.Viewport.FrameScale); err != nil {
		return err
	}
	if err := add("frame_data", c.Bindings.Viewport.FrameData); err != nil {
		return err
	}
	for _, name := range []string{
		"summary", "planes", "triangles", "triangles_gpu", "spheres",
		"circles", "cylinders", "cones", "point_lights",
	} {
		if err := add(name, c.Bindings.Scene.Slots()[name]); err != nil {
			return err
		}
	}
	return nil
}

// SlogLevel parses Log.Level. An empty level means info.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
}
