package camera

// PerspectiveConfig holds the projection parameters.
type PerspectiveConfig struct {
	// FovY is the vertical field of view in degrees.
	FovY float64 `toml:"fov_y" yaml:"fov_y"`

	// Height is the initial viewport height in pixels.
	Height uint32 `toml:"height" yaml:"height"`
}

// ScrollConfig tunes how scroll wheel input becomes forward motion.
type ScrollConfig struct {
	// IncreaseDelta scales each wheel delta added to the accumulator.
	IncreaseDelta float64 `toml:"increase_delta" yaml:"increase_delta"`

	// DecreaseRatio is the per-frame geometric decay of the accumulator.
	DecreaseRatio float64 `toml:"decrease_ratio" yaml:"decrease_ratio"`

	// Threshold is the magnitude below which the accumulator stops moving the camera.
	Threshold float64 `toml:"threshold" yaml:"threshold"`
}

// KeyConfig tunes keyboard translation.
type KeyConfig struct {
	// Ratio is the distance moved per frame while a key is held.
	Ratio float64 `toml:"ratio" yaml:"ratio"`
}

// Config seeds a Transform.
type Config struct {
	Perspective PerspectiveConfig `toml:"perspective" yaml:"perspective"`
	Scroll      ScrollConfig      `toml:"scroll" yaml:"scroll"`
	Key         KeyConfig         `toml:"key" yaml:"key"`

	// InitialPosition is the eye position at session start.
	InitialPosition [3]float64 `toml:"initial_position" yaml:"initial_position"`

	// Depth converts a drag length in pixels to a rotation angle in radians.
	Depth float64 `toml:"depth" yaml:"depth"`
}

// DefaultConfig returns the stock camera tuning.
func DefaultConfig() Config {
	return Config{
		Perspective: PerspectiveConfig{FovY: 100, Height: 1024},
		Scroll: ScrollConfig{
			IncreaseDelta: 0.05,
			DecreaseRatio: 0.95,
			Threshold:     0.01,
		},
		Key:   KeyConfig{Ratio: 0.05},
		Depth: 500,
	}
}
