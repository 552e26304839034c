package scene

// Bindings assigns a bind group slot to every buffer the Model owns.
type Bindings struct {
	Summary      uint32 `toml:"summary" yaml:"summary"`
	Planes       uint32 `toml:"planes" yaml:"planes"`
	Triangles    uint32 `toml:"triangles" yaml:"triangles"`
	TrianglesGPU uint32 `toml:"triangles_gpu" yaml:"triangles_gpu"`
	Spheres      uint32 `toml:"spheres" yaml:"spheres"`
	Circles      uint32 `toml:"circles" yaml:"circles"`
	Cylinders    uint32 `toml:"cylinders" yaml:"cylinders"`
	Cones        uint32 `toml:"cones" yaml:"cones"`
	PointLights  uint32 `toml:"point_lights" yaml:"point_lights"`
}

// DefaultBindings returns the slots declared in the shader layout.
func DefaultBindings() Bindings {
	return Bindings{
		Summary:      3,
		Planes:       4,
		Triangles:    5,
		TrianglesGPU: 6,
		Spheres:      7,
		Circles:      8,
		Cylinders:    9,
		Cones:        10,
		PointLights:  11,
	}
}

// Slots returns the slot of every buffer keyed by name.
func (b Bindings) Slots() map[string]uint32 {
	return map[string]uint32{
		"summary":       b.Summary,
		"planes":        b.Planes,
		"triangles":     b.Triangles,
		"triangles_gpu": b.TrianglesGPU,
		"spheres":       b.Spheres,
		"circles":       b.Circles,
		"cylinders":     b.Cylinders,
		"cones":         b.Cones,
		"point_lights":  b.PointLights,
	}
}
