package scene

import "github.com/gogpu/rtscene/vecmath"

// NoTexture marks a Color channel that is not modulated by a texture.
const NoTexture int32 = -1

// Color is the surface material shared by every primitive.
// Each channel pairs an RGB weight with an optional texture index.
type Color struct {
	Reflect    vecmath.Vec3f
	TexReflect int32

	Transmit    vecmath.Vec3f
	TexTransmit int32

	Diffuse    vecmath.Vec3f
	TexDiffuse int32

	Glow    vecmath.Vec3f
	TexGlow int32

	_ vecmath.Vec3f

	// N is the refractive index.
	N float32
}

func untextured() Color {
	return Color{
		TexReflect:  NoTexture,
		TexTransmit: NoTexture,
		TexDiffuse:  NoTexture,
		TexGlow:     NoTexture,
		N:           1,
	}
}

// Matte returns a purely diffuse material.
func Matte(diffuse vecmath.Vec3f) Color {
	c := untextured()
	c.Diffuse = diffuse
	return c
}

// Mirror returns a purely reflective material.
func Mirror(reflect vecmath.Vec3f) Color {
	c := untextured()
	c.Reflect = reflect
	return c
}

// Glass returns a transmissive material with refractive index n.
func Glass(transmit vecmath.Vec3f, n float32) Color {
	c := untextured()
	c.Transmit = transmit
	c.N = n
	return c
}

// Glow returns an emissive material.
func Glow(glow vecmath.Vec3f) Color {
	c := untextured()
	c.Glow = glow
	return c
}

// WithDiffuseTexture returns c with its diffuse channel sampled from texture tex.
func (c Color) WithDiffuseTexture(tex int32) Color {
	c.TexDiffuse = tex
	return c
}
