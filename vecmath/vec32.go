package vecmath

import "github.com/chewxy/math32"

// Vec3f is a float32 3D vector laid out as three consecutive floats.
type Vec3f [3]float32

// Vec4f is a float32 4D vector laid out as four consecutive floats.
type Vec4f [4]float32

// F3 is shorthand for Vec3f{x, y, z}.
func F3(x, y, z float32) Vec3f { return Vec3f{x, y, z} }

// F4 is shorthand for Vec4f{x, y, z, w}.
func F4(x, y, z, w float32) Vec4f { return Vec4f{x, y, z, w} }

// Add returns v + w.
func (v Vec3f) Add(w Vec3f) Vec3f { return Vec3f{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// Scale returns v * s.
func (v Vec3f) Scale(s float32) Vec3f { return Vec3f{v[0] * s, v[1] * s, v[2] * s} }

// Neg returns -v.
func (v Vec3f) Neg() Vec3f { return Vec3f{-v[0], -v[1], -v[2]} }

// Dot returns the dot product of v and w.
func (v Vec3f) Dot(w Vec3f) float32 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// Length returns the Euclidean length of v.
func (v Vec3f) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3f) Normalize() Vec3f {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Vec4 extends v with w.
func (v Vec3f) Vec4(w float32) Vec4f { return Vec4f{v[0], v[1], v[2], w} }

// Vec3 drops the w component.
func (v Vec4f) Vec3() Vec3f { return Vec3f{v[0], v[1], v[2]} }

// ToVec3f converts a float64 vector for upload.
func (v Vec3) ToVec3f() Vec3f { return Vec3f{float32(v.X), float32(v.Y), float32(v.Z)} }

// Sub returns v - w.
func (v Vec3f) Sub(w Vec3f) Vec3f { return Vec3f{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// Cross returns the cross product v × w.
func (v Vec3f) Cross(w Vec3f) Vec3f {
	return Vec3f{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}
