package scene

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/rtscene/vecmath"
)

// GPU records
//
// Every record is tightly packed with 16-byte aligned members so that a
// slice of records can be uploaded as-is into a storage buffer declared
// with the same struct on the shader side (see package shaders).

// Plane is an infinite plane Ax + By + Cz + W = 0 stored as (A, B, C, W).
type Plane struct {
	Paras vecmath.Vec4f
	Color Color
}

// NewPlane returns the plane through point with the given normal.
func NewPlane(normal, point vecmath.Vec3f, c Color) Plane {
	n := normal.Normalize()
	return Plane{Paras: n.Vec4(-n.Dot(point)), Color: c}
}

// Triangle is a triangle as authored: three vertices, w unused.
type Triangle struct {
	Vertices [3]vecmath.Vec4f
	Color    Color
}

// NewTriangle returns the triangle a, b, c.
func NewTriangle(a, b, c vecmath.Vec3f, col Color) Triangle {
	return Triangle{
		Vertices: [3]vecmath.Vec4f{a.Vec4(0), b.Vec4(0), c.Vec4(0)},
		Color:    col,
	}
}

// TriangleGPU is the intersection-ready form of a Triangle, derived from
// the authored triangles by the prepare_triangles pass (see PrepareTriangle).
type TriangleGPU struct {
	Plane vecmath.Vec4f
	P1    vecmath.Vec4f
	K1    vecmath.Vec4f
	K2    vecmath.Vec4f
	Color Color
}

// Sphere stores the center and squared radius in Sphere and the texture
// orientation in E1 and E2.
type Sphere struct {
	Sphere vecmath.Vec4f
	E1     vecmath.Vec4f
	E2     vecmath.Vec4f
	Color  Color
}

// NewSphere returns a sphere with the default texture orientation.
func NewSphere(center vecmath.Vec3f, radius float32, c Color) Sphere {
	return Sphere{
		Sphere: center.Vec4(radius * radius),
		E1:     vecmath.F4(1, 0, 0, 0),
		E2:     vecmath.F4(0, 0, 1, 0),
		Color:  c,
	}
}

// Circle is a flat disk: the plane it lies in, its center, its squared
// radius and the texture orientation.
type Circle struct {
	Plane  vecmath.Vec4f
	Center vecmath.Vec3f
	R2     float32
	E1     vecmath.Vec4f
	Color  Color
}

// NewCircle returns the disk of the given radius facing normal.
func NewCircle(center, normal vecmath.Vec3f, radius float32, c Color) Circle {
	return circleFrom(normal, center, radius*radius, vecmath.F4(1, 0, 0, 0), c)
}

// circleFrom builds a disk whose plane equation is derived from normal and center.
func circleFrom(normal, center vecmath.Vec3f, r2 float32, e1 vecmath.Vec4f, c Color) Circle {
	return Circle{
		Plane:  normal.Vec4(-normal.Dot(center)),
		Center: center,
		R2:     r2,
		E1:     e1,
		Color:  c,
	}
}

// Cylinder is an open tube starting at C along N (scaled by L).
type Cylinder struct {
	C     vecmath.Vec3f
	R2    float32
	N     vecmath.Vec3f
	L     float32
	E1    vecmath.Vec4f
	Color Color
}

// NewCylinder returns the tube of the given radius from base along axis for length.
func NewCylinder(base, axis vecmath.Vec3f, radius, length float32, c Color) Cylinder {
	return Cylinder{
		C:     base,
		R2:    radius * radius,
		N:     axis.Normalize(),
		L:     length,
		E1:    vecmath.F4(1, 0, 0, 0),
		Color: c,
	}
}

// Caps returns the two end disks: the base facing -N and the top facing +N.
func (cy Cylinder) Caps() (base, top Circle) {
	base = circleFrom(cy.N.Neg(), cy.C, cy.R2, cy.E1, cy.Color)
	top = circleFrom(cy.N, cy.C.Add(cy.N.Scale(cy.L)), cy.R2, cy.E1, cy.Color)
	return base, top
}

// Cone is an open cone with apex C opening along N. C2 is the squared
// cosine of the half angle and L2 the squared slant length.
type Cone struct {
	C     vecmath.Vec3f
	C2    float32
	N     vecmath.Vec3f
	L2    float32
	E1    vecmath.Vec4f
	Color Color
}

// NewCone returns the cone with the given half angle (radians) and slant length.
func NewCone(apex, axis vecmath.Vec3f, halfAngle, slant float32, c Color) Cone {
	cos := math32.Cos(halfAngle)
	return Cone{
		C:     apex,
		C2:    cos * cos,
		N:     axis.Normalize(),
		L2:    slant * slant,
		E1:    vecmath.F4(1, 0, 0, 0),
		Color: c,
	}
}

// Base returns the disk closing the cone: radius² = l²(1 - cos²θ) centered
// l·cosθ along the axis from the apex.
func (co Cone) Base() Circle {
	dir := co.N.Normalize()
	center := co.C.Add(dir.Scale(math32.Sqrt(co.L2 * co.C2)))
	return circleFrom(dir, center, co.L2*(1-co.C2), co.E1, co.Color)
}

// PointLight is an isotropic light. Color.w is unused.
type PointLight struct {
	Color    vecmath.Vec4f
	Position vecmath.Vec4f
}

// NewPointLight returns a light of the given color at p.
func NewPointLight(color, p vecmath.Vec3f) PointLight {
	return PointLight{Color: color.Vec4(0), Position: p.Vec4(1)}
}

// Summary holds the element count of every collection. It is bound as a
// uniform buffer and bounds the shader's intersection loops.
type Summary struct {
	Planes      uint32
	Triangles   uint32
	Spheres     uint32
	Circles     uint32
	Cylinders   uint32
	Cones       uint32
	PointLights uint32
	_           uint32
}
