package vecmath

import "math"

// Mat3 is a 3x3 matrix stored row-major:
//
//	| M[0] M[1] M[2] |
//	| M[3] M[4] M[5] |
//	| M[6] M[7] M[8] |
type Mat3 [9]float64

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat3) At(r, c int) float64 { return m[r*3+c] }

// Row returns row r as a vector.
func (m Mat3) Row(r int) Vec3 { return Vec3{m[r*3], m[r*3+1], m[r*3+2]} }

// Mul returns the matrix product m · n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = m[r*3]*n[c] + m[r*3+1]*n[3+c] + m[r*3+2]*n[6+c]
		}
	}
	return out
}

// MulVec3 returns m · v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Det returns the determinant of m.
func (m Mat3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Rotation returns the matrix rotating by angle radians around axis
// (right-handed, Rodrigues' formula). A zero axis yields the identity.
func Rotation(axis Vec3, angle float64) Mat3 {
	k := axis.Normalize()
	if k.IsZero() {
		return Identity3()
	}
	s, c := math.Sincos(angle)
	t := 1 - c
	return Mat3{
		t*k.X*k.X + c, t*k.X*k.Y - s*k.Z, t*k.X*k.Z + s*k.Y,
		t*k.X*k.Y + s*k.Z, t*k.Y*k.Y + c, t*k.Y*k.Z - s*k.X,
		t*k.X*k.Z - s*k.Y, t*k.Y*k.Z + s*k.X, t*k.Z*k.Z + c,
	}
}

// IsOrthonormal reports whether m·mᵀ equals the identity within eps.
func (m Mat3) IsOrthonormal(eps float64) bool {
	p := m.Mul(m.Transpose())
	id := Identity3()
	for i := range p {
		if math.Abs(p[i]-id[i]) > eps {
			return false
		}
	}
	return true
}
