package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-12

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(-2, 0, 5)

	assert.Equal(t, V3(-1, 2, 8), a.Add(b))
	assert.Equal(t, V3(3, 2, -2), a.Sub(b))
	assert.Equal(t, V3(2, 4, 6), a.Scale(2))
	assert.InDelta(t, 13.0, a.Dot(b), eps)
	assert.Equal(t, V3(0, 0, 1), V3(1, 0, 0).Cross(V3(0, 1, 0)))
	assert.InDelta(t, 1.0, a.Normalize().Length(), eps)
	assert.True(t, Vec3{}.Normalize().IsZero())
}

func TestMat3Mul(t *testing.T) {
	m := Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, m, m.Mul(Identity3()))
	assert.Equal(t, m, Identity3().Mul(m))
	assert.Equal(t, V3(14, 32, 50), m.MulVec3(V3(1, 2, 3)))
	assert.Equal(t, Mat3{1, 4, 7, 2, 5, 8, 3, 6, 9}, m.Transpose())
}

func TestRotation(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float64
		in    Vec3
		want  Vec3
	}{
		{"z quarter turn", V3(0, 0, 1), math.Pi / 2, V3(1, 0, 0), V3(0, 1, 0)},
		{"x quarter turn", V3(1, 0, 0), math.Pi / 2, V3(0, 1, 0), V3(0, 0, 1)},
		{"y half turn", V3(0, 3, 0), math.Pi, V3(1, 0, 0), V3(-1, 0, 0)},
		{"zero axis", Vec3{}, 1, V3(1, 2, 3), V3(1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotation(tt.axis, tt.angle).MulVec3(tt.in)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-9)
		})
	}
}

func TestRotationComposeStaysOrthonormal(t *testing.T) {
	m := Identity3()
	for i := 0; i < 1000; i++ {
		axis := V3(math.Sin(float64(i)), math.Cos(float64(i)*0.7), 0.3)
		m = Rotation(m.MulVec3(axis), 0.01).Mul(m)
	}
	assert.True(t, m.IsOrthonormal(1e-9))
	assert.InDelta(t, 1.0, m.Det(), 1e-9)
}

func TestVec3f(t *testing.T) {
	v := F3(3, 0, 4)
	assert.InDelta(t, 5.0, float64(v.Length()), 1e-6)
	n := v.Normalize()
	assert.InDelta(t, 0.6, float64(n[0]), 1e-6)
	assert.Equal(t, F4(3, 0, 4, 1), v.Vec4(1))
	assert.Equal(t, F3(-3, 0, -4), v.Neg())
	assert.Equal(t, F3(1, 2, 3), V3(1, 2, 3).ToVec3f())
}
