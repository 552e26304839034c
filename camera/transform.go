// Package camera implements the interactive camera: input aggregators that
// turn key, drag and scroll events into per-frame deltas, and the Transform
// state machine that folds those deltas into a persistent eye position and
// orientation.
//
// All methods of Transform must be called from one goroutine. Input arriving
// on other goroutines goes through a Queue drained at the start of a frame.
package camera

import (
	"github.com/gogpu/rtscene/vecmath"
)

// Record is the GPU transform record. Its byte layout matches the
// Transform struct of the shader side: a 3x4 rotation (rows padded to
// vec4), the eye position and the focal length, 64 bytes in total.
type Record struct {
	Rotation    [3][4]float32
	Position    [3]float32
	FocalLength float32
}

// Transform is the camera state machine.
type Transform struct {
	persp  Perspective
	scroll Scroll
	key    Key
	mouse  Mouse

	position vecmath.Vec3
	rotation vecmath.Mat3
	depth    float64

	record  Record
	updated bool
}

// New creates a Transform at cfg.InitialPosition looking down -Z.
func New(cfg Config) *Transform {
	return &Transform{
		persp:    Perspective{FovY: cfg.Perspective.FovY, Height: cfg.Perspective.Height},
		scroll:   NewScroll(cfg.Scroll),
		key:      Key{Ratio: cfg.Key.Ratio},
		position: vecmath.Vec3FromArray(cfg.InitialPosition),
		rotation: vecmath.Identity3(),
		depth:    cfg.Depth,
	}
}

// Init seeds the viewport height from the initial framebuffer, derives the
// record and marks it for upload.
func (t *Transform) Init(height uint32) {
	t.persp.Height = height
	t.persp.updated = false
	t.record.FocalLength = float32(t.persp.FocalLength())
	t.calcRecord()
	t.updated = true
}

// Resize records a new framebuffer size. The focal length is recomputed by
// the next Operate.
func (t *Transform) Resize(_, height uint32) {
	t.persp.Resize(height)
}

// SetFovY changes the field of view (degrees). Applied by the next Operate.
func (t *Transform) SetFovY(deg float64) {
	t.persp.SetFovY(deg)
}

// OnKey applies a key press or release. Unknown codes are ignored.
func (t *Transform) OnKey(code int, pressed bool) {
	t.key.Set(code, pressed)
}

// OnMouseButton applies a button press or release. Unknown codes are ignored.
func (t *Transform) OnMouseButton(code int, pressed bool) {
	t.mouse.SetButton(code, pressed)
}

// OnMouseMove records a cursor position.
func (t *Transform) OnMouseMove(x, y float64) {
	t.mouse.Move(x, y)
}

// OnScroll adds a wheel delta.
func (t *Transform) OnScroll(delta float64) {
	t.scroll.Add(delta)
}

// Operate folds this frame's input into the camera state. It reports
// whether the record changed; the same fact is kept in Updated until
// ClearUpdated.
func (t *Transform) Operate() bool {
	k := t.key.Operate()
	dxyz := vecmath.V3(k.X, k.Y, -t.scroll.Operate())
	axis := t.mouse.Operate()

	operated := false
	if !dxyz.IsZero() {
		t.position = t.position.Add(t.rotation.MulVec3(dxyz))
		operated = true
	}
	if !axis.IsZero() {
		angle := axis.Length() / t.depth
		around := t.rotation.MulVec3(vecmath.V3(axis.X, axis.Y, 0))
		t.rotation = vecmath.Rotation(around, angle).Mul(t.rotation)
		operated = true
	}
	if t.persp.updated {
		t.record.FocalLength = float32(t.persp.FocalLength())
		t.persp.updated = false
		operated = true
	}
	if operated {
		t.calcRecord()
		t.updated = true
	}
	return operated
}

func (t *Transform) calcRecord() {
	for r := 0; r < 3; r++ {
		row := t.rotation.Row(r)
		t.record.Rotation[r] = [4]float32{float32(row.X), float32(row.Y), float32(row.Z), 0}
	}
	t.record.Position = t.position.ToVec3f()
}

// Updated reports whether the record changed since the last ClearUpdated.
func (t *Transform) Updated() bool { return t.updated }

// ClearUpdated acknowledges that the record has been uploaded.
func (t *Transform) ClearUpdated() { t.updated = false }

// Record returns the derived GPU record.
func (t *Transform) Record() Record { return t.record }

// RecordPtr returns a pointer to the record for zero-copy upload.
func (t *Transform) RecordPtr() *Record { return &t.record }

// Position returns the eye position.
func (t *Transform) Position() vecmath.Vec3 { return t.position }

// Rotation returns the camera basis.
func (t *Transform) Rotation() vecmath.Mat3 { return t.rotation }

// FocalLength returns the focal length of the current record.
func (t *Transform) FocalLength() float64 { return float64(t.record.FocalLength) }

// ScrollTotal returns the scroll accumulator.
func (t *Transform) ScrollTotal() float64 { return t.scroll.Total() }
