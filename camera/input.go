package camera

import (
	"math"

	"github.com/gogpu/rtscene/vecmath"
)

// Key codes accepted by Transform.OnKey.
const (
	KeyLeft = iota
	KeyRight
	KeyUp
	KeyDown
)

// Mouse button codes accepted by Transform.OnMouseButton.
const (
	ButtonLeft = iota
	ButtonMiddle
	ButtonRight
)

// Perspective tracks the projection parameters and whether they changed
// since the focal length was last derived.
type Perspective struct {
	FovY    float64
	Height  uint32
	updated bool
}

// Resize records a new viewport height.
func (p *Perspective) Resize(height uint32) {
	p.Height = height
	p.updated = true
}

// SetFovY records a new field of view in degrees.
func (p *Perspective) SetFovY(deg float64) {
	p.FovY = deg
	p.updated = true
}

// Updated reports whether a change is pending.
func (p *Perspective) Updated() bool { return p.updated }

// FocalLength returns the signed image plane distance in pixels:
// -height / (2·tan(fovY/2)). The camera looks down -Z.
func (p *Perspective) FocalLength() float64 {
	return -float64(p.Height) / (2 * math.Tan(p.FovY*math.Pi/360))
}

// Scroll accumulates wheel input and releases it gradually.
type Scroll struct {
	cfg   ScrollConfig
	total float64
}

// NewScroll creates an accumulator resting at the threshold.
func NewScroll(cfg ScrollConfig) Scroll {
	return Scroll{cfg: cfg, total: cfg.Threshold}
}

// Add folds one wheel event into the accumulator.
func (s *Scroll) Add(delta float64) {
	s.total += delta * s.cfg.IncreaseDelta
}

// Total returns the raw accumulator.
func (s *Scroll) Total() float64 { return s.total }

// Operate decays the accumulator and returns it. At or below the threshold
// it returns 0 and leaves the accumulator untouched.
func (s *Scroll) Operate() float64 {
	if math.Abs(s.total) > s.cfg.Threshold {
		s.total *= s.cfg.DecreaseRatio
		return s.total
	}
	return 0
}

// Key holds the four arrow key states.
type Key struct {
	Ratio float64

	left, right, up, down bool
}

// Set updates one key. Unknown codes are ignored.
func (k *Key) Set(code int, pressed bool) {
	switch code {
	case KeyLeft:
		k.left = pressed
	case KeyRight:
		k.right = pressed
	case KeyUp:
		k.up = pressed
	case KeyDown:
		k.down = pressed
	}
}

// Operate returns this frame's planar motion.
func (k *Key) Operate() vecmath.Vec2 {
	return vecmath.Vec2{
		X: k.Ratio * (b2f(k.right) - b2f(k.left)),
		Y: k.Ratio * (b2f(k.up) - b2f(k.down)),
	}
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Pointer is one cursor sample.
type Pointer struct {
	X, Y  float64
	Valid bool
}

// Mouse tracks button state and the last two cursor samples of a drag.
type Mouse struct {
	Now, Pre Pointer

	left, middle, right bool
}

// SetButton updates one button. Unknown codes are ignored.
// Releasing the left button ends the drag and drops both samples.
func (m *Mouse) SetButton(code int, pressed bool) {
	switch code {
	case ButtonLeft:
		m.left = pressed
		if !pressed {
			m.Now.Valid = false
			m.Pre.Valid = false
		}
	case ButtonMiddle:
		m.middle = pressed
	case ButtonRight:
		m.right = pressed
	}
}

// Dragging reports whether the left button is held.
func (m *Mouse) Dragging() bool { return m.left }

// Move records a cursor sample. Outside a drag both samples are dropped.
func (m *Mouse) Move(x, y float64) {
	if !m.left {
		m.Now.Valid = false
		m.Pre.Valid = false
		return
	}
	if m.Now.Valid {
		m.Pre = m.Now
	}
	m.Now = Pointer{X: x, Y: y, Valid: true}
}

// Operate returns the drag delta as (dy, dx) and consumes it.
func (m *Mouse) Operate() vecmath.Vec2 {
	if !m.Now.Valid || !m.Pre.Valid {
		return vecmath.Vec2{}
	}
	m.Pre.Valid = false
	return vecmath.Vec2{X: m.Now.Y - m.Pre.Y, Y: m.Now.X - m.Pre.X}
}
