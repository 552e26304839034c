// Package viewport owns the fixed-size frame descriptors: the full-screen
// quad, the frame resolution and the per-pixel accumulation buffer.
package viewport

import (
	"errors"
	"fmt"

	"github.com/gogpu/rtscene/buffer"
	"github.com/gogpu/rtscene/gpucore"
)

// ErrInvalidSize is returned for a zero width or height.
var ErrInvalidSize = errors.New("viewport: invalid size")

// Quad is the full-screen quad in clip space, drawn as a triangle fan.
type Quad [4][2]float32

// FullScreen is the only quad the ray tracer draws.
var FullScreen = Quad{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// Scale is the frame resolution record.
type Scale struct {
	Width, Height uint32
}

// PixelSize is the byte size of one frame data element (vec4<f32>).
const PixelSize = 16

// Bindings assigns slots to the viewport buffers.
type Bindings struct {
	// Quad is the vertex buffer slot.
	Quad uint32 `toml:"quad" yaml:"quad"`

	FrameScale uint32 `toml:"frame_scale" yaml:"frame_scale"`
	FrameData  uint32 `toml:"frame_data" yaml:"frame_data"`
}

// DefaultBindings returns the slots declared in the shader layout.
func DefaultBindings() Bindings {
	return Bindings{Quad: 0, FrameScale: 0, FrameData: 1}
}

// Viewport holds the frame buffers for one framebuffer size.
type Viewport struct {
	quad  buffer.Value[Quad]
	scale buffer.Value[Scale]

	quadBuf  *buffer.Object
	scaleBuf *buffer.Object
	frameBuf *buffer.Object
}

// New creates a Viewport of w×h pixels. Nothing is allocated until Init.
func New(adapter gpucore.BufferAdapter, b Bindings, w, h uint32) (*Viewport, error) {
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	v := &Viewport{
		quad:  buffer.Value[Quad]{V: FullScreen},
		scale: buffer.Value[Scale]{V: Scale{Width: w, Height: h}},
	}
	var err error
	if v.quadBuf, err = buffer.New(adapter, buffer.Descriptor{
		Label: "view_quad", Kind: gpucore.BindingTypeVertexBuffer, Index: b.Quad, Hint: gpucore.HintStatic,
	}); err != nil {
		return nil, fmt.Errorf("viewport: %w", err)
	}
	if v.scaleBuf, err = buffer.New(adapter, buffer.Descriptor{
		Label: "frame_scale", Kind: gpucore.BindingTypeUniformBuffer, Index: b.FrameScale, Hint: gpucore.HintStatic,
	}); err != nil {
		return nil, fmt.Errorf("viewport: %w", err)
	}
	if v.frameBuf, err = buffer.New(adapter, buffer.Descriptor{
		Label: "frame_data", Kind: gpucore.BindingTypeStorageBuffer, Index: b.FrameData, Hint: gpucore.HintDynamic,
	}); err != nil {
		return nil, fmt.Errorf("viewport: %w", err)
	}
	return v, nil
}

// Init uploads the quad and the resolution and reserves the frame data.
func (v *Viewport) Init() error {
	if err := v.quadBuf.Allocate(&v.quad); err != nil {
		return fmt.Errorf("viewport: quad: %w", err)
	}
	if err := v.scaleBuf.Allocate(&v.scale); err != nil {
		return fmt.Errorf("viewport: scale: %w", err)
	}
	if err := v.frameBuf.Reserve(v.frameSize()); err != nil {
		return fmt.Errorf("viewport: frame data: %w", err)
	}
	return nil
}

// Resize switches to a new framebuffer size. The resolution is rewritten
// in place and the frame data reallocated; same-size calls do nothing.
func (v *Viewport) Resize(w, h uint32) (bool, error) {
	if w == 0 || h == 0 {
		return false, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if v.scale.V == (Scale{Width: w, Height: h}) {
		return false, nil
	}
	v.scale.V = Scale{Width: w, Height: h}
	if err := v.scaleBuf.Upload(&v.scale); err != nil {
		return false, fmt.Errorf("viewport: scale: %w", err)
	}
	if err := v.frameBuf.Reserve(v.frameSize()); err != nil {
		return false, fmt.Errorf("viewport: frame data: %w", err)
	}
	return true, nil
}

// Size returns the current resolution.
func (v *Viewport) Size() (w, h uint32) { return v.scale.V.Width, v.scale.V.Height }

func (v *Viewport) frameSize() int {
	return int(v.scale.V.Width) * int(v.scale.V.Height) * PixelSize
}

// Entries returns the bind group entries of the allocated buffers.
// The quad is a vertex buffer and is bound separately; see QuadBuffer.
func (v *Viewport) Entries() []gpucore.BindGroupEntry {
	var entries []gpucore.BindGroupEntry
	for _, o := range []*buffer.Object{v.scaleBuf, v.frameBuf} {
		if o.Allocated() {
			entries = append(entries, o.Entry())
		}
	}
	return entries
}

// QuadBuffer returns the vertex buffer holding the quad.
func (v *Viewport) QuadBuffer() gpucore.BufferID { return v.quadBuf.ID() }

// Destroy releases the buffers.
func (v *Viewport) Destroy() {
	v.quadBuf.Destroy()
	v.scaleBuf.Destroy()
	v.frameBuf.Destroy()
}
