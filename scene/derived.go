package scene

import (
	"fmt"

	"github.com/gogpu/rtscene/buffer"
	"github.com/gogpu/rtscene/gpucore"
)

// Derived is a GPU-only representation computed from an origin collection
// by a compute pass. The host keeps its element count equal to the
// origin's length and reallocates its buffer when that count changes.
// The content is produced on the GPU, or by Model.PrepareDerived on devices
// without compute.
type Derived struct {
	name     string
	elemSize int
	count    int
	buf      *buffer.Object
	upToDate bool
}

func newDerived(adapter gpucore.BufferAdapter, name string, binding uint32, elemSize int) (*Derived, error) {
	buf, err := buffer.New(adapter, buffer.Descriptor{
		Label: name,
		Kind:  gpucore.BindingTypeStorageBuffer,
		Index: binding,
		Hint:  gpucore.HintDynamic,
	})
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", name, err)
	}
	return &Derived{name: name, elemSize: elemSize, buf: buf, upToDate: true}, nil
}

// Count returns the declared element count.
func (d *Derived) Count() int { return d.count }

// UpToDate reports whether the GPU has recomputed the content since the
// origin last changed.
func (d *Derived) UpToDate() bool { return d.upToDate }

// MarkComputed records that the content was rebuilt.
func (d *Derived) MarkComputed() { d.upToDate = true }

// Buffer returns the GPU buffer object.
func (d *Derived) Buffer() *buffer.Object { return d.buf }

// resize reallocates the buffer for count elements. The count is only
// updated once the buffer exists.
func (d *Derived) resize(count int) error {
	d.upToDate = false
	if err := d.buf.Reserve(count * d.elemSize); err != nil {
		return err
	}
	d.count = count
	return nil
}

func (d *Derived) invalidate() { d.upToDate = false }
