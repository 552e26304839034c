package buffer

import (
	"errors"
	"fmt"

	"github.com/gogpu/rtscene/gpucore"
	"github.com/gogpu/rtscene/internal/logger"
)

// Buffer errors.
var (
	// ErrNilAdapter is returned when an Object is created without an adapter.
	ErrNilAdapter = errors.New("buffer: adapter is nil")

	// ErrSizeMismatch is returned by Refresh when the content size differs
	// from the allocated size.
	ErrSizeMismatch = errors.New("buffer: content size differs from allocated size")

	// ErrNegativeSize is returned when a negative size is requested.
	ErrNegativeSize = errors.New("buffer: negative size")
)

// Descriptor describes the binding point an Object serves.
type Descriptor struct {
	// Label is a debug label, also used in log output.
	Label string

	// Kind is how the buffer is bound.
	Kind gpucore.BindingType

	// Index is the binding index within the bind group.
	Index uint32

	// Hint tells the backend how often the content changes.
	Hint gpucore.UsageHint
}

// Object is one GPU buffer bound to a fixed binding point.
// The zero size state means no GPU buffer exists.
//
// Object is not safe for concurrent use.
type Object struct {
	adapter gpucore.BufferAdapter
	desc    Descriptor

	id   gpucore.BufferID
	size int

	allocations int
	writes      int
}

// New creates an Object without allocating a GPU buffer.
func New(adapter gpucore.BufferAdapter, desc Descriptor) (*Object, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	return &Object{adapter: adapter, desc: desc}, nil
}

// Descriptor returns the binding description.
func (o *Object) Descriptor() Descriptor { return o.desc }

// ID returns the current GPU buffer, or gpucore.InvalidID when unallocated.
func (o *Object) ID() gpucore.BufferID { return o.id }

// Size returns the allocated size in bytes.
func (o *Object) Size() int { return o.size }

// Allocated reports whether a GPU buffer exists.
func (o *Object) Allocated() bool { return o.id != gpucore.InvalidID }

// Allocations returns how many GPU buffers this object has created.
func (o *Object) Allocations() int { return o.allocations }

// Writes returns how many uploads this object has issued.
func (o *Object) Writes() int { return o.writes }

// Allocate releases the current buffer, creates one sized for d and
// uploads d's bytes. A zero-sized d leaves the object unallocated.
func (o *Object) Allocate(d Data) error {
	if err := o.Reserve(d.Size()); err != nil {
		return err
	}
	if b := d.Bytes(); len(b) > 0 && o.Allocated() {
		o.adapter.WriteBuffer(o.id, 0, b)
		o.writes++
	}
	return nil
}

// Reserve releases the current buffer and creates one of size bytes
// without uploading. Used for content the GPU computes itself.
func (o *Object) Reserve(size int) error {
	if size < 0 {
		return fmt.Errorf("buffer %s: %w: %d", o.desc.Label, ErrNegativeSize, size)
	}
	o.Destroy()
	if size == 0 {
		logger.L().Debug("buffer: released", "label", o.desc.Label)
		return nil
	}
	id, err := o.adapter.CreateBuffer(gpucore.BufferDesc{
		Label: o.desc.Label,
		Size:  size,
		Usage: o.desc.Kind.Usage(),
		Hint:  o.desc.Hint,
	})
	if err != nil {
		return fmt.Errorf("buffer %s: create %d bytes: %w", o.desc.Label, size, err)
	}
	o.id = id
	o.size = size
	o.allocations++
	logger.L().Debug("buffer: allocated",
		"label", o.desc.Label, "size", size, "binding", o.desc.Index, "hint", o.desc.Hint)
	return nil
}

// Refresh rewrites the content of the existing buffer in place.
// An unallocated object falls back to Allocate.
func (o *Object) Refresh(d Data) error {
	if !o.Allocated() {
		return o.Allocate(d)
	}
	if d.Size() != o.size {
		return fmt.Errorf("buffer %s: %w: have %d, got %d", o.desc.Label, ErrSizeMismatch, o.size, d.Size())
	}
	if b := d.Bytes(); len(b) > 0 {
		o.adapter.WriteBuffer(o.id, 0, b)
		o.writes++
		logger.L().Debug("buffer: refreshed", "label", o.desc.Label, "size", len(b))
	}
	return nil
}

// Upload writes d in place when the size matches the allocated buffer and
// reallocates otherwise. Fixed-size records use it.
func (o *Object) Upload(d Data) error {
	if o.Allocated() && d.Size() == o.size {
		return o.Refresh(d)
	}
	return o.Allocate(d)
}

// Destroy releases the GPU buffer, if any.
func (o *Object) Destroy() {
	if o.id == gpucore.InvalidID {
		return
	}
	o.adapter.DestroyBuffer(o.id)
	o.id = gpucore.InvalidID
	o.size = 0
}

// Entry returns the bind group entry for the current buffer.
func (o *Object) Entry() gpucore.BindGroupEntry {
	return gpucore.BindGroupEntry{
		Binding: o.desc.Index,
		Type:    o.desc.Kind,
		Buffer:  o.id,
		Size:    uint64(o.size),
		Label:   o.desc.Label,
	}
}
