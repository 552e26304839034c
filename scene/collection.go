package scene

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/gogpu/rtscene/buffer"
	"github.com/gogpu/rtscene/gpucore"
)

// syncResult says what a collection did during one synchronization pass.
type syncResult uint8

const (
	syncNone syncResult = iota
	syncReallocated
	syncRefreshed
)

// Collection is a growable array of one record type mirrored into a GPU
// storage buffer.
//
// Two flags drive synchronization. numChanged is set when the length
// differs from what the buffer was sized for and forces a reallocation.
// upToDate is cleared when records are replaced and forces a same-size
// rewrite. Both are settled by the owning Model's DataInit.
//
// Collection implements buffer.Data.
type Collection[T any] struct {
	name  string
	items []T
	buf   *buffer.Object

	numChanged bool
	upToDate   bool

	derived *Derived
}

func newCollection[T any](adapter gpucore.BufferAdapter, name string, binding uint32) (*Collection[T], error) {
	buf, err := buffer.New(adapter, buffer.Descriptor{
		Label: name,
		Kind:  gpucore.BindingTypeReadOnlyStorageBuffer,
		Index: binding,
		Hint:  gpucore.HintDynamic,
	})
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", name, err)
	}
	return &Collection[T]{name: name, buf: buf, upToDate: true}, nil
}

// Name returns the collection's debug name.
func (c *Collection[T]) Name() string { return c.name }

// Append adds records at the end.
func (c *Collection[T]) Append(records ...T) {
	if len(records) == 0 {
		return
	}
	c.items = append(c.items, records...)
	c.numChanged = true
}

// Set replaces record i. It panics if i is out of range.
func (c *Collection[T]) Set(i int, record T) {
	c.items[i] = record
	c.upToDate = false
}

// Len returns the number of records.
func (c *Collection[T]) Len() int { return len(c.items) }

// At returns record i. It panics if i is out of range.
func (c *Collection[T]) At(i int) T { return c.items[i] }

// All iterates over the records in order.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, r := range c.items {
			if !yield(i, r) {
				return
			}
		}
	}
}

// NumChanged reports whether the length changed since the last sync.
func (c *Collection[T]) NumChanged() bool { return c.numChanged }

// UpToDate reports whether the GPU content matches the records.
func (c *Collection[T]) UpToDate() bool { return c.upToDate }

// Derived returns the GPU-only representation, or nil.
func (c *Collection[T]) Derived() *Derived { return c.derived }

// Buffer returns the GPU buffer object.
func (c *Collection[T]) Buffer() *buffer.Object { return c.buf }

// Bytes implements buffer.Data.
func (c *Collection[T]) Bytes() []byte { return buffer.SliceBytes(c.items) }

// Size implements buffer.Data.
func (c *Collection[T]) Size() int {
	var zero T
	return len(c.items) * int(unsafe.Sizeof(zero))
}

// dataInit pushes pending edits to the GPU.
// On error the flags are left as they were.
func (c *Collection[T]) dataInit() (syncResult, error) {
	res := syncNone
	switch {
	case c.numChanged:
		if err := c.buf.Allocate(c); err != nil {
			return syncNone, fmt.Errorf("scene: %s: %w", c.name, err)
		}
		if c.derived != nil {
			if err := c.derived.resize(len(c.items)); err != nil {
				return syncNone, fmt.Errorf("scene: %s: %w", c.name, err)
			}
		}
		c.numChanged = false
		res = syncReallocated
	case !c.upToDate:
		if err := c.buf.Refresh(c); err != nil {
			return syncNone, fmt.Errorf("scene: %s: %w", c.name, err)
		}
		if c.derived != nil {
			c.derived.invalidate()
		}
		res = syncRefreshed
	}
	c.upToDate = true
	return res, nil
}

// destroy releases the GPU buffers and schedules a full upload for the
// next sync if there is anything to upload.
func (c *Collection[T]) destroy() {
	c.buf.Destroy()
	c.numChanged = len(c.items) > 0
	if c.derived != nil {
		c.derived.buf.Destroy()
	}
}
