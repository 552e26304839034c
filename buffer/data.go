// Package buffer binds CPU-side record data to GPU buffer objects.
//
// A [Data] value exposes a contiguous byte view of its content. An [Object]
// owns one GPU buffer bound to a fixed binding point and decides how that
// content reaches the GPU: full reallocation when the byte size changes,
// a same-size write otherwise.
package buffer

import "unsafe"

// Data is implemented by anything that can be uploaded into a GPU buffer.
type Data interface {
	// Bytes returns the raw content, tightly packed in platform byte order.
	// It returns nil for content computed on the GPU.
	Bytes() []byte

	// Size returns the byte size the GPU buffer must have.
	Size() int
}

// SliceBytes returns the bytes backing s without copying.
// T must be a fixed-size type without pointers.
func SliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero)))
}

// ValueBytes returns the bytes backing *v without copying.
func ValueBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// Value adapts a single record to Data.
type Value[T any] struct {
	V T
}

// Bytes implements Data.
func (v *Value[T]) Bytes() []byte { return ValueBytes(&v.V) }

// Size implements Data.
func (v *Value[T]) Size() int { return int(unsafe.Sizeof(v.V)) }

// Slice adapts a record slice to Data.
type Slice[T any] []T

// Bytes implements Data.
func (s Slice[T]) Bytes() []byte { return SliceBytes(s) }

// Size implements Data.
func (s Slice[T]) Size() int {
	var zero T
	return len(s) * int(unsafe.Sizeof(zero))
}

// Pointer adapts a record owned elsewhere to Data. The record is read at
// upload time.
type Pointer[T any] struct {
	P *T
}

// Bytes implements Data.
func (p Pointer[T]) Bytes() []byte { return ValueBytes(p.P) }

// Size implements Data.
func (p Pointer[T]) Size() int { return int(unsafe.Sizeof(*p.P)) }

// Reserved is Data for GPU-only content of a given size.
type Reserved int

// Bytes implements Data.
func (Reserved) Bytes() []byte { return nil }

// Size implements Data.
func (r Reserved) Size() int { return int(r) }
