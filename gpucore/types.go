package gpucore

import "fmt"

// Resource IDs
//
// These opaque IDs represent GPU resources. Each adapter implementation
// maintains a mapping between IDs and actual backend resources.
// IDs are uint64 to accommodate various backend handle sizes.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageMapRead indicates the buffer can be mapped for reading.
	BufferUsageMapRead BufferUsage = 1 << 0

	// BufferUsageMapWrite indicates the buffer can be mapped for writing.
	BufferUsageMapWrite BufferUsage = 1 << 1

	// BufferUsageCopySrc indicates the buffer can be used as a copy source.
	BufferUsageCopySrc BufferUsage = 1 << 2

	// BufferUsageCopyDst indicates the buffer can be used as a copy destination.
	BufferUsageCopyDst BufferUsage = 1 << 3

	// BufferUsageIndex indicates the buffer can be used as an index buffer.
	BufferUsageIndex BufferUsage = 1 << 4

	// BufferUsageVertex indicates the buffer can be used as a vertex buffer.
	BufferUsageVertex BufferUsage = 1 << 5

	// BufferUsageUniform indicates the buffer can be used as a uniform buffer.
	BufferUsageUniform BufferUsage = 1 << 6

	// BufferUsageStorage indicates the buffer can be used as a storage buffer.
	BufferUsageStorage BufferUsage = 1 << 7

	// BufferUsageIndirect indicates the buffer can be used for indirect dispatch/draw.
	BufferUsageIndirect BufferUsage = 1 << 8
)

// UsageHint tells the backend how often the content of a buffer changes.
type UsageHint uint8

const (
	// HintStatic marks content written once and read many times.
	HintStatic UsageHint = iota

	// HintDynamic marks content rewritten as often as every frame.
	HintDynamic
)

// String returns the string representation of UsageHint.
func (h UsageHint) String() string {
	switch h {
	case HintStatic:
		return "static"
	case HintDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("UsageHint(%d)", int(h))
	}
}

// TextureFormat specifies the format of texture data.
type TextureFormat uint32

// Texture formats.
const (
	// TextureFormatRGBA8Unorm is 8-bit RGBA, normalized unsigned integer.
	TextureFormatRGBA8Unorm TextureFormat = iota + 1

	// TextureFormatRGBA32Float is 32-bit RGBA, floating point.
	TextureFormatRGBA32Float
)

// BytesPerPixel returns the size of one texel in bytes, or 0 for unknown formats.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatRGBA8Unorm:
		return 4
	case TextureFormatRGBA32Float:
		return 16
	default:
		return 0
	}
}

// BindingType specifies the type of a shader binding.
type BindingType uint32

// Binding types.
const (
	// BindingTypeUniformBuffer is a uniform buffer binding.
	BindingTypeUniformBuffer BindingType = iota + 1

	// BindingTypeStorageBuffer is a storage buffer binding (read-write).
	BindingTypeStorageBuffer

	// BindingTypeReadOnlyStorageBuffer is a read-only storage buffer binding.
	BindingTypeReadOnlyStorageBuffer

	// BindingTypeVertexBuffer is a vertex buffer slot.
	BindingTypeVertexBuffer
)

// String returns the string representation of BindingType.
func (t BindingType) String() string {
	switch t {
	case BindingTypeUniformBuffer:
		return "uniform"
	case BindingTypeStorageBuffer:
		return "storage"
	case BindingTypeReadOnlyStorageBuffer:
		return "read-only-storage"
	case BindingTypeVertexBuffer:
		return "vertex"
	default:
		return fmt.Sprintf("BindingType(%d)", int(t))
	}
}

// Usage returns the buffer usage implied by binding a buffer as t.
// Every bound buffer is also a copy destination so it can be written by
// the queue.
func (t BindingType) Usage() BufferUsage {
	switch t {
	case BindingTypeUniformBuffer:
		return BufferUsageUniform | BufferUsageCopyDst
	case BindingTypeStorageBuffer, BindingTypeReadOnlyStorageBuffer:
		return BufferUsageStorage | BufferUsageCopyDst
	case BindingTypeVertexBuffer:
		return BufferUsageVertex | BufferUsageCopyDst
	default:
		return BufferUsageCopyDst
	}
}

// BufferDesc describes a buffer to create.
type BufferDesc struct {
	// Label is an optional debug label.
	Label string

	// Size is the buffer size in bytes. Must be positive.
	Size int

	// Usage is a bitmask of BufferUsage* flags.
	Usage BufferUsage

	// Hint tells the backend how often the content changes.
	Hint UsageHint
}

// BindGroupEntry describes a single binding in a bind group.
type BindGroupEntry struct {
	// Binding is the binding index.
	Binding uint32

	// Type is the type of resource bound at this index.
	Type BindingType

	// Buffer is the buffer to bind.
	Buffer BufferID

	// Offset is the offset into the buffer.
	Offset uint64

	// Size is the size of the buffer range to bind.
	// Use 0 to bind the entire buffer from offset.
	Size uint64

	// Label is the debug label of the bound buffer.
	Label string
}
