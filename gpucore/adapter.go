package gpucore

// BufferAdapter creates, writes and releases GPU buffers.
//
// Resource lifecycle:
//   - Buffers are created via CreateBuffer
//   - Buffers must be explicitly destroyed via DestroyBuffer
//   - IDs become invalid after destruction and must not be reused
type BufferAdapter interface {
	// CreateBuffer creates a GPU buffer described by desc.
	// Returns the buffer ID or an error if allocation fails.
	CreateBuffer(desc BufferDesc) (BufferID, error)

	// DestroyBuffer releases a GPU buffer. Unknown IDs are ignored.
	DestroyBuffer(id BufferID)

	// WriteBuffer writes data to a buffer at the given byte offset.
	// The data is copied to the GPU immediately or staged for later upload;
	// the caller may reuse data after the call returns.
	WriteBuffer(id BufferID, offset uint64, data []byte)
}

// TextureAdapter creates, writes and releases GPU textures.
type TextureAdapter interface {
	// CreateTexture creates a 2D texture.
	// Returns the texture ID or an error if allocation fails.
	CreateTexture(width, height int, format TextureFormat) (TextureID, error)

	// WriteTexture writes data to a texture.
	// The data must match the texture format and dimensions.
	WriteTexture(id TextureID, data []byte)

	// DestroyTexture releases a GPU texture. Unknown IDs are ignored.
	DestroyTexture(id TextureID)
}

// Adapter is the full resource interface a scene session needs.
// Implementations must be safe for concurrent use.
type Adapter interface {
	BufferAdapter
	TextureAdapter
}
