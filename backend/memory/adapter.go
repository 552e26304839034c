// Package memory provides an in-memory gpucore.Adapter.
//
// Buffers and textures are plain byte slices. Every call is counted so that
// headless runs and tests can observe exactly which uploads a frame caused.
package memory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/rtscene/backend"
	"github.com/gogpu/rtscene/gpucore"
)

func init() {
	backend.Register(backend.NameMemory, func() (backend.Device, error) {
		return New(), nil
	})
}

// ErrOutOfMemory is returned when an allocation would exceed the budget.
var ErrOutOfMemory = errors.New("memory: allocation exceeds budget")

// Stats counts adapter calls since creation or the last ResetStats.
type Stats struct {
	BufferCreates  int
	BufferDestroys int
	BufferWrites   int
	BytesWritten   int

	TextureCreates  int
	TextureDestroys int
	TextureWrites   int
}

// Uploads returns the number of calls that moved data to the device.
func (s Stats) Uploads() int { return s.BufferWrites + s.TextureWrites }

type buffer struct {
	desc gpucore.BufferDesc
	data []byte
}

type texture struct {
	width, height int
	format        gpucore.TextureFormat
	data          []byte
}

// Adapter is an in-memory gpucore.Adapter. It is safe for concurrent use.
type Adapter struct {
	mu       sync.Mutex
	nextID   uint64
	budget   int
	used     int
	buffers  map[gpucore.BufferID]*buffer
	textures map[gpucore.TextureID]*texture
	stats    Stats
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBudget limits the total bytes of live buffers. Zero means unlimited.
func WithBudget(bytes int) Option {
	return func(a *Adapter) { a.budget = bytes }
}

// New creates an empty Adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		nextID:   1,
		buffers:  make(map[gpucore.BufferID]*buffer),
		textures: make(map[gpucore.TextureID]*texture),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements backend.Device.
func (a *Adapter) Name() string { return backend.NameMemory }

// Close releases every live buffer and texture.
func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.BufferDestroys += len(a.buffers)
	a.stats.TextureDestroys += len(a.textures)
	clear(a.buffers)
	clear(a.textures)
	a.used = 0
}

// CreateBuffer implements gpucore.BufferAdapter.
func (a *Adapter) CreateBuffer(desc gpucore.BufferDesc) (gpucore.BufferID, error) {
	if desc.Size <= 0 {
		return gpucore.InvalidID, fmt.Errorf("memory: invalid buffer size %d", desc.Size)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.budget > 0 && a.used+desc.Size > a.budget {
		return gpucore.InvalidID, fmt.Errorf("%w: %d + %d > %d", ErrOutOfMemory, a.used, desc.Size, a.budget)
	}
	id := gpucore.BufferID(a.nextID)
	a.nextID++
	a.buffers[id] = &buffer{desc: desc, data: make([]byte, desc.Size)}
	a.used += desc.Size
	a.stats.BufferCreates++
	return id, nil
}

// DestroyBuffer implements gpucore.BufferAdapter.
func (a *Adapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.buffers[id]
	if !ok {
		return
	}
	a.used -= b.desc.Size
	delete(a.buffers, id)
	a.stats.BufferDestroys++
}

// WriteBuffer implements gpucore.BufferAdapter.
// Writing out of range panics, mirroring a device validation failure.
func (a *Adapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.buffers[id]
	if !ok {
		panic(fmt.Sprintf("memory: write to unknown buffer %d", id))
	}
	if offset+uint64(len(data)) > uint64(len(b.data)) {
		panic(fmt.Sprintf("memory: write [%d, %d) out of range of buffer %q (%d bytes)",
			offset, offset+uint64(len(data)), b.desc.Label, len(b.data)))
	}
	copy(b.data[offset:], data)
	a.stats.BufferWrites++
	a.stats.BytesWritten += len(data)
}

// CreateTexture implements gpucore.TextureAdapter.
func (a *Adapter) CreateTexture(width, height int, format gpucore.TextureFormat) (gpucore.TextureID, error) {
	bpp := format.BytesPerPixel()
	if width <= 0 || height <= 0 || bpp == 0 {
		return gpucore.InvalidID, fmt.Errorf("memory: invalid texture %dx%d format %d", width, height, format)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	id := gpucore.TextureID(a.nextID)
	a.nextID++
	a.textures[id] = &texture{width: width, height: height, format: format, data: make([]byte, width*height*bpp)}
	a.stats.TextureCreates++
	return id, nil
}

// WriteTexture implements gpucore.TextureAdapter.
func (a *Adapter) WriteTexture(id gpucore.TextureID, data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.textures[id]
	if !ok {
		panic(fmt.Sprintf("memory: write to unknown texture %d", id))
	}
	copy(t.data, data)
	a.stats.TextureWrites++
}

// DestroyTexture implements gpucore.TextureAdapter.
func (a *Adapter) DestroyTexture(id gpucore.TextureID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.textures[id]; ok {
		delete(a.textures, id)
		a.stats.TextureDestroys++
	}
}

// Buffer returns a copy of the content and the descriptor of a live buffer.
func (a *Adapter) Buffer(id gpucore.BufferID) ([]byte, gpucore.BufferDesc, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.buffers[id]
	if !ok {
		return nil, gpucore.BufferDesc{}, false
	}
	return append([]byte(nil), b.data...), b.desc, true
}

// Texture returns a copy of the content and size of a live texture.
func (a *Adapter) Texture(id gpucore.TextureID) (data []byte, width, height int, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.textures[id]
	if !ok {
		return nil, 0, 0, false
	}
	return append([]byte(nil), t.data...), t.width, t.height, true
}

// LiveBuffers returns the IDs of all live buffers in creation order.
func (a *Adapter) LiveBuffers() []gpucore.BufferID {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]gpucore.BufferID, 0, len(a.buffers))
	for id := range a.buffers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// LiveTextures returns the number of live textures.
func (a *Adapter) LiveTextures() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.textures)
}

// BytesInUse returns the total size of live buffers.
func (a *Adapter) BytesInUse() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used
}

// Stats returns the call counters.
func (a *Adapter) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// ResetStats zeroes the call counters.
func (a *Adapter) ResetStats() {
	a.mu.Lock()
	a.stats = Stats{}
	a.mu.Unlock()
}

var _ backend.Device = (*Adapter)(nil)
