package viewport

import (
	"testing"
	"unsafe"

	"github.com/gogpu/rtscene/backend/memory"
	"github.com/gogpu/rtscene/buffer"
	"github.com/gogpu/rtscene/gpucore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSizes(t *testing.T) {
	assert.Equal(t, uintptr(32), unsafe.Sizeof(Quad{}))
	assert.Equal(t, uintptr(8), unsafe.Sizeof(Scale{}))
}

func TestNewInvalidSize(t *testing.T) {
	_, err := New(memory.New(), DefaultBindings(), 0, 10)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestInit(t *testing.T) {
	a := memory.New()
	v, err := New(a, DefaultBindings(), 4, 2)
	require.NoError(t, err)
	require.NoError(t, v.Init())

	st := a.Stats()
	assert.Equal(t, 3, st.BufferCreates)
	assert.Equal(t, 2, st.BufferWrites, "frame data must not be uploaded")

	quad, desc, ok := a.Buffer(v.QuadBuffer())
	require.True(t, ok)
	q := FullScreen
	assert.Equal(t, buffer.ValueBytes(&q), quad)
	assert.Equal(t, gpucore.HintStatic, desc.Hint)
	assert.Equal(t, gpucore.BufferUsageVertex|gpucore.BufferUsageCopyDst, desc.Usage)

	entries := v.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(8), entries[0].Size)
	assert.Equal(t, uint64(4*2*PixelSize), entries[1].Size)
	assert.Equal(t, DefaultBindings().FrameData, entries[1].Binding)
}

func TestResize(t *testing.T) {
	a := memory.New()
	v, err := New(a, DefaultBindings(), 4, 2)
	require.NoError(t, err)
	require.NoError(t, v.Init())
	a.ResetStats()

	changed, err := v.Resize(4, 2)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, memory.Stats{}, a.Stats())

	changed, err = v.Resize(8, 8)
	require.NoError(t, err)
	assert.True(t, changed)
	w, h := v.Size()
	assert.Equal(t, uint32(8), w)
	assert.Equal(t, uint32(8), h)
	// Scale rewritten in place, frame data reallocated.
	assert.Equal(t, memory.Stats{BufferCreates: 1, BufferDestroys: 1, BufferWrites: 1, BytesWritten: 8}, a.Stats())

	_, err = v.Resize(0, 8)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestDestroy(t *testing.T) {
	a := memory.New()
	v, err := New(a, DefaultBindings(), 2, 2)
	require.NoError(t, err)
	require.NoError(t, v.Init())
	v.Destroy()
	assert.Empty(t, a.LiveBuffers())
}
