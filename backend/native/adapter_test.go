// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rtscene/backend"
	"github.com/gogpu/rtscene/gpucore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openNoop(t *testing.T) *HALAdapter {
	t.Helper()
	a, err := OpenNoop()
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestNoopBuffers(t *testing.T) {
	a := openNoop(t)
	assert.Equal(t, backend.NameNoop, a.Name())

	id, err := a.CreateBuffer(gpucore.BufferDesc{
		Label: "spheres",
		Size:  256,
		Usage: gpucore.BindingTypeReadOnlyStorageBuffer.Usage(),
		Hint:  gpucore.HintDynamic,
	})
	require.NoError(t, err)
	assert.NotEqual(t, gpucore.BufferID(gpucore.InvalidID), id)

	a.WriteBuffer(id, 0, make([]byte, 256))
	nb, _ := a.Live()
	assert.Equal(t, 1, nb)

	a.DestroyBuffer(id)
	a.DestroyBuffer(id)
	nb, _ = a.Live()
	assert.Zero(t, nb)
}

func TestNoopInvalidBuffer(t *testing.T) {
	a := openNoop(t)
	_, err := a.CreateBuffer(gpucore.BufferDesc{Label: "empty"})
	assert.Error(t, err)
}

func TestNoopTextures(t *testing.T) {
	a := openNoop(t)
	id, err := a.CreateTexture(4, 2, gpucore.TextureFormatRGBA8Unorm)
	require.NoError(t, err)
	a.WriteTexture(id, make([]byte, 4*2*4))
	_, nt := a.Live()
	assert.Equal(t, 1, nt)

	a.DestroyTexture(id)
	_, nt = a.Live()
	assert.Zero(t, nt)

	_, err = a.CreateTexture(0, 2, gpucore.TextureFormatRGBA8Unorm)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestCloseReleasesResources(t *testing.T) {
	a, err := OpenNoop()
	require.NoError(t, err)
	_, err = a.CreateBuffer(gpucore.BufferDesc{Label: "a", Size: 16})
	require.NoError(t, err)
	_, err = a.CreateTexture(1, 1, gpucore.TextureFormatRGBA8Unorm)
	require.NoError(t, err)

	a.Close()
	nb, nt := a.Live()
	assert.Zero(t, nb)
	assert.Zero(t, nt)
	a.Close()
}

func TestNoopRegistered(t *testing.T) {
	assert.Contains(t, backend.Available(), backend.NameNoop)
	dev, err := backend.Open(backend.NameNoop)
	require.NoError(t, err)
	defer dev.Close()
	assert.Equal(t, backend.NameNoop, dev.Name())
}

func TestConvertBufferUsage(t *testing.T) {
	got := convertBufferUsage(gpucore.BufferUsageUniform | gpucore.BufferUsageCopyDst)
	assert.Equal(t, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst, got)
	assert.Equal(t, gputypes.BufferUsage(0), convertBufferUsage(0))
}

// mockProvider implements gpucontext.DeviceProvider and exposes HAL
// objects the way a host window library does.
type mockProvider struct {
	halDevice any
	halQueue  any
	info      gpucontext.AdapterInfo
}

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return m.info }
func (m *mockProvider) HalDevice() any                        { return m.halDevice }
func (m *mockProvider) HalQueue() any                         { return m.halQueue }

func TestNewFromProvider(t *testing.T) {
	host := openNoop(t)

	a, err := NewFromProvider(&mockProvider{halDevice: host.device, halQueue: host.queue})
	require.NoError(t, err)
	assert.Equal(t, "provider", a.Name())
	id, err := a.CreateBuffer(gpucore.BufferDesc{Label: "summary", Size: 32})
	require.NoError(t, err)
	a.WriteBuffer(id, 0, make([]byte, 32))
	a.Close()

	// Borrowed device stays usable by the host.
	_, err = host.CreateBuffer(gpucore.BufferDesc{Label: "host", Size: 16})
	assert.NoError(t, err)
}

func TestNewFromProviderAdapterName(t *testing.T) {
	host := openNoop(t)

	a, err := NewFromProvider(&mockProvider{
		halDevice: host.device,
		halQueue:  host.queue,
		info:      gpucontext.AdapterInfo{Name: "Software Renderer", Type: gpucontext.AdapterTypeSoftware},
	})
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, "Software Renderer", a.Name())
}

func TestNewFromProviderErrors(t *testing.T) {
	_, err := NewFromProvider(nil)
	assert.ErrorIs(t, err, ErrNilProvider)

	_, err = NewFromProvider(&mockProvider{halDevice: "nope", halQueue: nil})
	assert.ErrorIs(t, err, ErrNilProvider)
}
