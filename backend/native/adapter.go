// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native implements backend.Device on a wgpu HAL device.
//
// A device is either opened standalone (Open, OpenNoop) or borrowed from a
// host application through NewFromProvider. Borrowed devices are not
// destroyed by Close.
package native

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rtscene/gpucore"
	"github.com/gogpu/rtscene/internal/logger"
	"github.com/gogpu/wgpu/hal"
)

type halTexture struct {
	tex           hal.Texture
	width, height uint32
	bpp           uint32
}

// HALAdapter maps gpucore resource IDs onto HAL objects.
type HALAdapter struct {
	mu     sync.RWMutex
	name   string
	device hal.Device
	queue  hal.Queue

	nextID   atomic.Uint64
	buffers  map[gpucore.BufferID]hal.Buffer
	textures map[gpucore.TextureID]*halTexture
	shaders  []hal.ShaderModule

	release func()
	log     atomic.Pointer[slog.Logger]
	closed  bool
}

// NewHALAdapter wraps an already opened device and queue. The caller keeps
// ownership of both.
func NewHALAdapter(name string, device hal.Device, queue hal.Queue) *HALAdapter {
	a := &HALAdapter{
		name:     name,
		device:   device,
		queue:    queue,
		buffers:  make(map[gpucore.BufferID]hal.Buffer),
		textures: make(map[gpucore.TextureID]*halTexture),
	}
	return a
}

// SetLogger sets the logger for device diagnostics. Nil falls back to the
// package logger.
func (a *HALAdapter) SetLogger(l *slog.Logger) {
	a.log.Store(l)
}

func (a *HALAdapter) slogger() *slog.Logger {
	if l := a.log.Load(); l != nil {
		return l
	}
	return logger.L()
}

// Name implements backend.Device.
func (a *HALAdapter) Name() string { return a.name }

// Device returns the underlying HAL device.
func (a *HALAdapter) Device() hal.Device { return a.device }

func (a *HALAdapter) newID() uint64 { return a.nextID.Add(1) }

// CreateBuffer implements gpucore.BufferAdapter.
func (a *HALAdapter) CreateBuffer(desc gpucore.BufferDesc) (gpucore.BufferID, error) {
	if desc.Size <= 0 {
		return gpucore.InvalidID, fmt.Errorf("native: invalid buffer size %d", desc.Size)
	}
	buf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  uint64(desc.Size),
		Usage: convertBufferUsage(desc.Usage),
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create buffer %q: %w", desc.Label, err)
	}
	id := gpucore.BufferID(a.newID())

	a.mu.Lock()
	a.buffers[id] = buf
	a.mu.Unlock()
	a.slogger().Debug("native: buffer created", "label", desc.Label, "size", desc.Size, "hint", desc.Hint)
	return id, nil
}

// DestroyBuffer implements gpucore.BufferAdapter.
func (a *HALAdapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	buf, ok := a.buffers[id]
	delete(a.buffers, id)
	a.mu.Unlock()
	if ok {
		a.device.DestroyBuffer(buf)
	}
}

// WriteBuffer implements gpucore.BufferAdapter.
func (a *HALAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	a.mu.RLock()
	buf, ok := a.buffers[id]
	a.mu.RUnlock()
	if !ok {
		a.slogger().Warn("native: write to unknown buffer", "id", id)
		return
	}
	a.queue.WriteBuffer(buf, offset, data)
}

// CreateTexture implements gpucore.TextureAdapter.
func (a *HALAdapter) CreateTexture(width, height int, format gpucore.TextureFormat) (gpucore.TextureID, error) {
	f, bpp, ok := convertTextureFormat(format)
	if width <= 0 || height <= 0 || !ok {
		return gpucore.InvalidID, fmt.Errorf("%w: %dx%d format %d", ErrInvalidDimensions, width, height, format)
	}
	w, h := uint32(width), uint32(height) //nolint:gosec // checked positive above
	tex, err := a.device.CreateTexture(&hal.TextureDescriptor{
		Label:         fmt.Sprintf("scene_texture_%dx%d", w, h),
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        f,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create texture: %w", err)
	}
	id := gpucore.TextureID(a.newID())

	a.mu.Lock()
	a.textures[id] = &halTexture{tex: tex, width: w, height: h, bpp: bpp}
	a.mu.Unlock()
	return id, nil
}

// WriteTexture implements gpucore.TextureAdapter.
func (a *HALAdapter) WriteTexture(id gpucore.TextureID, data []byte) {
	a.mu.RLock()
	t, ok := a.textures[id]
	a.mu.RUnlock()
	if !ok {
		a.slogger().Warn("native: write to unknown texture", "id", id)
		return
	}
	a.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  t.width * t.bpp,
			RowsPerImage: t.height,
		},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
}

// DestroyTexture implements gpucore.TextureAdapter.
func (a *HALAdapter) DestroyTexture(id gpucore.TextureID) {
	a.mu.Lock()
	t, ok := a.textures[id]
	delete(a.textures, id)
	a.mu.Unlock()
	if ok {
		a.device.DestroyTexture(t.tex)
	}
}

// CreateShaderModule creates a shader module from SPIR-V words. The module
// lives until Close.
func (a *HALAdapter) CreateShaderModule(label string, spirv []uint32) (hal.ShaderModule, error) {
	m, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("native: compile %s: %w", label, err)
	}
	a.mu.Lock()
	a.shaders = append(a.shaders, m)
	a.mu.Unlock()
	return m, nil
}

// Close destroys every resource created through the adapter and, for
// standalone devices, the device itself. Close is idempotent.
func (a *HALAdapter) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	buffers, textures, shaders := a.buffers, a.textures, a.shaders
	a.buffers = make(map[gpucore.BufferID]hal.Buffer)
	a.textures = make(map[gpucore.TextureID]*halTexture)
	a.shaders = nil
	release := a.release
	a.mu.Unlock()

	for _, m := range shaders {
		a.device.DestroyShaderModule(m)
	}
	for _, t := range textures {
		a.device.DestroyTexture(t.tex)
	}
	for _, b := range buffers {
		a.device.DestroyBuffer(b)
	}
	if release != nil {
		release()
	}
	a.slogger().Debug("native: device closed", "name", a.name,
		"buffers", len(buffers), "textures", len(textures))
}

// Live returns the number of live buffers and textures.
func (a *HALAdapter) Live() (buffers, textures int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.buffers), len(a.textures)
}

func convertBufferUsage(u gpucore.BufferUsage) gputypes.BufferUsage {
	var out gputypes.BufferUsage
	pairs := []struct {
		from gpucore.BufferUsage
		to   gputypes.BufferUsage
	}{
		{gpucore.BufferUsageMapRead, gputypes.BufferUsageMapRead},
		{gpucore.BufferUsageMapWrite, gputypes.BufferUsageMapWrite},
		{gpucore.BufferUsageCopySrc, gputypes.BufferUsageCopySrc},
		{gpucore.BufferUsageCopyDst, gputypes.BufferUsageCopyDst},
		{gpucore.BufferUsageIndex, gputypes.BufferUsageIndex},
		{gpucore.BufferUsageVertex, gputypes.BufferUsageVertex},
		{gpucore.BufferUsageUniform, gputypes.BufferUsageUniform},
		{gpucore.BufferUsageStorage, gputypes.BufferUsageStorage},
		{gpucore.BufferUsageIndirect, gputypes.BufferUsageIndirect},
	}
	for _, p := range pairs {
		if u&p.from != 0 {
			out |= p.to
		}
	}
	return out
}

func convertTextureFormat(f gpucore.TextureFormat) (gputypes.TextureFormat, uint32, bool) {
	switch f {
	case gpucore.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm, 4, true
	case gpucore.TextureFormatRGBA32Float:
		return gputypes.TextureFormatRGBA32Float, 16, true
	default:
		return 0, 0, false
	}
}
