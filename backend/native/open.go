// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rtscene/backend"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

func init() {
	backend.Register(backend.NameNoop, func() (backend.Device, error) {
		return OpenNoop()
	})
}

// Open creates a standalone device on the given HAL backend, preferring a
// discrete or integrated GPU.
func Open(kind gputypes.Backend) (*HALAdapter, error) {
	b, ok := hal.GetBackend(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, kind)
	}
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapters
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	a := NewHALAdapter(backend.NameVulkan, openDev.Device, openDev.Queue)
	a.release = func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	a.slogger().Info("native: GPU initialized", "adapter", selected.Info.Name)
	return a, nil
}

// OpenNoop creates a device on the noop HAL backend. Every call succeeds
// and nothing is rendered; it serves headless runs and tests.
func OpenNoop() (*HALAdapter, error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapters
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	a := NewHALAdapter(backend.NameNoop, openDev.Device, openDev.Queue)
	a.release = func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return a, nil
}

// NewFromProvider borrows the device of a host application. The provider
// must also implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue. Close releases only resources created through
// the returned adapter. The adapter is named after the host's GPU when the
// provider reports one.
func NewFromProvider(provider gpucontext.DeviceProvider) (*HALAdapter, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: HalDevice/HalQueue not implemented", ErrNilProvider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNilProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNilProvider)
	}
	name := "provider"
	if info := provider.AdapterInfo(); info.Name != "" {
		name = info.Name
	}
	return NewHALAdapter(name, device, queue), nil
}

var _ backend.Device = (*HALAdapter)(nil)
