// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rtscene

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/rtscene/buffer"
	"github.com/gogpu/rtscene/camera"
	"github.com/gogpu/rtscene/config"
	"github.com/gogpu/rtscene/gpucore"
	"github.com/gogpu/rtscene/internal/parallel"
	"github.com/gogpu/rtscene/scene"
	"github.com/gogpu/rtscene/texture"
	"github.com/gogpu/rtscene/viewport"
)

// ErrClosed is returned by Frame after Close.
var ErrClosed = errors.New("rtscene: session closed")

// FrameStats reports the work done by one Frame.
type FrameStats struct {
	// Index counts frames from 1.
	Index uint64

	// Events is the number of input events applied.
	Events int

	// Resized is set when the frame size changed.
	Resized bool

	// TransformUploaded is set when the camera moved and its record was
	// written to the GPU.
	TransformUploaded bool

	// Scene lists the collection uploads.
	Scene scene.SyncStats

	// DerivedComputed is set when derived geometry was rebuilt on the host.
	DerivedComputed bool

	// Elapsed is the CPU time spent in Frame.
	Elapsed time.Duration
}

// Uploads returns the number of buffer uploads issued during the frame.
func (s FrameStats) Uploads() int {
	n := s.Scene.Uploads()
	if s.TransformUploaded {
		n++
	}
	if s.DerivedComputed {
		n++
	}
	return n
}

// Session ties the camera, the scene model and the viewport to one device.
type Session struct {
	adapter gpucore.Adapter
	cfg     config.Config

	queue     *camera.Queue
	transform *camera.Transform
	transBuf  *buffer.Object
	model     *scene.Model
	view      *viewport.Viewport
	textures  *texture.Library
	pool      *parallel.Pool

	hook   func(FrameStats)
	frames uint64
	closed bool
}

// NewSession validates cfg, creates the scene state on adapter and uploads
// the viewport descriptors. The camera record is uploaded by the first Frame.
func NewSession(adapter gpucore.Adapter, cfg config.Config, opts ...Option) (*Session, error) {
	if adapter == nil {
		return nil, buffer.ErrNilAdapter
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.queue == nil {
		o.queue = &camera.Queue{}
	}
	if o.logger != nil {
		propagateLogger(adapter, o.logger)
	}

	s := &Session{
		adapter:   adapter,
		cfg:       cfg,
		queue:     o.queue,
		transform: camera.New(cfg.Camera),
		textures:  texture.NewLibrary(adapter),
		hook:      o.hook,
	}

	var err error
	s.transBuf, err = buffer.New(adapter, buffer.Descriptor{
		Label: "transform",
		Kind:  gpucore.BindingTypeUniformBuffer,
		Index: cfg.Bindings.Transform,
		Hint:  gpucore.HintDynamic,
	})
	if err != nil {
		return nil, fmt.Errorf("rtscene: transform: %w", err)
	}
	if s.model, err = scene.New(adapter, cfg.Bindings.Scene); err != nil {
		return nil, err
	}
	s.view, err = viewport.New(adapter, cfg.Bindings.Viewport, cfg.Frame.Width, cfg.Frame.Height)
	if err != nil {
		return nil, err
	}
	if err := s.view.Init(); err != nil {
		s.view.Destroy()
		return nil, err
	}
	s.transform.Init(cfg.Frame.Height)
	if o.cpuPrepare {
		s.pool = parallel.NewPool(o.workers)
	}

	Logger().Info("rtscene: session created",
		"width", cfg.Frame.Width, "height", cfg.Frame.Height)
	return s, nil
}

// Queue returns the input queue. Safe to use from any goroutine.
func (s *Session) Queue() *camera.Queue { return s.queue }

// Transform returns the camera.
func (s *Session) Transform() *camera.Transform { return s.transform }

// Model returns the scene model. Edits become visible on the GPU at the
// next Frame.
func (s *Session) Model() *scene.Model { return s.model }

// Viewport returns the frame buffers.
func (s *Session) Viewport() *viewport.Viewport { return s.view }

// Textures returns the texture library whose indices Color records refer to.
func (s *Session) Textures() *texture.Library { return s.textures }

// Config returns the configuration the session was created with.
func (s *Session) Config() config.Config { return s.cfg }

// Resize applies a new frame size immediately. Frame sizes arriving through
// the queue as camera.ResizeEvent are handled the same way.
func (s *Session) Resize(w, h uint32) (bool, error) {
	s.transform.Resize(w, h)
	return s.view.Resize(w, h)
}

// Frame runs one frame of host work:
// pending input is applied, the camera integrates it, the camera record is
// uploaded if it changed, and the scene model is synchronized.
//
// Errors come from the GPU backend and leave the session unusable.
func (s *Session) Frame() (FrameStats, error) {
	if s.closed {
		return FrameStats{}, ErrClosed
	}
	start := time.Now()
	s.frames++
	stats := FrameStats{Index: s.frames}

	events := s.queue.Take()
	for _, e := range events {
		if r, ok := e.(camera.ResizeEvent); ok {
			resized, err := s.Resize(r.Width, r.Height)
			if err != nil {
				return stats, fmt.Errorf("rtscene: frame %d: %w", s.frames, err)
			}
			stats.Resized = stats.Resized || resized
			continue
		}
		e.Apply(s.transform)
	}
	stats.Events = len(events)

	s.transform.Operate()
	if s.transform.Updated() {
		if err := s.transBuf.Upload(buffer.Pointer[camera.Record]{P: s.transform.RecordPtr()}); err != nil {
			return stats, fmt.Errorf("rtscene: frame %d: transform: %w", s.frames, err)
		}
		s.transform.ClearUpdated()
		stats.TransformUploaded = true
	}

	sync, err := s.model.DataInit()
	stats.Scene = sync
	if err != nil {
		return stats, fmt.Errorf("rtscene: frame %d: %w", s.frames, err)
	}
	if s.pool != nil {
		if stats.DerivedComputed, err = s.model.PrepareDerived(s.pool); err != nil {
			return stats, fmt.Errorf("rtscene: frame %d: %w", s.frames, err)
		}
	}
	stats.Elapsed = time.Since(start)

	Logger().Debug("rtscene: frame",
		"index", stats.Index,
		"events", stats.Events,
		"transform", stats.TransformUploaded,
		"uploads", stats.Uploads())
	if s.hook != nil {
		s.hook(stats)
	}
	return stats, nil
}

// Entries returns a bind group entry for every allocated buffer: viewport,
// camera and scene.
func (s *Session) Entries() []gpucore.BindGroupEntry {
	entries := s.view.Entries()
	if s.transBuf.Allocated() {
		entries = append(entries, s.transBuf.Entry())
	}
	return append(entries, s.model.Entries()...)
}

// Close releases every GPU resource owned by the session. The device
// itself is left open.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.model.Destroy()
	s.view.Destroy()
	s.transBuf.Destroy()
	s.textures.Destroy()
	if s.pool != nil {
		s.pool.Close()
	}
}
