// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rtscene

import (
	"log/slog"

	"github.com/gogpu/rtscene/camera"
)

// Option configures a Session during creation.
//
// Example:
//
//	q := &camera.Queue{}
//	s, err := rtscene.NewSession(dev, cfg, rtscene.WithQueue(q))
type Option func(*sessionOptions)

type sessionOptions struct {
	queue      *camera.Queue
	hook       func(FrameStats)
	logger     *slog.Logger
	cpuPrepare bool
	workers    int
}

// WithQueue makes the session read input from q instead of a private queue.
// Use it when the window layer creates the queue before the session exists.
func WithQueue(q *camera.Queue) Option {
	return func(o *sessionOptions) {
		o.queue = q
	}
}

// WithFrameHook registers fn to run at the end of every successful Frame.
func WithFrameHook(fn func(FrameStats)) Option {
	return func(o *sessionOptions) {
		o.hook = fn
	}
}

// WithDeviceLogger hands l to the device if it accepts a logger.
// Without it the device logs through the package logger.
func WithDeviceLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = l
	}
}

// WithCPUPrepare computes derived geometry on the host after every scene
// sync, using a pool of the given number of workers (0 means GOMAXPROCS).
// Use it with devices that do not run the prepare compute pass, such as the
// in-memory backend.
func WithCPUPrepare(workers int) Option {
	return func(o *sessionOptions) {
		o.cpuPrepare = true
		o.workers = workers
	}
}
