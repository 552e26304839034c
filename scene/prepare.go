// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"fmt"

	"github.com/gogpu/rtscene/buffer"
	"github.com/gogpu/rtscene/internal/logger"
	"github.com/gogpu/rtscene/internal/parallel"
)

// prepareChunk is the number of triangles one worker converts at a time.
const prepareChunk = 256

// PrepareTriangle converts t to its intersection-ready form, exactly as the
// prepare_triangles compute entry point does.
// Degenerate triangles produce non-finite coefficients and never hit.
func PrepareTriangle(t Triangle) TriangleGPU {
	v0 := t.Vertices[0].Vec3()
	e1 := t.Vertices[1].Vec3().Sub(v0)
	e2 := t.Vertices[2].Vec3().Sub(v0)
	n := e1.Cross(e2)
	inv := 1 / n.Dot(n)
	unit := n.Normalize()

	return TriangleGPU{
		Plane: unit.Vec4(-unit.Dot(v0)),
		P1:    v0.Vec4(0),
		K1:    e2.Cross(n).Scale(inv).Vec4(0),
		K2:    n.Cross(e1).Scale(inv).Vec4(0),
		Color: t.Color,
	}
}

// PrepareDerived fills the derived triangle buffer on the CPU for devices
// that cannot run the compute pass. It must follow DataInit. It reports
// whether anything was computed; an up-to-date buffer is left alone.
func (m *Model) PrepareDerived(pool *parallel.Pool) (bool, error) {
	d := m.triangles.derived
	if d.Count() != m.triangles.Len() {
		return false, fmt.Errorf("scene: %s: %d elements for %d triangles, run DataInit first",
			d.name, d.Count(), m.triangles.Len())
	}
	if d.UpToDate() {
		return false, nil
	}

	src := m.triangles.items
	out := make(buffer.Slice[TriangleGPU], len(src))
	pool.Range(len(src), prepareChunk, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = PrepareTriangle(src[i])
		}
	})
	if len(out) > 0 {
		if err := d.buf.Refresh(out); err != nil {
			return false, fmt.Errorf("scene: %s: %w", d.name, err)
		}
	}
	d.MarkComputed()
	logger.L().Debug("scene: derived computed on CPU", "name", d.name, "count", len(out))
	return true, nil
}
