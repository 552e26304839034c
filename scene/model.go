package scene

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/rtscene/buffer"
	"github.com/gogpu/rtscene/gpucore"
	"github.com/gogpu/rtscene/internal/logger"
)

// SyncStats reports the GPU traffic caused by one Model.DataInit.
type SyncStats struct {
	// Reallocated lists collections whose buffer was recreated and fully uploaded.
	Reallocated []string

	// Refreshed lists collections rewritten in place.
	Refreshed []string

	// SummaryUploaded is set when the counts changed.
	SummaryUploaded bool
}

// Uploads returns the number of buffer uploads issued.
func (s SyncStats) Uploads() int {
	n := len(s.Reallocated) + len(s.Refreshed)
	if s.SummaryUploaded {
		n++
	}
	return n
}

// Model is the scene: seven primitive collections and the summary of their
// counts. A Model is used from the render goroutine only.
type Model struct {
	planes      *Collection[Plane]
	triangles   *Collection[Triangle]
	spheres     *Collection[Sphere]
	circles     *Collection[Circle]
	cylinders   *Collection[Cylinder]
	cones       *Collection[Cone]
	pointLights *Collection[PointLight]

	summary      buffer.Value[Summary]
	summaryBuf   *buffer.Object
	summaryDirty bool

	version uint64
}

// New creates an empty Model. No GPU memory is allocated until the first
// DataInit after an edit.
func New(adapter gpucore.BufferAdapter, b Bindings) (*Model, error) {
	summaryBuf, err := buffer.New(adapter, buffer.Descriptor{
		Label: "summary",
		Kind:  gpucore.BindingTypeUniformBuffer,
		Index: b.Summary,
		Hint:  gpucore.HintStatic,
	})
	if err != nil {
		return nil, fmt.Errorf("scene: summary: %w", err)
	}
	m := &Model{summaryBuf: summaryBuf}

	if m.planes, err = newCollection[Plane](adapter, "planes", b.Planes); err != nil {
		return nil, err
	}
	if m.triangles, err = newCollection[Triangle](adapter, "triangles", b.Triangles); err != nil {
		return nil, err
	}
	if m.triangles.derived, err = newDerived(adapter, "triangles_gpu", b.TrianglesGPU, int(unsafe.Sizeof(TriangleGPU{}))); err != nil {
		return nil, err
	}
	if m.spheres, err = newCollection[Sphere](adapter, "spheres", b.Spheres); err != nil {
		return nil, err
	}
	if m.circles, err = newCollection[Circle](adapter, "circles", b.Circles); err != nil {
		return nil, err
	}
	if m.cylinders, err = newCollection[Cylinder](adapter, "cylinders", b.Cylinders); err != nil {
		return nil, err
	}
	if m.cones, err = newCollection[Cone](adapter, "cones", b.Cones); err != nil {
		return nil, err
	}
	if m.pointLights, err = newCollection[PointLight](adapter, "point_lights", b.PointLights); err != nil {
		return nil, err
	}
	return m, nil
}

// Planes returns the plane collection.
func (m *Model) Planes() *Collection[Plane] { return m.planes }

// Triangles returns the triangle collection.
func (m *Model) Triangles() *Collection[Triangle] { return m.triangles }

// Spheres returns the sphere collection.
func (m *Model) Spheres() *Collection[Sphere] { return m.spheres }

// Circles returns the circle collection, including synthesized caps.
func (m *Model) Circles() *Collection[Circle] { return m.circles }

// Cylinders returns the cylinder collection.
func (m *Model) Cylinders() *Collection[Cylinder] { return m.cylinders }

// Cones returns the cone collection.
func (m *Model) Cones() *Collection[Cone] { return m.cones }

// PointLights returns the point light collection.
func (m *Model) PointLights() *Collection[PointLight] { return m.pointLights }

// Version is incremented by every edit.
func (m *Model) Version() uint64 { return m.version }

// AddPlane appends a plane.
func (m *Model) AddPlane(p Plane) {
	m.planes.Append(p)
	m.version++
}

// AddTriangle appends a triangle.
func (m *Model) AddTriangle(t Triangle) {
	m.triangles.Append(t)
	m.version++
}

// AddSphere appends a sphere.
func (m *Model) AddSphere(s Sphere) {
	m.spheres.Append(s)
	m.version++
}

// AddCircle appends a circle.
func (m *Model) AddCircle(c Circle) {
	m.circles.Append(c)
	m.version++
}

// AddCylinder appends a cylinder and its two cap circles.
func (m *Model) AddCylinder(c Cylinder) {
	base, top := c.Caps()
	m.cylinders.Append(c)
	m.circles.Append(base, top)
	m.version++
}

// AddCone appends a cone and its base circle.
func (m *Model) AddCone(c Cone) {
	m.cones.Append(c)
	m.circles.Append(c.Base())
	m.version++
}

// AddPointLight appends a point light.
func (m *Model) AddPointLight(l PointLight) {
	m.pointLights.Append(l)
	m.version++
}

// SetPointLight replaces light i, the common per-frame edit.
func (m *Model) SetPointLight(i int, l PointLight) {
	m.pointLights.Set(i, l)
	m.version++
}

// Summary returns the counts as last synchronized.
func (m *Model) Summary() Summary { return m.summary.V }

// DataInit synchronizes every collection in a fixed order, then uploads
// the Summary if any count changed. Calling it again without edits issues
// no uploads.
//
// An error comes from the GPU backend failing to allocate. Collections that
// were not synchronized keep their flags, and a Summary whose upload failed
// is uploaded by the next call.
func (m *Model) DataInit() (SyncStats, error) {
	var stats SyncStats

	steps := []struct {
		name  string
		sync  func() (syncResult, error)
		count func() int
		dst   *uint32
	}{
		{m.planes.name, m.planes.dataInit, m.planes.Len, &m.summary.V.Planes},
		{m.triangles.name, m.triangles.dataInit, m.triangles.Len, &m.summary.V.Triangles},
		{m.spheres.name, m.spheres.dataInit, m.spheres.Len, &m.summary.V.Spheres},
		{m.circles.name, m.circles.dataInit, m.circles.Len, &m.summary.V.Circles},
		{m.cylinders.name, m.cylinders.dataInit, m.cylinders.Len, &m.summary.V.Cylinders},
		{m.cones.name, m.cones.dataInit, m.cones.Len, &m.summary.V.Cones},
		{m.pointLights.name, m.pointLights.dataInit, m.pointLights.Len, &m.summary.V.PointLights},
	}
	for _, s := range steps {
		res, err := s.sync()
		if err != nil {
			return stats, err
		}
		switch res {
		case syncReallocated:
			*s.dst = uint32(s.count())
			m.summaryDirty = true
			stats.Reallocated = append(stats.Reallocated, s.name)
		case syncRefreshed:
			stats.Refreshed = append(stats.Refreshed, s.name)
		}
	}

	if m.summaryDirty {
		if err := m.summaryBuf.Upload(&m.summary); err != nil {
			return stats, fmt.Errorf("scene: summary: %w", err)
		}
		m.summaryDirty = false
		stats.SummaryUploaded = true
		logger.L().Debug("scene: summary uploaded",
			"planes", m.summary.V.Planes,
			"triangles", m.summary.V.Triangles,
			"spheres", m.summary.V.Spheres,
			"circles", m.summary.V.Circles,
			"cylinders", m.summary.V.Cylinders,
			"cones", m.summary.V.Cones,
			"point_lights", m.summary.V.PointLights)
	}
	return stats, nil
}

// Entries returns a bind group entry for every allocated buffer.
func (m *Model) Entries() []gpucore.BindGroupEntry {
	objs := []*buffer.Object{
		m.summaryBuf,
		m.planes.buf,
		m.triangles.buf,
		m.triangles.derived.buf,
		m.spheres.buf,
		m.circles.buf,
		m.cylinders.buf,
		m.cones.buf,
		m.pointLights.buf,
	}
	entries := make([]gpucore.BindGroupEntry, 0, len(objs))
	for _, o := range objs {
		if o.Allocated() {
			entries = append(entries, o.Entry())
		}
	}
	return entries
}

// Destroy releases every GPU buffer. The records are kept and the next
// DataInit uploads them again.
func (m *Model) Destroy() {
	m.summaryBuf.Destroy()
	m.planes.destroy()
	m.triangles.destroy()
	m.spheres.destroy()
	m.circles.destroy()
	m.cylinders.destroy()
	m.cones.destroy()
	m.pointLights.destroy()
}
