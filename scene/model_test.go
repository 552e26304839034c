package scene

import (
	"testing"

	"github.com/gogpu/rtscene/backend/memory"
	"github.com/gogpu/rtscene/buffer"
	"github.com/gogpu/rtscene/gpucore"
	"github.com/gogpu/rtscene/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = vecmath.F3(1, 1, 1)

func newModel(t *testing.T) (*Model, *memory.Adapter) {
	t.Helper()
	a := memory.New()
	m, err := New(a, DefaultBindings())
	require.NoError(t, err)
	return m, a
}

func TestNewNilAdapter(t *testing.T) {
	_, err := New(nil, DefaultBindings())
	assert.ErrorIs(t, err, buffer.ErrNilAdapter)
}

func TestEmptyModelAllocatesNothing(t *testing.T) {
	m, a := newModel(t)
	stats, err := m.DataInit()
	require.NoError(t, err)
	assert.Zero(t, stats.Uploads())
	assert.Equal(t, memory.Stats{}, a.Stats())
	assert.Empty(t, m.Entries())
}

func TestSingleSphereScenario(t *testing.T) {
	m, a := newModel(t)
	m.AddSphere(NewSphere(vecmath.F3(0, 0, -3), 1, Matte(white)))

	stats, err := m.DataInit()
	require.NoError(t, err)
	assert.Equal(t, []string{"spheres"}, stats.Reallocated)
	assert.Empty(t, stats.Refreshed)
	assert.True(t, stats.SummaryUploaded)
	assert.Equal(t, Summary{Spheres: 1}, m.Summary())

	// One buffer for the spheres, one for the summary.
	assert.Equal(t, memory.Stats{BufferCreates: 2, BufferWrites: 2, BytesWritten: 128 + 32}, a.Stats())

	a.ResetStats()
	stats, err = m.DataInit()
	require.NoError(t, err)
	assert.Zero(t, stats.Uploads())
	assert.Equal(t, memory.Stats{}, a.Stats())
}

func TestDataInitIdempotent(t *testing.T) {
	m, a := newModel(t)
	m.AddPlane(NewPlane(vecmath.F3(0, 1, 0), vecmath.F3(0, 0, 0), Matte(white)))
	m.AddPointLight(NewPointLight(white, vecmath.F3(0, 4, 0)))
	m.PointLights().Set(0, NewPointLight(white, vecmath.F3(1, 4, 0)))

	_, err := m.DataInit()
	require.NoError(t, err)
	for _, c := range []interface {
		NumChanged() bool
		UpToDate() bool
	}{m.Planes(), m.Triangles(), m.Spheres(), m.Circles(), m.Cylinders(), m.Cones(), m.PointLights()} {
		assert.False(t, c.NumChanged())
		assert.True(t, c.UpToDate())
	}

	a.ResetStats()
	stats, err := m.DataInit()
	require.NoError(t, err)
	assert.Zero(t, stats.Uploads())
	assert.Zero(t, a.Stats().Uploads())
}

func TestContentRefreshKeepsBuffer(t *testing.T) {
	m, a := newModel(t)
	m.AddPointLight(NewPointLight(white, vecmath.F3(0, 4, 0)))
	_, err := m.DataInit()
	require.NoError(t, err)
	id := m.PointLights().Buffer().ID()
	a.ResetStats()

	moved := NewPointLight(white, vecmath.F3(2, 4, 0))
	m.SetPointLight(0, moved)
	assert.False(t, m.PointLights().UpToDate())
	assert.False(t, m.PointLights().NumChanged())

	stats, err := m.DataInit()
	require.NoError(t, err)
	assert.Equal(t, []string{"point_lights"}, stats.Refreshed)
	assert.Empty(t, stats.Reallocated)
	assert.False(t, stats.SummaryUploaded)
	assert.Equal(t, id, m.PointLights().Buffer().ID())
	assert.Equal(t, memory.Stats{BufferWrites: 1, BytesWritten: 32}, a.Stats())

	data, _, ok := a.Buffer(id)
	require.True(t, ok)
	assert.Equal(t, buffer.ValueBytes(&moved), data)
}

func TestAddCylinder(t *testing.T) {
	m, _ := newModel(t)
	m.AddCircle(NewCircle(vecmath.F3(0, 0, 0), vecmath.F3(0, 1, 0), 1, Matte(white)))
	_, err := m.DataInit()
	require.NoError(t, err)

	circles, cylinders := m.Circles().Len(), m.Cylinders().Len()
	m.AddCylinder(NewCylinder(vecmath.F3(0, 0, 0), vecmath.F3(0, 1, 0), 1, 2, Matte(white)))

	assert.Equal(t, circles+2, m.Circles().Len())
	assert.Equal(t, cylinders+1, m.Cylinders().Len())
	assert.True(t, m.Circles().NumChanged())
	assert.True(t, m.Cylinders().NumChanged())

	base, top := m.Cylinders().At(0).Caps()
	assert.Equal(t, base, m.Circles().At(1))
	assert.Equal(t, top, m.Circles().At(2))
}

func TestAddCone(t *testing.T) {
	m, _ := newModel(t)
	cone := NewCone(vecmath.F3(0, 2, 0), vecmath.F3(0, -1, 0), 0.5, 2, Matte(white))
	m.AddCone(cone)

	assert.Equal(t, 1, m.Cones().Len())
	assert.Equal(t, 1, m.Circles().Len())
	assert.True(t, m.Circles().NumChanged())
	assert.True(t, m.Cones().NumChanged())
	assert.Equal(t, cone.Base(), m.Circles().At(0))
}

func TestSummaryMatchesLengths(t *testing.T) {
	m, a := newModel(t)
	c := Matte(white)
	for i := 0; i < 3; i++ {
		m.AddPlane(NewPlane(vecmath.F3(0, 1, 0), vecmath.F3(0, float32(i), 0), c))
		m.AddTriangle(NewTriangle(vecmath.F3(0, 0, 0), vecmath.F3(1, 0, 0), vecmath.F3(0, 1, 0), c))
		m.AddTriangle(NewTriangle(vecmath.F3(0, 0, 1), vecmath.F3(1, 0, 1), vecmath.F3(0, 1, 1), c))
	}
	m.AddSphere(NewSphere(vecmath.F3(0, 0, 0), 1, c))
	m.AddCylinder(NewCylinder(vecmath.F3(0, 0, 0), vecmath.F3(1, 0, 0), 1, 1, c))
	m.AddCone(NewCone(vecmath.F3(0, 0, 0), vecmath.F3(0, 0, 1), 0.3, 1, c))
	m.AddCircle(NewCircle(vecmath.F3(0, 0, 0), vecmath.F3(0, 0, 1), 1, c))
	m.AddPointLight(NewPointLight(white, vecmath.F3(0, 1, 0)))

	stats, err := m.DataInit()
	require.NoError(t, err)
	assert.Equal(t, []string{"planes", "triangles", "spheres", "circles", "cylinders", "cones", "point_lights"}, stats.Reallocated)

	want := Summary{
		Planes:      uint32(m.Planes().Len()),
		Triangles:   uint32(m.Triangles().Len()),
		Spheres:     uint32(m.Spheres().Len()),
		Circles:     uint32(m.Circles().Len()),
		Cylinders:   uint32(m.Cylinders().Len()),
		Cones:       uint32(m.Cones().Len()),
		PointLights: uint32(m.PointLights().Len()),
	}
	assert.Equal(t, want, m.Summary())
	assert.Equal(t, uint32(4), m.Summary().Circles)

	// The summary buffer holds exactly the counts.
	var summaryID gpucore.BufferID
	for _, e := range m.Entries() {
		if e.Label == "summary" {
			summaryID = e.Buffer
		}
	}
	data, desc, ok := a.Buffer(summaryID)
	require.True(t, ok)
	s := m.Summary()
	assert.Equal(t, buffer.ValueBytes(&s), data)
	assert.Equal(t, gpucore.HintStatic, desc.Hint)
	assert.Equal(t, gpucore.BufferUsageUniform|gpucore.BufferUsageCopyDst, desc.Usage)
}

func TestSummaryUploadedOncePerFrame(t *testing.T) {
	m, a := newModel(t)
	m.AddSphere(NewSphere(vecmath.F3(0, 0, 0), 1, Matte(white)))
	_, err := m.DataInit()
	require.NoError(t, err)
	summaryID := m.summaryBuf.ID()
	a.ResetStats()

	m.AddSphere(NewSphere(vecmath.F3(0, 2, 0), 1, Matte(white)))
	m.AddPlane(NewPlane(vecmath.F3(0, 1, 0), vecmath.F3(0, -1, 0), Matte(white)))
	m.AddPointLight(NewPointLight(white, vecmath.F3(0, 1, 0)))
	stats, err := m.DataInit()
	require.NoError(t, err)
	assert.True(t, stats.SummaryUploaded)
	assert.Len(t, stats.Reallocated, 3)

	// 3 collections reallocated; the summary is rewritten in place.
	assert.Equal(t, 3, a.Stats().BufferCreates)
	assert.Equal(t, 4, a.Stats().BufferWrites)
	assert.Equal(t, summaryID, m.summaryBuf.ID())
}

func TestTriangleDerivedTracksCount(t *testing.T) {
	m, a := newModel(t)
	d := m.Triangles().Derived()
	require.NotNil(t, d)
	assert.True(t, d.UpToDate())

	tri := NewTriangle(vecmath.F3(0, 0, 0), vecmath.F3(1, 0, 0), vecmath.F3(0, 1, 0), Matte(white))
	m.AddTriangle(tri)
	m.AddTriangle(tri)
	_, err := m.DataInit()
	require.NoError(t, err)

	assert.Equal(t, 2, d.Count())
	assert.False(t, d.UpToDate())
	assert.Equal(t, 2*144, d.Buffer().Size())
	_, desc, ok := a.Buffer(d.Buffer().ID())
	require.True(t, ok)
	assert.Equal(t, "triangles_gpu", desc.Label)

	d.MarkComputed()
	assert.True(t, d.UpToDate())

	// Replacing a triangle invalidates the derived content without resizing it.
	id := d.Buffer().ID()
	m.Triangles().Set(1, NewTriangle(vecmath.F3(0, 0, 2), vecmath.F3(1, 0, 2), vecmath.F3(0, 1, 2), Matte(white)))
	_, err = m.DataInit()
	require.NoError(t, err)
	assert.False(t, d.UpToDate())
	assert.Equal(t, id, d.Buffer().ID())
	assert.Equal(t, 2, d.Count())
}

func TestDerivedNeverUploaded(t *testing.T) {
	m, a := newModel(t)
	m.AddTriangle(NewTriangle(vecmath.F3(0, 0, 0), vecmath.F3(1, 0, 0), vecmath.F3(0, 1, 0), Matte(white)))
	_, err := m.DataInit()
	require.NoError(t, err)
	// triangles + derived + summary created; only triangles + summary written.
	assert.Equal(t, 3, a.Stats().BufferCreates)
	assert.Equal(t, 2, a.Stats().BufferWrites)
}

func TestEntries(t *testing.T) {
	m, _ := newModel(t)
	m.AddTriangle(NewTriangle(vecmath.F3(0, 0, 0), vecmath.F3(1, 0, 0), vecmath.F3(0, 1, 0), Matte(white)))
	m.AddSphere(NewSphere(vecmath.F3(0, 0, 0), 1, Matte(white)))
	_, err := m.DataInit()
	require.NoError(t, err)

	b := DefaultBindings()
	got := map[string]uint32{}
	for _, e := range m.Entries() {
		got[e.Label] = e.Binding
		assert.NotZero(t, e.Size)
	}
	assert.Equal(t, map[string]uint32{
		"summary":       b.Summary,
		"triangles":     b.Triangles,
		"triangles_gpu": b.TrianglesGPU,
		"spheres":       b.Spheres,
	}, got)
}

func TestDataInitBackendFailure(t *testing.T) {
	a := memory.New(memory.WithBudget(200))
	m, err := New(a, DefaultBindings())
	require.NoError(t, err)
	m.AddSphere(NewSphere(vecmath.F3(0, 0, 0), 1, Matte(white)))
	m.AddSphere(NewSphere(vecmath.F3(0, 0, 0), 1, Matte(white)))

	_, err = m.DataInit()
	require.Error(t, err)
	assert.ErrorIs(t, err, memory.ErrOutOfMemory)
	assert.Contains(t, err.Error(), "spheres")
	assert.True(t, m.Spheres().NumChanged(), "failed sync must not clear the flag")
}

func TestDestroyAndRestore(t *testing.T) {
	m, a := newModel(t)
	m.AddSphere(NewSphere(vecmath.F3(0, 0, 0), 1, Matte(white)))
	_, err := m.DataInit()
	require.NoError(t, err)

	m.Destroy()
	assert.Empty(t, a.LiveBuffers())
	assert.Empty(t, m.Entries())

	stats, err := m.DataInit()
	require.NoError(t, err)
	assert.Equal(t, []string{"spheres"}, stats.Reallocated)
	assert.True(t, stats.SummaryUploaded)
	assert.Len(t, a.LiveBuffers(), 2)

	slots := map[uint32]bool{}
	for _, e := range m.Entries() {
		slots[e.Binding] = true
	}
	assert.True(t, slots[DefaultBindings().Summary], "summary binding restored")
}

func TestSummaryRetriedAfterFailedUpload(t *testing.T) {
	// Room for the sphere buffer and a filler, not for the summary.
	a := memory.New(memory.WithBudget(128 + 32))
	filler, err := a.CreateBuffer(gpucore.BufferDesc{Label: "filler", Size: 32})
	require.NoError(t, err)
	m, err := New(a, DefaultBindings())
	require.NoError(t, err)
	m.AddSphere(NewSphere(vecmath.F3(0, 0, -3), 1, Matte(white)))

	stats, err := m.DataInit()
	require.ErrorIs(t, err, memory.ErrOutOfMemory)
	assert.Contains(t, err.Error(), "summary")
	assert.False(t, stats.SummaryUploaded)
	assert.False(t, m.Spheres().NumChanged())

	a.DestroyBuffer(filler)
	stats, err = m.DataInit()
	require.NoError(t, err)
	assert.Empty(t, stats.Reallocated)
	assert.True(t, stats.SummaryUploaded)
	assert.Equal(t, Summary{Spheres: 1}, m.Summary())

	stats, err = m.DataInit()
	require.NoError(t, err)
	assert.False(t, stats.SummaryUploaded)
}

func TestDerivedCountKeptOnFailedResize(t *testing.T) {
	// The triangle fits, its 144-byte derived record does not.
	a := memory.New(memory.WithBudget(128))
	m, err := New(a, DefaultBindings())
	require.NoError(t, err)
	m.AddTriangle(NewTriangle(vecmath.F3(0, 0, 0), vecmath.F3(1, 0, 0), vecmath.F3(0, 1, 0), Matte(white)))

	_, err = m.DataInit()
	require.ErrorIs(t, err, memory.ErrOutOfMemory)
	d := m.Triangles().Derived()
	assert.Zero(t, d.Count())
	assert.False(t, d.Buffer().Allocated())
	assert.True(t, m.Triangles().NumChanged())
}

func TestVersionAndIteration(t *testing.T) {
	m, _ := newModel(t)
	v0 := m.Version()
	m.AddCylinder(NewCylinder(vecmath.F3(0, 0, 0), vecmath.F3(0, 1, 0), 1, 1, Matte(white)))
	assert.Equal(t, v0+1, m.Version())

	n := 0
	for i, c := range m.Circles().All() {
		assert.Equal(t, i, n)
		assert.Equal(t, float32(1), c.R2)
		n++
	}
	assert.Equal(t, 2, n)
}
