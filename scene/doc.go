// Package scene holds the renderable primitives of a ray traced scene and
// keeps their GPU buffers in sync with the CPU copies.
//
// A [Model] owns one dirty-tracked [Collection] per primitive kind (planes,
// triangles, spheres, circles, cylinders, cones and point lights) plus a
// [Summary] of their counts. Editing a model only touches CPU memory.
// [Model.DataInit], run once per frame before drawing, pushes the edits to
// the GPU with as little traffic as possible:
//
//   - a collection whose length changed is reallocated and fully uploaded
//   - a collection whose records were replaced is rewritten in place
//   - the Summary is uploaded once, and only if some length changed
//
// Some edits span collections. AddCylinder appends the two cap circles and
// AddCone appends the base circle, so the circle list always bounds every
// disk the shader has to intersect.
//
// Example:
//
//	m, _ := scene.New(adapter, scene.DefaultBindings())
//	m.AddPlane(scene.NewPlane(vecmath.F3(0, 1, 0), vecmath.F3(0, -1, 0), scene.Matte(grey)))
//	m.AddSphere(scene.NewSphere(vecmath.F3(0, 0, -5), 1, scene.Mirror(white)))
//	if _, err := m.DataInit(); err != nil {
//	    log.Fatal(err)
//	}
package scene
