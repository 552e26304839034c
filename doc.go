// Package rtscene maintains the live scene state of an interactive GPU ray
// tracer.
//
// A [Session] owns a camera [camera.Transform] driven by keyboard, mouse
// drag and scroll input, a [scene.Model] holding planes, triangles, spheres,
// circles, cylinders, cones and point lights, and the [viewport.Viewport]
// buffers describing the frame. Each call to [Session.Frame] folds pending
// input into the camera and mirrors every edited collection into GPU
// buffers, uploading only what changed.
//
// # Quick Start
//
//	dev, err := backend.Open(backend.NameMemory)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	s, err := rtscene.NewSession(dev, config.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.Model().AddSphere(scene.NewSphere(vecmath.F3(0, 0, -5), 1, scene.Matte(vecmath.F3(1, 0, 0))))
//	s.Queue().Push(camera.KeyEvent{Code: camera.KeyLeft, Pressed: true})
//	stats, err := s.Frame()
//
// # Threading
//
// Input events may be pushed to [Session.Queue] from any goroutine. Every
// other method must be called from the render goroutine.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] to enable structured
// logging for rtscene and its sub-packages.
package rtscene
