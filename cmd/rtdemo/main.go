// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command rtdemo runs the ray tracer scene state headless.
//
// It builds a small scene, feeds a scripted sequence of key, drag and
// scroll input through the session queue and logs the GPU uploads every
// frame caused.
//
//	rtdemo -frames 8 -backend memory -v
//	rtdemo -backend vulkan -check-layout
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/rtscene"
	"github.com/gogpu/rtscene/backend"
	"github.com/gogpu/rtscene/backend/memory"
	"github.com/gogpu/rtscene/backend/native"
	"github.com/gogpu/rtscene/camera"
	"github.com/gogpu/rtscene/config"
	"github.com/gogpu/rtscene/scene"
	"github.com/gogpu/rtscene/shaders"
	"github.com/gogpu/rtscene/vecmath"
)

func main() {
	var (
		configPath  = flag.String("config", "", "configuration file (.toml, .yaml)")
		writeConfig = flag.String("write-config", "", "write the effective configuration to this file and exit")
		frames      = flag.Int("frames", 6, "number of frames to run")
		backendName = flag.String("backend", backend.NameMemory, "device backend: memory, noop or vulkan")
		texturePath = flag.String("texture", "", "24-bit BMP applied to the floor")
		checkLayout = flag.Bool("check-layout", false, "compile the record layout shader")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *writeConfig != "" {
		if err := config.Save(cfg, *writeConfig); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		log.Printf("Config written to %s\n", *writeConfig)
		return
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	if *verbose {
		level = slog.LevelDebug
	}
	rtscene.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	dev, err := backend.Open(*backendName)
	if err != nil {
		log.Fatalf("Failed to open device (available: %v): %v", backend.Available(), err)
	}
	defer dev.Close()

	if *checkLayout {
		if err := compileLayout(dev); err != nil {
			log.Fatalf("Layout check failed: %v", err)
		}
	}

	if err := run(dev, cfg, *frames, *texturePath); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}

func compileLayout(dev backend.Device) error {
	spirv, err := shaders.Compile()
	if err != nil {
		return err
	}
	rtscene.Logger().Info("layout compiled", "words", len(spirv))
	if hal, ok := dev.(*native.HALAdapter); ok {
		if _, err := hal.CreateShaderModule("scene_layout", spirv); err != nil {
			return err
		}
	}
	return nil
}

func run(dev backend.Device, cfg config.Config, frames int, texturePath string) error {
	var opts []rtscene.Option
	if dev.Name() == backend.NameMemory {
		// No compute pass runs in memory; derive triangles on the host.
		opts = append(opts, rtscene.WithCPUPrepare(0))
	}
	s, err := rtscene.NewSession(dev, cfg, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := buildScene(s, texturePath); err != nil {
		return err
	}

	input := script(cfg.Frame.Width, cfg.Frame.Height)
	for i := 0; i < frames; i++ {
		if i < len(input) {
			for _, e := range input[i] {
				s.Queue().Push(e)
			}
		}
		if i == frames/2 {
			addLights(s.Model())
		}

		stats, err := s.Frame()
		if err != nil {
			return err
		}
		p := s.Transform().Position()
		rtscene.Logger().Info("frame",
			"index", stats.Index,
			"events", stats.Events,
			"transform", stats.TransformUploaded,
			"reallocated", stats.Scene.Reallocated,
			"refreshed", stats.Scene.Refreshed,
			"summary", stats.Scene.SummaryUploaded,
			"derived", stats.DerivedComputed,
			"position", fmt.Sprintf("(%.3f, %.3f, %.3f)", p.X, p.Y, p.Z))
	}

	sum := s.Model().Summary()
	rtscene.Logger().Info("scene",
		"planes", sum.Planes,
		"triangles", sum.Triangles,
		"spheres", sum.Spheres,
		"circles", sum.Circles,
		"cylinders", sum.Cylinders,
		"cones", sum.Cones,
		"point_lights", sum.PointLights,
		"bindings", len(s.Entries()))
	if m, ok := dev.(*memory.Adapter); ok {
		st := m.Stats()
		rtscene.Logger().Info("device",
			"buffers", len(m.LiveBuffers()),
			"bytes", m.BytesInUse(),
			"writes", st.BufferWrites,
			"bytes_written", st.BytesWritten)
	}
	return nil
}

func buildScene(s *rtscene.Session, texturePath string) error {
	m := s.Model()
	white := vecmath.F3(0.8, 0.8, 0.8)

	floor := scene.Matte(white)
	if texturePath != "" {
		idx, err := s.Textures().LoadFile(texturePath)
		if err != nil {
			return err
		}
		floor = floor.WithDiffuseTexture(idx)
	}

	m.AddPlane(scene.NewPlane(vecmath.F3(0, 1, 0), vecmath.F3(0, -1, 0), floor))
	m.AddSphere(scene.NewSphere(vecmath.F3(0, 0, -4), 1, scene.Mirror(vecmath.F3(0.9, 0.9, 0.9))))
	m.AddSphere(scene.NewSphere(vecmath.F3(2.5, 0, -5), 1, scene.Glass(vecmath.F3(0.95, 0.95, 0.95), 1.5)))
	m.AddTriangle(scene.NewTriangle(
		vecmath.F3(-3, -1, -6), vecmath.F3(-1, -1, -6), vecmath.F3(-2, 1, -6),
		scene.Matte(vecmath.F3(0.2, 0.6, 0.9))))
	m.AddCylinder(scene.NewCylinder(vecmath.F3(-2.5, -1, -3), vecmath.F3(0, 1, 0), 0.5, 1.5,
		scene.Matte(vecmath.F3(0.9, 0.4, 0.2))))
	m.AddCone(scene.NewCone(vecmath.F3(1, 1.5, -3), vecmath.F3(0, -1, 0), math.Pi/8, 2,
		scene.Matte(vecmath.F3(0.3, 0.9, 0.3))))
	m.AddPointLight(scene.NewPointLight(vecmath.F3(1, 1, 1), vecmath.F3(0, 4, -2)))
	return nil
}

func addLights(m *scene.Model) {
	m.AddCircle(scene.NewCircle(vecmath.F3(0, 3.99, -4), vecmath.F3(0, -1, 0), 1, scene.Glow(vecmath.F3(4, 4, 4))))
	m.SetPointLight(0, scene.NewPointLight(vecmath.F3(0.5, 0.5, 0.5), vecmath.F3(0, 4, -2)))
}

// script returns the input delivered before each frame: a key held for two
// frames, a horizontal drag, a scroll and a resize.
func script(w, h uint32) [][]camera.Event {
	cx, cy := float64(w)/2, float64(h)/2
	return [][]camera.Event{
		{camera.KeyEvent{Code: camera.KeyUp, Pressed: true}},
		{camera.KeyEvent{Code: camera.KeyUp, Pressed: false}},
		{
			camera.ButtonEvent{Code: camera.ButtonLeft, Pressed: true},
			camera.MoveEvent{X: cx, Y: cy},
			camera.MoveEvent{X: cx + 40, Y: cy},
		},
		{camera.ButtonEvent{Code: camera.ButtonLeft, Pressed: false}, camera.ScrollEvent{Delta: 1}},
		{camera.ResizeEvent{Width: w / 2, Height: h / 2}},
	}
}
