// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shaders holds the WGSL declaration of every GPU record and
// binding. It is the device side of the byte layout contract kept by the
// scene, camera and viewport records.
package shaders

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed layout.wgsl
var layoutWGSL string

// Entry points declared in the layout module.
const (
	EntryPrepareTriangles = "prepare_triangles"
	EntryClearFrame       = "clear_frame"
)

// Sizes lists the byte size of each WGSL struct, keyed by struct name.
var Sizes = map[string]int{
	"Color":       80,
	"Plane":       96,
	"Triangle":    128,
	"TriangleGPU": 144,
	"Sphere":      128,
	"Circle":      128,
	"Cylinder":    128,
	"Cone":        128,
	"PointLight":  32,
	"Summary":     32,
	"Transform":   64,
	"FrameScale":  8,
	"FramePixel":  16,
}

// Source returns the WGSL source of the layout module.
func Source() string { return layoutWGSL }

// Compile compiles the layout module to SPIR-V words.
func Compile() ([]uint32, error) {
	spirvBytes, err := naga.Compile(layoutWGSL)
	if err != nil {
		return nil, fmt.Errorf("shaders: compile layout: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shaders: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirv, nil
}
