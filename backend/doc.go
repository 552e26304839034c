// Package backend selects the GPU device a session runs on.
//
// Device implementations register a factory under a name from an init
// function, so importing a backend package is enough to make it available:
//
//	import (
//	    _ "github.com/gogpu/rtscene/backend/memory"
//	    _ "github.com/gogpu/rtscene/backend/native"
//	)
//
// Use Open to request a device by name, or OpenDefault to take the first
// registered device in priority order (vulkan, noop, memory).
package backend
