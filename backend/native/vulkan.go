//go:build !nogpu

package native

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rtscene/backend"

	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	backend.Register(backend.NameVulkan, func() (backend.Device, error) {
		return Open(gputypes.BackendVulkan)
	})
}
