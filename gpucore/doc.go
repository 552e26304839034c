// Package gpucore defines the narrow GPU resource interface consumed by the
// scene synchronizer.
//
// The [Adapter] interface abstracts over backend implementations so that the
// camera and geometry code can run unchanged against:
//   - gogpu/wgpu HAL devices (backend/native)
//   - an in-memory recorder used for headless runs and tests (backend/memory)
//
// # Resource model
//
//	+-----------------+       +--------------------+
//	| scene / camera  | ----> |  buffer.Object     |
//	| viewport        |       |  (binding point)   |
//	+-----------------+       +---------+----------+
//	                                    |
//	                          +---------v----------+
//	                          |  gpucore.Adapter   |
//	                          +----+----------+----+
//	                               |          |
//	                   +-----------v--+   +---v-----------+
//	                   | native (hal) |   | memory        |
//	                   +--------------+   +---------------+
//
// Resources are referred to by opaque IDs. The zero ID ([InvalidID]) never
// names a live resource.
package gpucore
