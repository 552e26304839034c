package backend

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/rtscene/gpucore"
)

// Backend names.
const (
	NameVulkan = "vulkan"
	NameNoop   = "noop"
	NameMemory = "memory"
)

// ErrNotAvailable is returned when a requested backend is not registered
// or every registered backend failed to open.
var ErrNotAvailable = errors.New("backend: not available")

// Device is an opened GPU device.
type Device interface {
	gpucore.Adapter

	// Name returns the backend identifier.
	Name() string

	// Close releases the device. It must not be used afterwards.
	Close()
}

// Factory opens a new device.
type Factory func() (Device, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for OpenDefault (first that opens wins).
	priority = []string{NameVulkan, NameNoop, NameMemory}
)

// Register registers a factory under name, replacing any previous one.
// It is typically called from an init function.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = f
}

// Unregister removes a factory. This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens the named backend.
func Open(name string) (Device, error) {
	registryMu.RLock()
	f, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotAvailable, name)
	}
	d, err := f()
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return d, nil
}

// OpenDefault opens the first backend in priority order that succeeds,
// then any other registered backend.
func OpenDefault() (Device, error) {
	registryMu.RLock()
	order := append([]string(nil), priority...)
	var rest []string
	for name := range factories {
		if !contains(priority, name) {
			rest = append(rest, name)
		}
	}
	registryMu.RUnlock()
	sort.Strings(rest)

	var errs []error
	for _, name := range append(order, rest...) {
		d, err := Open(name)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, ErrNotAvailable) {
			errs = append(errs, err)
		}
	}
	return nil, errors.Join(append([]error{ErrNotAvailable}, errs...)...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
