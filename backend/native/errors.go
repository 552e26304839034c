package native

import "errors"

// Package errors for the HAL device.
var (
	// ErrBackendUnavailable is returned when the requested HAL backend
	// is not compiled in.
	ErrBackendUnavailable = errors.New("native: HAL backend not available")

	// ErrNoAdapters is returned when the instance exposes no GPU adapter.
	ErrNoAdapters = errors.New("native: no GPU adapters found")

	// ErrNilProvider is returned when a host provider does not expose
	// a usable HAL device and queue.
	ErrNilProvider = errors.New("native: provider does not expose HAL device")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("native: invalid dimensions")
)
