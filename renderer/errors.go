package renderer

import "errors"

var (
	ErrUnsupportedBackend = errors.New("renderer: unsupported backend")
	ErrInvalidResolution  = errors.New("renderer: invalid resolution")
	ErrNoDeviceAvailable  = errors.New("renderer: no opencl device available")
)
