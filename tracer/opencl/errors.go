package opencl

import "errors"

var (
	// Returned by Resize/Setup when the requested frame buffer exceeds the
	// device's maximum allocation size. Recoverable: retry at a lower
	// resolution.
	ErrFrameTooLarge = errors.New("opencl tracer: requested resolution exceeds device buffer limits")
)
