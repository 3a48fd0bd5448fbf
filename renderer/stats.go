package renderer

import "time"

type FrameStats struct {
	// The id of the tracer that rendered the frame.
	TracerId string

	// Rendered frame dims.
	FrameW uint32
	FrameH uint32

	// Total render time for the frame, including device readback.
	RenderTime time.Duration
}
