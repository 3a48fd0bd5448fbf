package tracer

import (
	"time"

	"github.com/Selkomark/Blackhole-Simulation/scene"
)

// Per-frame inputs shared by both backends. The camera is sanitized by the
// renderer before it reaches a tracer.
type FrameParams struct {
	Camera scene.Camera

	// Elapsed time in seconds; drives disk rotation and background drift.
	Time float32

	// Disk palette selector (see physics color modes).
	ColorMode int32

	// Disk emission multiplier.
	ColorIntensity float32
}

// Statistics for the last rendered frame.
type Stats struct {
	FrameW uint32
	FrameH uint32

	// Wall time for the last frame, including device readback for tracers
	// that render off-host.
	RenderTime time.Duration
}

// Tracer is the contract implemented by both execution backends. Exactly two
// implementations exist: the CPU thread-pool tracer and the OpenCL compute
// tracer. Both run the identical per-pixel algorithm defined in the physics
// package and both are synchronous: Render returns only after every pixel of
// the frame is complete.
//
// Pixels returns the frame as RGBA bytes, row-major, top row first. The
// returned slice is a view into tracer-owned memory and is valid only until
// the next Render or Resize call; callers needing persistence must copy.
//
// Resize must not overlap an in-flight Render; callers serialize the two.
type Tracer interface {
	// Get tracer id.
	Id() string

	// Allocate resources for the given frame dimensions.
	Setup(frameW, frameH uint32) error

	// Reallocate the frame buffer and backend resources. Destructive: prior
	// pixel contents are discarded.
	Resize(frameW, frameH uint32) error

	// Render one frame; blocks until all pixels are written.
	Render(params FrameParams) error

	// Get a read-only view of the last rendered frame (RGBA).
	Pixels() []uint8

	// Retrieve last frame statistics.
	Stats() *Stats

	// Shutdown and cleanup tracer.
	Close()
}
