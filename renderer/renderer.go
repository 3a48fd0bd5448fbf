package renderer

import (
	"fmt"

	"github.com/Selkomark/Blackhole-Simulation/log"
	"github.com/Selkomark/Blackhole-Simulation/physics"
	"github.com/Selkomark/Blackhole-Simulation/scene"
	"github.com/Selkomark/Blackhole-Simulation/tracer"
	"github.com/Selkomark/Blackhole-Simulation/tracer/cpu"
	"github.com/Selkomark/Blackhole-Simulation/tracer/opencl"
	"github.com/Selkomark/Blackhole-Simulation/tracer/opencl/device"
)

// Execution backend selector. Exactly two backends exist and they are
// interchangeable: both run the per-pixel algorithm from the physics package
// and both fill the frame synchronously.
type Backend uint8

const (
	BackendCPU Backend = iota
	BackendOpenCL
)

func (b Backend) String() string {
	switch b {
	case BackendCPU:
		return "cpu"
	case BackendOpenCL:
		return "opencl"
	}
	return fmt.Sprintf("unknown (%d)", uint8(b))
}

// ParseBackend maps a backend name from the CLI to its selector.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "cpu":
		return BackendCPU, nil
	case "opencl", "gpu":
		return BackendOpenCL, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedBackend, name)
}

// Renderer owns a tracer backend and the frame it renders into. It is not
// safe for concurrent use: Render, Resize and Pixels must be serialized by
// the caller, and a Resize must never overlap an in-flight Render.
type Renderer struct {
	logger log.Logger

	tr     tracer.Tracer
	frameW uint32
	frameH uint32
}

// New creates a renderer for the configured backend and allocates its frame
// resources. OpenCL device discovery or kernel compilation failures surface
// here, not at render time.
func New(opts Options) (*Renderer, error) {
	opts = opts.withDefaults()

	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidResolution, opts.FrameW, opts.FrameH)
	}

	logger := log.New("renderer")
	bh := physics.NewBlackHole(opts.Mass)

	var tr tracer.Tracer
	switch opts.Backend {
	case BackendCPU:
		tr = cpu.NewTracer(bh, opts.NumWorkers)
	case BackendOpenCL:
		dev, err := selectDevice(opts.DeviceName)
		if err != nil {
			return nil, err
		}
		logger.Noticef("using opencl device %q", dev.Name)
		tr = opencl.NewTracer(dev, bh)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, opts.Backend)
	}

	if err := tr.Setup(opts.FrameW, opts.FrameH); err != nil {
		tr.Close()
		return nil, err
	}

	return &Renderer{
		logger: logger,
		tr:     tr,
		frameW: opts.FrameW,
		frameH: opts.FrameH,
	}, nil
}

// Pick the opencl device whose name contains matchName; GPU devices are
// preferred when several match.
func selectDevice(matchName string) (*device.Device, error) {
	devices, err := device.SelectDevices(device.GpuDevice, matchName)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		devices, err = device.SelectDevices(device.AllDevices, matchName)
		if err != nil {
			return nil, err
		}
	}
	if len(devices) == 0 {
		return nil, ErrNoDeviceAvailable
	}
	return devices[0], nil
}

// Render one frame into the internal buffer. The camera basis is sanitized
// before dispatch so a degenerate caller-supplied pose cannot reach either
// backend. Blocks until every pixel is written.
func (r *Renderer) Render(cam scene.Camera, time float32, colorMode int32, colorIntensity float32) error {
	if colorIntensity <= 0 {
		colorIntensity = 1.0
	}

	return r.tr.Render(tracer.FrameParams{
		Camera:         cam.Sanitized(),
		Time:           time,
		ColorMode:      colorMode,
		ColorIntensity: colorIntensity,
	})
}

// Resize reallocates the frame buffer and backend resources. Destructive:
// prior pixel contents are discarded, and the error from a backend that
// cannot satisfy the resolution (device allocation limits) is propagated.
func (r *Renderer) Resize(frameW, frameH uint32) error {
	if frameW == 0 || frameH == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, frameW, frameH)
	}

	if err := r.tr.Resize(frameW, frameH); err != nil {
		return err
	}
	r.frameW = frameW
	r.frameH = frameH
	return nil
}

// Pixels returns a read-only view of the last rendered frame as RGBA bytes,
// row-major, top row first. The view is valid until the next Render or
// Resize call; callers needing persistence (video capture, screenshots) must
// copy.
func (r *Renderer) Pixels() []uint8 {
	return r.tr.Pixels()
}

// RenderAndPixels renders a fresh frame and returns its pixels, so callers
// taking screenshots never read a stale buffer. The returned view follows
// the same lifetime rules as Pixels.
func (r *Renderer) RenderAndPixels(cam scene.Camera, time float32, colorMode int32, colorIntensity float32) ([]uint8, error) {
	if err := r.Render(cam, time, colorMode, colorIntensity); err != nil {
		return nil, err
	}
	return r.Pixels(), nil
}

// Frame dimensions of the current buffer.
func (r *Renderer) FrameDims() (uint32, uint32) {
	return r.frameW, r.frameH
}

// Get render statistics for the last frame.
func (r *Renderer) Stats() FrameStats {
	st := r.tr.Stats()
	return FrameStats{
		TracerId:   r.tr.Id(),
		FrameW:     st.FrameW,
		FrameH:     st.FrameH,
		RenderTime: st.RenderTime,
	}
}

// Shutdown renderer and the attached tracer. The CPU pool joins its workers
// deterministically; the OpenCL backend releases device objects.
func (r *Renderer) Close() {
	r.tr.Close()
}
