package opencl

import (
	_ "embed"
	"fmt"
	"time"
	"unsafe"

	"github.com/Selkomark/Blackhole-Simulation/log"
	"github.com/Selkomark/Blackhole-Simulation/physics"
	"github.com/Selkomark/Blackhole-Simulation/tracer"
	"github.com/Selkomark/Blackhole-Simulation/tracer/opencl/device"
	"github.com/achilleasa/gopencl/v1.2/cl"
)

//go:embed kernels/trace.cl
var programSource string

const (
	mainKernelName = "trace_pixels"

	// Compute dispatch uses fixed 8x8 thread groups; the global grid is
	// rounded up and out-of-frame threads exit early.
	groupSizeX = 8
	groupSizeY = 8
)

type clTracer struct {
	logger log.Logger
	id     string

	// The device associated with this tracer instance.
	device *device.Device

	// Compiled trace kernel.
	kernel *device.Kernel

	// Device buffers: per-frame uniforms, the shared palette table and the
	// output frame.
	uniforms *device.Buffer
	palettes *device.Buffer
	frame    *device.Buffer

	bh     physics.BlackHole
	frameW uint32
	frameH uint32

	// Raw device texels (BGRA) and the swizzled RGBA view handed to callers.
	devicePixels []uint8
	pixels       []uint8

	stats *tracer.Stats
}

// NewTracer creates an OpenCL tracer bound to the given device. Setup
// compiles the kernel and allocates device resources.
func NewTracer(dev *device.Device, bh physics.BlackHole) tracer.Tracer {
	return &clTracer{
		logger: log.New(fmt.Sprintf("opencl tracer (%s)", dev.Name)),
		id:     fmt.Sprintf("opencl (%s)", dev.Name),
		device: dev,
		bh:     bh,
		stats:  &tracer.Stats{},
	}
}

// Get tracer id.
func (tr *clTracer) Id() string {
	return tr.id
}

// Compile the trace program and allocate device resources. The shared
// physics constants are injected as -D defines so the kernel can never drift
// from the host-side reference implementation.
func (tr *clTracer) Setup(frameW, frameH uint32) error {
	buildOpts := physics.KernelDefines() + " -D RS=" + physics.FloatLiteral(tr.bh.Rs)

	tr.logger.Debugf("building program with options: %s", buildOpts)
	err := tr.device.Init(programSource, buildOpts)
	if err != nil {
		return err
	}

	tr.kernel, err = tr.device.Kernel(mainKernelName)
	if err != nil {
		tr.cleanup()
		return err
	}

	// Palette table is immutable for the tracer's lifetime.
	tr.palettes = tr.device.Buffer("palettes")
	err = tr.palettes.AllocateAndWriteData(physics.PaletteData(), cl.MEM_READ_ONLY)
	if err != nil {
		tr.cleanup()
		return err
	}

	tr.uniforms = tr.device.Buffer("frame uniforms")
	err = tr.uniforms.Allocate(int(unsafe.Sizeof(frameUniforms{})), cl.MEM_READ_ONLY)
	if err != nil {
		tr.cleanup()
		return err
	}

	tr.frame = tr.device.Buffer("frame")
	return tr.Resize(frameW, frameH)
}

// Reallocate the device frame buffer and host staging buffers. Fails with
// ErrFrameTooLarge when the device cannot allocate a buffer of the requested
// size; the caller may retry with a smaller resolution.
func (tr *clTracer) Resize(frameW, frameH uint32) error {
	if frameW == 0 || frameH == 0 {
		return fmt.Errorf("opencl tracer (%s): invalid frame dimensions %dx%d", tr.device.Name, frameW, frameH)
	}

	size := uint64(frameW) * uint64(frameH) * 4
	if max := tr.device.MaxAllocSize(); max > 0 && size > max {
		return fmt.Errorf("%w: %dx%d needs %d bytes, device limit is %d", ErrFrameTooLarge, frameW, frameH, size, max)
	}

	err := tr.frame.Allocate(int(size), cl.MEM_WRITE_ONLY)
	if err != nil {
		return err
	}

	tr.frameW = frameW
	tr.frameH = frameH
	tr.devicePixels = make([]uint8, size)
	tr.pixels = make([]uint8, size)
	return nil
}

// Render one frame: upload uniforms, dispatch the trace kernel over the
// frame in 8x8 groups, block until device completion, read the texels back
// and swizzle them into the host channel order.
func (tr *clTracer) Render(params tracer.FrameParams) error {
	if tr.kernel == nil {
		return fmt.Errorf("opencl tracer (%s): Render called before Setup", tr.device.Name)
	}

	start := time.Now()

	u := marshalUniforms(params, tr.frameW, tr.frameH)
	err := tr.uniforms.WriteData([]frameUniforms{u}, 0)
	if err != nil {
		return err
	}

	err = tr.kernel.SetArgs(tr.uniforms, tr.palettes, tr.frame)
	if err != nil {
		return err
	}

	_, err = tr.kernel.Exec2D(
		0, 0,
		roundUp(int(tr.frameW), groupSizeX),
		roundUp(int(tr.frameH), groupSizeY),
		groupSizeX, groupSizeY,
	)
	if err != nil {
		return err
	}

	err = tr.frame.ReadData(0, 0, len(tr.devicePixels), tr.devicePixels)
	if err != nil {
		return err
	}
	swizzleBGRAToRGBA(tr.pixels, tr.devicePixels)

	tr.stats.FrameW = tr.frameW
	tr.stats.FrameH = tr.frameH
	tr.stats.RenderTime = time.Since(start)
	return nil
}

// Get a read-only view of the last rendered frame (RGBA).
func (tr *clTracer) Pixels() []uint8 {
	return tr.pixels
}

// Retrieve last frame statistics.
func (tr *clTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Shutdown and cleanup tracer.
func (tr *clTracer) Close() {
	tr.cleanup()
}

func (tr *clTracer) cleanup() {
	if tr.kernel != nil {
		tr.kernel.Release()
		tr.kernel = nil
	}
	for _, buf := range []*device.Buffer{tr.uniforms, tr.palettes, tr.frame} {
		if buf != nil {
			buf.Release()
		}
	}
	tr.uniforms, tr.palettes, tr.frame = nil, nil, nil
	tr.device.Close()
}

func roundUp(value, multiple int) int {
	remainder := value % multiple
	if remainder == 0 {
		return value
	}
	return value + multiple - remainder
}
