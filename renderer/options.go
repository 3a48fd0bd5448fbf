package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Black hole mass; the Schwarzschild radius is 2*mass.
	Mass float32

	// Execution backend.
	Backend Backend

	// CPU backend: worker pool size; <= 0 uses all hardware threads.
	NumWorkers int

	// OpenCL backend: select the device whose name contains this value; an
	// empty string picks the fastest-looking match.
	DeviceName string
}

func (o Options) withDefaults() Options {
	if o.Mass == 0 {
		o.Mass = 1.0
	}
	return o
}
