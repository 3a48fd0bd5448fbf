package opencl

import (
	"github.com/Selkomark/Blackhole-Simulation/tracer"
)

// frameUniforms is the single packet uploaded to the device each frame. Its
// layout is a hard host/device compatibility contract: each vector occupies a
// 16-byte-aligned float4 slot (matching OpenCL float4 alignment), the
// resolution is two u32 words, and the tail is padded so the struct size is a
// multiple of 16. The device-side mirror lives in kernels/trace.cl and
// uniforms_test.go asserts every offset.
type frameUniforms struct {
	Position [4]float32
	Forward  [4]float32
	Right    [4]float32
	Up       [4]float32

	FrameW uint32
	FrameH uint32

	Time           float32
	ColorMode      int32
	ColorIntensity float32

	_ [3]float32
}

// marshalUniforms packs the per-frame parameters for upload. The camera is
// sanitized so the device never sees a degenerate basis.
func marshalUniforms(params tracer.FrameParams, frameW, frameH uint32) frameUniforms {
	cam := params.Camera.Sanitized()

	// The kernel derives the projection scale from fov itself; the w lane of
	// the position slot carries the fov in degrees.
	return frameUniforms{
		Position: [4]float32{cam.Position[0], cam.Position[1], cam.Position[2], cam.FOV},
		Forward:  [4]float32{cam.Forward[0], cam.Forward[1], cam.Forward[2], 0},
		Right:    [4]float32{cam.Right[0], cam.Right[1], cam.Right[2], 0},
		Up:       [4]float32{cam.Up[0], cam.Up[1], cam.Up[2], 0},

		FrameW: frameW,
		FrameH: frameH,

		Time:           params.Time,
		ColorMode:      params.ColorMode,
		ColorIntensity: params.ColorIntensity,
	}
}
