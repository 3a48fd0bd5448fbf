package physics

import (
	"math"

	"github.com/Selkomark/Blackhole-Simulation/types"
)

// Non-finite radiance (near-horizon numerical blow-up) is replaced with a
// loud sentinel so a rendering defect is visible instead of corrupting the
// frame or anything persisted from it.
var sentinelPixel = [4]uint8{255, 0, 255, 255}

// ToneMap compresses HDR radiance to an 8-bit RGBA pixel: Reinhard
// c/(c+1), gamma 1/2.2, clamp to [0,1]. Alpha is always opaque.
func ToneMap(c types.Vec3) [4]uint8 {
	for _, ch := range c {
		f := float64(ch)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return sentinelPixel
		}
	}

	var out [4]uint8
	for i, ch := range c {
		if ch < 0 {
			ch = 0
		}
		mapped := powf(ch/(ch+1.0), 1.0/2.2)
		v := int(mapped * 255.0)
		if v > 255 {
			v = 255
		}
		out[i] = uint8(v)
	}
	out[3] = 255
	return out
}
