package physics

import (
	"math"

	"github.com/Selkomark/Blackhole-Simulation/types"
)

// Starfield color for an escaping ray direction. Pure function of direction
// and elapsed time: the direction maps to spherical UV, the UV grid is hashed
// with two large odd multipliers and thresholded to place stars, and a second
// hash-derived value picks the star brightness. Time slowly drifts the
// background in U.
func SampleBackground(dir types.Vec3, time float32) types.Vec3 {
	u := 0.5 + atan2f(dir[2], dir[0])/(2*math.Pi)
	v := 0.5 - asinf(clampf(dir[1], -1, 1))/math.Pi

	u += time * BgDriftSpeed
	u -= float32(math.Floor(float64(u)))

	hash := uint32(u*float32(StarGrid))*StarHashA + uint32(v*float32(StarGrid))*StarHashB
	if hash%StarDensityMod < StarDensityThreshold {
		brightness := 0.5 + float32(hash%100)/200.0
		return types.Vec3{brightness, brightness, brightness}
	}

	return types.Vec3{}
}
