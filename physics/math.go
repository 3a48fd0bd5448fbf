package physics

import "math"

// float32 helpers for the hot path. All tracing math runs in float32 so that
// the CPU tracer stays numerically comparable to the OpenCL kernel.

func sqrtf(x float32) float32 { return float32(math.Sqrt(float64(x))) }

func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }

func expf(x float32) float32 { return float32(math.Exp(float64(x))) }

func powf(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) }

func atan2f(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

func asinf(x float32) float32 { return float32(math.Asin(float64(x))) }

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
