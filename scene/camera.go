package scene

import (
	"math"

	"github.com/Selkomark/Blackhole-Simulation/types"
)

// The world up axis used when re-deriving a camera basis.
var worldUp = types.Vec3{0, 1, 0}

// The fallback view direction for a fully degenerate pose.
var defaultForward = types.Vec3{0, 0, 1}

// Camera pose supplied by the caller once per frame: position, orthonormal
// basis and vertical field of view in degrees. The renderer never trusts the
// supplied basis; Sanitized re-derives it when degenerate.
type Camera struct {
	Position types.Vec3
	Forward  types.Vec3
	Right    types.Vec3
	Up       types.Vec3

	// Vertical field of view in degrees.
	FOV float32
}

// LookAt builds a camera at position looking toward target.
func LookAt(position, target types.Vec3, fov float32) Camera {
	cam := Camera{
		Position: position,
		Forward:  target.Sub(position),
		FOV:      fov,
	}
	return cam.Sanitized()
}

// Orbit builds a camera on a sphere of the given radius around target, from
// yaw/pitch angles in radians, looking at the target.
func Orbit(target types.Vec3, yaw, pitch, radius, fov float32) Camera {
	sy, cy := math.Sincos(float64(yaw))
	sp, cp := math.Sincos(float64(pitch))

	offset := types.Vec3{
		float32(cp * sy),
		float32(sp),
		float32(-cp * cy),
	}.Mul(radius)

	return LookAt(target.Add(offset), target, fov)
}

// Sanitized returns a camera with a valid orthonormal basis. A near-zero
// forward vector is replaced with a safe default orientation, and right/up
// are always re-derived from forward so a caller-supplied skewed basis can
// not propagate through ray generation.
func (c Camera) Sanitized() Camera {
	out := c

	out.Forward = c.Forward.Normalize()
	if out.Forward.LenSq() == 0 {
		out.Forward = defaultForward
	}

	out.Right = out.Forward.Cross(worldUp).Normalize()
	if out.Right.LenSq() == 0 {
		// Looking straight along the up axis; pick an arbitrary right.
		out.Right = types.Vec3{1, 0, 0}
	}
	out.Up = out.Right.Cross(out.Forward).Normalize()

	if out.FOV <= 0 || out.FOV >= 180 {
		out.FOV = 60
	}

	return out
}

// RayGen precomputes the per-frame projection terms of the pinhole model so
// per-pixel ray generation stays cheap.
type RayGen struct {
	origin  types.Vec3
	forward types.Vec3
	right   types.Vec3
	up      types.Vec3

	scale  float32
	aspect float32
	invW   float32
	invH   float32
}

// Rays builds a pixel-to-ray generator for the given resolution. The camera
// is sanitized first.
func (c Camera) Rays(frameW, frameH uint32) RayGen {
	cam := c.Sanitized()
	return RayGen{
		origin:  cam.Position,
		forward: cam.Forward,
		right:   cam.Right,
		up:      cam.Up,
		scale:   float32(math.Tan(float64(cam.FOV) * 0.5 * math.Pi / 180.0)),
		aspect:  float32(frameW) / float32(frameH),
		invW:    1.0 / float32(frameW),
		invH:    1.0 / float32(frameH),
	}
}

// Origin returns the ray origin shared by every pixel.
func (g RayGen) Origin() types.Vec3 {
	return g.origin
}

// Dir maps a pixel coordinate to a normalized world-space ray direction
// through the pixel center.
func (g RayGen) Dir(x, y uint32) types.Vec3 {
	px := (2.0*(float32(x)+0.5)*g.invW - 1.0) * g.aspect * g.scale
	py := (1.0 - 2.0*(float32(y)+0.5)*g.invH) * g.scale

	return g.forward.Add(g.right.Mul(px)).Add(g.up.Mul(py)).Normalize()
}
