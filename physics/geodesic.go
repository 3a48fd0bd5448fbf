package physics

import "github.com/Selkomark/Blackhole-Simulation/types"

// A static, non-rotating mass at the origin. All curvature is derived from
// the Schwarzschild radius Rs = 2*Mass (geometrized units, c = G = 1).
type BlackHole struct {
	Mass float32
	Rs   float32
}

// Create a black hole of the given mass.
func NewBlackHole(mass float32) BlackHole {
	return BlackHole{Mass: mass, Rs: 2 * mass}
}

// The (position, velocity) pair threaded through RK4 sub-steps while marching
// a single ray.
type GeodesicState struct {
	Pos types.Vec3
	Vel types.Vec3
}

// Curvature-induced acceleration for a null geodesic: an inverse-fifth-power
// radial pull scaled by the conserved specific angular momentum h = p x v.
//
//	a = p * (-1.5 * rs * |h|^2 / |p|^5)
//
// The caller must reject positions inside the horizon before calling; no
// division guard exists at r = 0.
func (bh BlackHole) Acceleration(pos, vel types.Vec3) types.Vec3 {
	r2 := pos.LenSq()
	r := sqrtf(r2)
	h := pos.Cross(vel)
	factor := -1.5 * bh.Rs * h.LenSq() / (r2 * r2 * r)
	return pos.Mul(factor)
}

// Adaptive integration step for the current radius. Steps shrink near the
// horizon where curvature is high and grow far away to bound the total
// iteration count per ray. Stateless; clamped to [MinStep, MaxStep].
func (bh BlackHole) StepSize(r float32) float32 {
	return clampf(BaseStep*(r/(bh.Rs*2+0.1)), MinStep, MaxStep)
}

// Advance the geodesic state over dt with classic RK4. The velocity is
// re-normalized after the full step: light carries information in its
// direction only, and without the renormalization numerical drift slowly
// changes the propagation speed.
func (bh BlackHole) Step(st GeodesicState, dt float32) GeodesicState {
	k1v := bh.Acceleration(st.Pos, st.Vel)
	k1p := st.Vel

	k2v := bh.Acceleration(st.Pos.Add(k1p.Mul(dt*0.5)), st.Vel.Add(k1v.Mul(dt*0.5)))
	k2p := st.Vel.Add(k1v.Mul(dt * 0.5))

	k3v := bh.Acceleration(st.Pos.Add(k2p.Mul(dt*0.5)), st.Vel.Add(k2v.Mul(dt*0.5)))
	k3p := st.Vel.Add(k2v.Mul(dt * 0.5))

	k4v := bh.Acceleration(st.Pos.Add(k3p.Mul(dt)), st.Vel.Add(k3v.Mul(dt)))
	k4p := st.Vel.Add(k3v.Mul(dt))

	next := GeodesicState{
		Pos: st.Pos.Add(k1p.Add(k2p.Mul(2)).Add(k3p.Mul(2)).Add(k4p).Mul(dt / 6.0)),
		Vel: st.Vel.Add(k1v.Add(k2v.Mul(2)).Add(k3v.Mul(2)).Add(k4v).Mul(dt / 6.0)),
	}
	next.Vel = next.Vel.Normalize()
	return next
}
