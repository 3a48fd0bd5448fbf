package physics

import "github.com/Selkomark/Blackhole-Simulation/types"

// Trace marches a single ray through curved spacetime and returns its HDR
// radiance. The loop runs while the accumulated path length stays below
// MaxDist and the residual transmittance above MinTransmittance; each
// iteration tests horizon capture first, then integrates disk emission and
// absorption via Beer-Lambert over the fixed base step, then advances the
// geodesic with RK4 over the adaptive step. Captured rays return the radiance
// accumulated so far with no background; escaping rays composite the
// starfield scaled by the residual transmittance.
func (bh BlackHole) Trace(origin, dir types.Vec3, time float32, colorMode int32, intensity float32) types.Vec3 {
	st := GeodesicState{Pos: origin, Vel: dir}

	var accumulated types.Vec3
	var transmittance float32 = 1.0
	var totalDist float32

	for totalDist < MaxDist && transmittance > MinTransmittance {
		r2 := st.Pos.LenSq()

		// Event horizon. This test runs before any acceleration evaluation
		// so the inverse-fifth-power term can never divide by r = 0.
		if r2 < bh.Rs*bh.Rs {
			return accumulated
		}

		r := sqrtf(r2)
		dt := bh.StepSize(r)

		density := bh.DiskDensity(st.Pos, time)
		if density > DensityCutoff {
			emission := bh.DiskEmission(density, r, st.Pos, st.Vel, colorMode, intensity)
			// Optical depth over the base step, not the adaptive one: the
			// larger far-field steps would otherwise absorb too aggressively.
			stepTransmittance := expf(-density * AbsorptionCoeff * BaseStep)

			accumulated = accumulated.Add(emission.Mul(transmittance * (1.0 - stepTransmittance)))
			transmittance *= stepTransmittance
		}

		st = bh.Step(st, dt)
		totalDist += dt
	}

	// Escaped: whatever the disk let through shows the stars behind it.
	return accumulated.Add(SampleBackground(st.Vel, time).Mul(transmittance))
}
