package physics

import (
	"fmt"
	"strconv"
)

// Tunables shared by the CPU tracer and the OpenCL kernel. The kernel receives
// these via -D build options (see KernelDefines) so the two implementations
// cannot drift apart.
const (
	// Geodesic integration step control.
	BaseStep float32 = 0.1
	MinStep  float32 = 0.02
	MaxStep  float32 = 0.5

	// Ray termination bounds.
	MaxDist          float32 = 100.0
	MinTransmittance float32 = 0.01

	// Accretion disk bounds, expressed in multiples of the Schwarzschild
	// radius, and the thin-disk height cutoff in world units.
	DiskInnerRs       float32 = 2.5
	DiskOuterRs       float32 = 12.0
	DiskHalfThickness float32 = 0.2

	// Disk shading.
	DiskFalloff     float32 = 10.0
	AbsorptionCoeff float32 = 0.5
	EmissionScale   float32 = 4.0
	DensityCutoff   float32 = 0.001

	// Keplerian orbital speed cap (in units of c) for doppler beaming.
	MaxOrbitalBeta float32 = 0.5

	// Animation speeds: disk pattern phase in radians per second, background
	// drift in UV units per second.
	DiskAnimSpeed float32 = 0.35
	BgDriftSpeed  float32 = 0.004

	// Procedural starfield hashing.
	StarGrid             uint32 = 4000
	StarHashA            uint32 = 19349663
	StarHashB            uint32 = 83492791
	StarDensityMod       uint32 = 1000
	StarDensityThreshold uint32 = 2
)

// FloatLiteral renders a float32 as an OpenCL C float literal. Exponent
// notation guarantees the token stays a floating constant: plain %v would
// print whole values like 100 as "100", and "100f" is an integer constant
// with an invalid suffix that CL compilers reject.
func FloatLiteral(v float32) string {
	return strconv.FormatFloat(float64(v), 'e', -1, 32) + "f"
}

// KernelDefines returns the -D build options that inject the shared tunables
// into the OpenCL program. The Schwarzschild radius is appended separately by
// the tracer since it depends on the configured mass.
func KernelDefines() string {
	return fmt.Sprintf(
		"-D BASE_STEP=%s -D MIN_STEP=%s -D MAX_STEP=%s "+
			"-D MAX_DIST=%s -D MIN_TRANSMITTANCE=%s "+
			"-D DISK_INNER_RS=%s -D DISK_OUTER_RS=%s -D DISK_HALF_THICKNESS=%s "+
			"-D DISK_FALLOFF=%s -D ABSORPTION_COEFF=%s -D EMISSION_SCALE=%s "+
			"-D DENSITY_CUTOFF=%s -D MAX_ORBITAL_BETA=%s "+
			"-D DISK_ANIM_SPEED=%s -D BG_DRIFT_SPEED=%s "+
			"-D STAR_GRID=%d -D STAR_HASH_A=%du -D STAR_HASH_B=%du "+
			"-D STAR_DENSITY_MOD=%du -D STAR_DENSITY_THRESHOLD=%du",
		FloatLiteral(BaseStep), FloatLiteral(MinStep), FloatLiteral(MaxStep),
		FloatLiteral(MaxDist), FloatLiteral(MinTransmittance),
		FloatLiteral(DiskInnerRs), FloatLiteral(DiskOuterRs), FloatLiteral(DiskHalfThickness),
		FloatLiteral(DiskFalloff), FloatLiteral(AbsorptionCoeff), FloatLiteral(EmissionScale),
		FloatLiteral(DensityCutoff), FloatLiteral(MaxOrbitalBeta),
		FloatLiteral(DiskAnimSpeed), FloatLiteral(BgDriftSpeed),
		StarGrid, StarHashA, StarHashB,
		StarDensityMod, StarDensityThreshold,
	)
}
