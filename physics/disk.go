package physics

import "github.com/Selkomark/Blackhole-Simulation/types"

// A disk color palette: three radial temperature stops plus the bright/dim
// variants that doppler shifting blends toward.
type Palette struct {
	Hot  types.Vec3
	Mid  types.Vec3
	Cold types.Vec3

	DopplerBright types.Vec3
	DopplerDim    types.Vec3
}

// Color mode selectors accepted by the render entry points.
const (
	ColorModeBlue int32 = iota
	ColorModeOrange
	ColorModeRed

	NumColorModes = 3
)

var palettes = [NumColorModes]Palette{
	// Blue: Interstellar style with extra blue in the inner region.
	{
		Hot:           types.Vec3{0.7, 0.85, 1.0},
		Mid:           types.Vec3{0.75, 0.85, 1.0},
		Cold:          types.Vec3{0.5, 0.6, 0.8},
		DopplerBright: types.Vec3{0.85, 0.92, 1.0},
		DopplerDim:    types.Vec3{0.5, 0.6, 0.8},
	},
	// Orange: warm glowing plasma.
	{
		Hot:           types.Vec3{1.0, 0.9, 0.7},
		Mid:           types.Vec3{1.0, 0.75, 0.5},
		Cold:          types.Vec3{0.9, 0.6, 0.4},
		DopplerBright: types.Vec3{1.0, 0.95, 0.85},
		DopplerDim:    types.Vec3{0.8, 0.5, 0.3},
	},
	// Red: hot red plasma.
	{
		Hot:           types.Vec3{1.0, 0.85, 0.75},
		Mid:           types.Vec3{1.0, 0.6, 0.5},
		Cold:          types.Vec3{0.85, 0.4, 0.3},
		DopplerBright: types.Vec3{1.0, 0.9, 0.85},
		DopplerDim:    types.Vec3{0.7, 0.3, 0.2},
	},
}

// PaletteForMode maps a color mode selector to its palette. Out-of-range
// modes fall back to the blue palette rather than failing: the selector
// crosses the host/device boundary as a plain int and must stay total.
func PaletteForMode(mode int32) Palette {
	if mode < 0 || mode >= NumColorModes {
		mode = ColorModeBlue
	}
	return palettes[mode]
}

// PaletteData flattens all palettes into float4-padded rows for upload as an
// OpenCL constant buffer: 5 colors per mode, in struct field order. Both
// backends read their colors from this single table.
func PaletteData() []float32 {
	out := make([]float32, 0, NumColorModes*5*4)
	for mode := int32(0); mode < NumColorModes; mode++ {
		p := palettes[mode]
		for _, c := range [5]types.Vec3{p.Hot, p.Mid, p.Cold, p.DopplerBright, p.DopplerDim} {
			out = append(out, c[0], c[1], c[2], 0)
		}
	}
	return out
}

// Volumetric disk density at pos. Zero outside an annulus of
// [DiskInnerRs*rs, DiskOuterRs*rs] in radius and |y| <= DiskHalfThickness in
// height. Inside, a spiral+ring interference pattern that rotates with
// elapsed time, faded linearly at both edges and attenuated exponentially
// away from the disk plane.
func (bh BlackHole) DiskDensity(pos types.Vec3, time float32) float32 {
	r := pos.Len()

	if r < bh.Rs*DiskInnerRs || r > bh.Rs*DiskOuterRs {
		return 0
	}
	if pos[1] > DiskHalfThickness || pos[1] < -DiskHalfThickness {
		return 0
	}

	angle := atan2f(pos[2], pos[0])
	spiral := sinf(angle*3.0 + r*0.5 - time*DiskAnimSpeed)
	rings := sinf(r * 2.0)
	noise := (spiral+rings)*0.5 + 0.5

	var fade float32 = 1.0
	if r < bh.Rs*3.0 {
		fade = (r - bh.Rs*DiskInnerRs) / (bh.Rs * 0.5)
	}
	if r > bh.Rs*10.0 {
		fade = (bh.Rs*DiskOuterRs - r) / (bh.Rs * 2.0)
	}

	y := pos[1]
	if y < 0 {
		y = -y
	}
	return noise * fade * expf(-y*DiskFalloff)
}

// Relativistic doppler factor for disk material at pos as seen along rayDir.
// The local orbital speed is Keplerian, v = sqrt(rs/2r), capped at
// MaxOrbitalBeta for stability. delta > 1 means the material approaches the
// observer.
func (bh BlackHole) DopplerFactor(pos, rayDir types.Vec3) float32 {
	r := pos.Len()

	beta := sqrtf(bh.Rs / (2.0 * r))
	if beta > MaxOrbitalBeta {
		beta = MaxOrbitalBeta
	}

	// The disk rotates clockwise seen from +y: the orbital velocity is the
	// radial direction in the x-z plane rotated -90 degrees.
	radialXZ := types.Vec3{pos[0], 0, pos[2]}.Normalize()
	velocity := types.Vec3{radialXZ[2], 0, -radialXZ[0]}.Mul(beta)

	gamma := 1.0 / sqrtf(1.0-beta*beta)

	// Velocity component toward the observer, i.e. against the ray.
	betaParallel := -velocity.Dot(rayDir)

	return 1.0 / (gamma * (1.0 - betaParallel))
}

// Emission color for a disk sample. Blends the palette's temperature stops
// across the annulus, applies delta^3 doppler beaming plus a hue shift toward
// the palette's bright/dim variant, and scales by density and the externally
// supplied intensity.
func (bh BlackHole) DiskEmission(density, r float32, pos, rayDir types.Vec3, colorMode int32, intensity float32) types.Vec3 {
	t := clampf((r-bh.Rs*DiskInnerRs)/(bh.Rs*(DiskOuterRs-DiskInnerRs)), 0, 1)

	p := PaletteForMode(colorMode)

	var base types.Vec3
	if t < 0.5 {
		base = p.Hot.Mul(1.0 - t*2.0).Add(p.Mid.Mul(t * 2.0))
	} else {
		base = p.Mid.Mul(1.0 - (t-0.5)*2.0).Add(p.Cold.Mul((t - 0.5) * 2.0))
	}

	delta := bh.DopplerFactor(pos, rayDir)

	// Observed intensity scales as delta^3 for emission.
	boost := delta * delta * delta

	color := base
	if delta > 1.0 {
		shift := (delta - 1.0) * 2.0
		if shift > 0.4 {
			shift = 0.4
		}
		color = base.Mul(1.0 - shift).Add(p.DopplerBright.Mul(shift))
	} else {
		shift := (1.0 - delta) * 2.0
		if shift > 0.3 {
			shift = 0.3
		}
		color = base.Mul(1.0 - shift).Add(p.DopplerDim.Mul(shift))
	}

	return color.Mul(density * EmissionScale * intensity * boost)
}
