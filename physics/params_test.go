package physics

import (
	"strings"
	"testing"
)

func TestFloatLiteral(t *testing.T) {
	specs := []struct {
		in  float32
		exp string
	}{
		{100, "1e+02f"},
		{12, "1.2e+01f"},
		{2.5, "2.5e+00f"},
		{0.02, "2e-02f"},
		{0.001, "1e-03f"},
	}
	for _, spec := range specs {
		if got := FloatLiteral(spec.in); got != spec.exp {
			t.Fatalf("FloatLiteral(%v): expected %q; got %q", spec.in, spec.exp, got)
		}
	}
}

// Whole-valued constants must never degrade to tokens like "100f": that is an
// integer constant with an invalid suffix, and the device compiler rejects
// the whole program build.
func TestKernelDefinesEmitValidFloatLiterals(t *testing.T) {
	for _, field := range strings.Fields(KernelDefines()) {
		eq := strings.IndexByte(field, '=')
		if eq < 0 {
			continue
		}

		value := field[eq+1:]
		if !strings.HasSuffix(value, "f") {
			continue
		}
		if body := strings.TrimSuffix(value, "f"); !strings.ContainsAny(body, ".eE") {
			t.Fatalf("define %s is not a valid opencl float literal", field)
		}
	}
}

func TestKernelDefinesCoverSharedTunables(t *testing.T) {
	defines := KernelDefines()

	for _, name := range []string{
		"BASE_STEP", "MIN_STEP", "MAX_STEP",
		"MAX_DIST", "MIN_TRANSMITTANCE",
		"DISK_INNER_RS", "DISK_OUTER_RS", "DISK_HALF_THICKNESS",
		"DISK_FALLOFF", "ABSORPTION_COEFF", "EMISSION_SCALE",
		"DENSITY_CUTOFF", "MAX_ORBITAL_BETA",
		"DISK_ANIM_SPEED", "BG_DRIFT_SPEED",
		"STAR_GRID", "STAR_HASH_A", "STAR_HASH_B",
		"STAR_DENSITY_MOD", "STAR_DENSITY_THRESHOLD",
	} {
		if !strings.Contains(defines, "-D "+name+"=") {
			t.Fatalf("expected build options to define %s; got %q", name, defines)
		}
	}
}
