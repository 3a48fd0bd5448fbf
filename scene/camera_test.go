package scene

import (
	"math"
	"testing"

	"github.com/Selkomark/Blackhole-Simulation/types"
)

func expectClose(t *testing.T, desc string, got, want float32, tol float64) {
	t.Helper()
	if math.Abs(float64(got-want)) > tol {
		t.Fatalf("%s: expected %f; got %f", desc, want, got)
	}
}

func TestSanitizedBasisIsOrthonormal(t *testing.T) {
	cam := Camera{
		Position: types.Vec3{0, 3, -20},
		Forward:  types.Vec3{1, 1, 0},
		// A deliberately skewed basis that must not survive sanitation.
		Right: types.Vec3{5, 5, 5},
		Up:    types.Vec3{1, 0, 0},
		FOV:   60,
	}.Sanitized()

	expectClose(t, "forward length", cam.Forward.Len(), 1, 1e-6)
	expectClose(t, "right length", cam.Right.Len(), 1, 1e-6)
	expectClose(t, "up length", cam.Up.Len(), 1, 1e-6)
	expectClose(t, "forward.right", cam.Forward.Dot(cam.Right), 0, 1e-6)
	expectClose(t, "forward.up", cam.Forward.Dot(cam.Up), 0, 1e-6)
	expectClose(t, "right.up", cam.Right.Dot(cam.Up), 0, 1e-6)
}

func TestSanitizedDegeneratePose(t *testing.T) {
	cam := Camera{}.Sanitized()

	if cam.Forward != (types.Vec3{0, 0, 1}) {
		t.Fatalf("expected the default forward for a zero pose; got %v", cam.Forward)
	}
	if cam.FOV != 60 {
		t.Fatalf("expected the default fov for a zero pose; got %f", cam.FOV)
	}
	expectClose(t, "right length", cam.Right.Len(), 1, 1e-6)
	expectClose(t, "up length", cam.Up.Len(), 1, 1e-6)
}

func TestSanitizedPolarView(t *testing.T) {
	// Looking straight down the up axis leaves the cross product degenerate;
	// an arbitrary but valid right axis must be substituted.
	cam := Camera{Forward: types.Vec3{0, 1, 0}, FOV: 60}.Sanitized()

	expectClose(t, "right length", cam.Right.Len(), 1, 1e-6)
	expectClose(t, "forward.right", cam.Forward.Dot(cam.Right), 0, 1e-6)
}

func TestCenterRayMatchesForward(t *testing.T) {
	cam := LookAt(types.Vec3{0, 3, -20}, types.Vec3{}, 60)

	// Odd resolution: the center pixel straddles the optical axis exactly.
	rays := cam.Rays(65, 65)
	dir := rays.Dir(32, 32)

	for i := 0; i < 3; i++ {
		expectClose(t, "center ray component", dir[i], cam.Forward[i], 1e-5)
	}
}

func TestRayDirectionsAreNormalized(t *testing.T) {
	rays := LookAt(types.Vec3{0, 3, -20}, types.Vec3{}, 75).Rays(64, 48)

	for _, px := range [][2]uint32{{0, 0}, {63, 0}, {0, 47}, {63, 47}, {31, 23}} {
		dir := rays.Dir(px[0], px[1])
		expectClose(t, "ray length", dir.Len(), 1, 1e-5)
	}
}

func TestRayGenFOVWidensFrustum(t *testing.T) {
	pos := types.Vec3{0, 0, -20}
	narrow := LookAt(pos, types.Vec3{}, 40).Rays(64, 64)
	wide := LookAt(pos, types.Vec3{}, 90).Rays(64, 64)

	forward := types.Vec3{0, 0, 1}
	if narrow.Dir(0, 0).Dot(forward) <= wide.Dir(0, 0).Dot(forward) {
		t.Fatal("expected corner rays to diverge more from the axis at a wider fov")
	}
}

func TestOrbitLooksAtTarget(t *testing.T) {
	target := types.Vec3{1, 2, 3}
	cam := Orbit(target, 0.7, 0.3, 25, 60)

	expectClose(t, "orbit radius", target.Sub(cam.Position).Len(), 25, 1e-4)

	toTarget := target.Sub(cam.Position).Normalize()
	for i := 0; i < 3; i++ {
		expectClose(t, "forward toward target", cam.Forward[i], toTarget[i], 1e-5)
	}
}
