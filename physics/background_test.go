package physics

import (
	"math"
	"testing"

	"github.com/Selkomark/Blackhole-Simulation/types"
)

func sphereDir(i, count int) types.Vec3 {
	// Fibonacci sphere: a deterministic, roughly uniform direction set.
	y := 1.0 - 2.0*(float64(i)+0.5)/float64(count)
	r := math.Sqrt(1.0 - y*y)
	phi := float64(i) * math.Pi * (3.0 - math.Sqrt(5.0))
	return types.Vec3{float32(r * math.Cos(phi)), float32(y), float32(r * math.Sin(phi))}
}

func TestSampleBackgroundIsDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		dir := sphereDir(i, 100)
		if SampleBackground(dir, 1.5) != SampleBackground(dir, 1.5) {
			t.Fatalf("expected identical colors for identical inputs at dir %v", dir)
		}
	}
}

func TestSampleBackgroundStarDistribution(t *testing.T) {
	const samples = 20000

	var stars int
	for i := 0; i < samples; i++ {
		c := SampleBackground(sphereDir(i, samples), 0)
		if c == (types.Vec3{}) {
			continue
		}
		stars++

		if c[0] != c[1] || c[1] != c[2] {
			t.Fatalf("expected grayscale stars; got %v", c)
		}
		if c[0] < 0.5 || c[0] > 1.0 {
			t.Fatalf("expected star brightness in [0.5, 1.0]; got %f", c[0])
		}
	}

	// The hash places roughly 2 stars per 1000 grid cells.
	if stars == 0 || stars > samples/20 {
		t.Fatalf("expected a sparse starfield; got %d stars out of %d samples", stars, samples)
	}
}

func TestSampleBackgroundDrifts(t *testing.T) {
	// With enough samples at two distant times, at least one direction must
	// change its star assignment as the background drifts in U.
	const samples = 5000

	for i := 0; i < samples; i++ {
		dir := sphereDir(i, samples)
		if SampleBackground(dir, 0) != SampleBackground(dir, 100) {
			return
		}
	}
	t.Fatal("expected the starfield to drift over time; all samples were identical")
}
