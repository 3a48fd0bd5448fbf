package cpu

import (
	"bytes"
	"testing"

	"github.com/Selkomark/Blackhole-Simulation/physics"
	"github.com/Selkomark/Blackhole-Simulation/scene"
	"github.com/Selkomark/Blackhole-Simulation/tracer"
	"github.com/Selkomark/Blackhole-Simulation/types"
)

func testParams() tracer.FrameParams {
	return tracer.FrameParams{
		Camera:         scene.LookAt(types.Vec3{0, 3, -20}, types.Vec3{}, 60),
		Time:           1.5,
		ColorMode:      physics.ColorModeOrange,
		ColorIntensity: 1.0,
	}
}

func TestRenderBeforeSetup(t *testing.T) {
	tr := NewTracer(physics.NewBlackHole(1.0), 2)
	defer tr.Close()

	if err := tr.Render(testParams()); err == nil {
		t.Fatal("expected Render before Setup to fail")
	}
}

func TestSetupRejectsInvalidDimensions(t *testing.T) {
	tr := NewTracer(physics.NewBlackHole(1.0), 2)
	defer tr.Close()

	if err := tr.Setup(0, 64); err == nil {
		t.Fatal("expected an error for a zero-width frame")
	}
	if err := tr.Setup(64, 0); err == nil {
		t.Fatal("expected an error for a zero-height frame")
	}
}

func TestRenderFrame(t *testing.T) {
	tr := NewTracer(physics.NewBlackHole(1.0), 4)
	defer tr.Close()

	if err := tr.Setup(64, 64); err != nil {
		t.Fatal(err)
	}
	if err := tr.Render(testParams()); err != nil {
		t.Fatal(err)
	}

	pixels := tr.Pixels()
	if len(pixels) != 64*64*4 {
		t.Fatalf("expected %d pixel bytes; got %d", 64*64*4, len(pixels))
	}

	// The shadow: the center ray aims straight at the hole, misses the disk
	// slab and is captured, so the center pixel is pure black.
	center := (32*64 + 32) * 4
	if pixels[center] != 0 || pixels[center+1] != 0 || pixels[center+2] != 0 {
		t.Fatalf("expected a black center pixel; got %v", pixels[center:center+4])
	}
	if pixels[center+3] != 255 {
		t.Fatalf("expected opaque alpha; got %d", pixels[center+3])
	}

	// The disk: the frame must not be entirely black.
	lit := 0
	for i := 0; i < len(pixels); i += 4 {
		if pixels[i] != 0 || pixels[i+1] != 0 || pixels[i+2] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("expected disk emission somewhere in the frame; every pixel was black")
	}

	stats := tr.Stats()
	if stats.FrameW != 64 || stats.FrameH != 64 {
		t.Fatalf("unexpected frame stats dimensions: %dx%d", stats.FrameW, stats.FrameH)
	}
	if stats.RenderTime <= 0 {
		t.Fatal("expected a positive render time")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	tr := NewTracer(physics.NewBlackHole(1.0), 4)
	defer tr.Close()

	if err := tr.Setup(64, 48); err != nil {
		t.Fatal(err)
	}

	params := testParams()
	if err := tr.Render(params); err != nil {
		t.Fatal(err)
	}
	first := append([]uint8(nil), tr.Pixels()...)

	if err := tr.Render(params); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, tr.Pixels()) {
		t.Fatal("expected two renders of identical params to produce identical frames")
	}
}

func TestResizeDiscardsPreviousFrame(t *testing.T) {
	tr := NewTracer(physics.NewBlackHole(1.0), 2)
	defer tr.Close()

	if err := tr.Setup(64, 64); err != nil {
		t.Fatal(err)
	}
	if err := tr.Render(testParams()); err != nil {
		t.Fatal(err)
	}

	if err := tr.Resize(32, 16); err != nil {
		t.Fatal(err)
	}

	pixels := tr.Pixels()
	if len(pixels) != 32*16*4 {
		t.Fatalf("expected %d pixel bytes after resize; got %d", 32*16*4, len(pixels))
	}
	for i, b := range pixels {
		if b != 0 {
			t.Fatalf("expected a zeroed buffer after resize; byte %d is %d", i, b)
		}
	}

	// Render at the new resolution still works.
	if err := tr.Render(testParams()); err != nil {
		t.Fatal(err)
	}
}

func TestRowChunkingCoversRaggedHeights(t *testing.T) {
	// A height that is not a multiple of the chunk size: the last chunk is
	// short and every row must still be written.
	tr := NewTracer(physics.NewBlackHole(1.0), 2)
	defer tr.Close()

	if err := tr.Setup(16, rowsPerChunk+3); err != nil {
		t.Fatal(err)
	}

	// Alpha is 255 on every written pixel, so it marks coverage.
	if err := tr.Render(testParams()); err != nil {
		t.Fatal(err)
	}

	pixels := tr.Pixels()
	for y := uint32(0); y < rowsPerChunk+3; y++ {
		for x := uint32(0); x < 16; x++ {
			if a := pixels[(y*16+x)*4+3]; a != 255 {
				t.Fatalf("pixel (%d,%d) was never written; alpha is %d", x, y, a)
			}
		}
	}
}
