package renderer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Selkomark/Blackhole-Simulation/scene"
	"github.com/Selkomark/Blackhole-Simulation/types"
)

func testOptions() Options {
	return Options{
		FrameW:  64,
		FrameH:  48,
		Mass:    1.0,
		Backend: BackendCPU,
	}
}

func TestParseBackend(t *testing.T) {
	specs := []struct {
		in  string
		exp Backend
	}{
		{"cpu", BackendCPU},
		{"opencl", BackendOpenCL},
		{"gpu", BackendOpenCL},
	}
	for _, spec := range specs {
		got, err := ParseBackend(spec.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != spec.exp {
			t.Fatalf("ParseBackend(%q): expected %s; got %s", spec.in, spec.exp, got)
		}
	}

	if _, err := ParseBackend("cuda"); !errors.Is(err, ErrUnsupportedBackend) {
		t.Fatalf("expected ErrUnsupportedBackend for an unknown name; got %v", err)
	}
}

func TestNewRejectsInvalidResolution(t *testing.T) {
	opts := testOptions()
	opts.FrameW = 0

	if _, err := New(opts); !errors.Is(err, ErrInvalidResolution) {
		t.Fatalf("expected ErrInvalidResolution; got %v", err)
	}
}

func TestRenderAndPixels(t *testing.T) {
	r, err := New(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	cam := scene.LookAt(types.Vec3{0, 3, -20}, types.Vec3{}, 60)
	pixels, err := r.RenderAndPixels(cam, 0, 0, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pixels) != 64*48*4 {
		t.Fatalf("expected %d pixel bytes; got %d", 64*48*4, len(pixels))
	}

	stats := r.Stats()
	if stats.TracerId == "" {
		t.Fatal("expected a tracer id in the frame stats")
	}
	if stats.FrameW != 64 || stats.FrameH != 48 {
		t.Fatalf("unexpected stats dimensions: %dx%d", stats.FrameW, stats.FrameH)
	}
}

func TestRenderSanitizesDegenerateCamera(t *testing.T) {
	r, err := New(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	// A zero-value camera and a non-positive intensity must both be repaired
	// rather than rejected.
	if err = r.Render(scene.Camera{}, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
}

func TestResize(t *testing.T) {
	r, err := New(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err = r.Resize(0, 10); !errors.Is(err, ErrInvalidResolution) {
		t.Fatalf("expected ErrInvalidResolution; got %v", err)
	}

	if err = r.Resize(32, 32); err != nil {
		t.Fatal(err)
	}
	if w, h := r.FrameDims(); w != 32 || h != 32 {
		t.Fatalf("expected 32x32 after resize; got %dx%d", w, h)
	}

	cam := scene.LookAt(types.Vec3{0, 3, -20}, types.Vec3{}, 60)
	pixels, err := r.RenderAndPixels(cam, 0, 0, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pixels) != 32*32*4 {
		t.Fatalf("expected %d pixel bytes after resize; got %d", 32*32*4, len(pixels))
	}
}

func TestRenderIsDeterministicAcrossRenderers(t *testing.T) {
	cam := scene.LookAt(types.Vec3{0, 3, -20}, types.Vec3{}, 60)

	render := func() []uint8 {
		r, err := New(testOptions())
		if err != nil {
			t.Fatal(err)
		}
		defer r.Close()

		pixels, err := r.RenderAndPixels(cam, 2.0, 1, 1.0)
		if err != nil {
			t.Fatal(err)
		}
		return append([]uint8(nil), pixels...)
	}

	if !bytes.Equal(render(), render()) {
		t.Fatal("expected identical frames from identical renderer configurations")
	}
}
