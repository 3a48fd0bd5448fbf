package cmd

import (
	"bytes"
	"fmt"

	"github.com/Selkomark/Blackhole-Simulation/renderer"
	"github.com/Selkomark/Blackhole-Simulation/scene"
	"github.com/Selkomark/Blackhole-Simulation/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a single frame to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	r, err := setupRenderer(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	cam := scene.LookAt(
		types.Vec3{
			float32(ctx.Float64("cam-x")),
			float32(ctx.Float64("cam-y")),
			float32(ctx.Float64("cam-z")),
		},
		types.Vec3{},
		float32(ctx.Float64("fov")),
	)

	pixels, err := r.RenderAndPixels(
		cam,
		float32(ctx.Float64("time")),
		int32(ctx.Int("color-mode")),
		float32(ctx.Float64("intensity")),
	)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	frameW, frameH := r.FrameDims()
	if err = renderer.WritePNG(out, frameW, frameH, pixels); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", out)

	displayFrameStats(r.Stats())
	return nil
}

// Build a renderer from the shared CLI flags.
func setupRenderer(ctx *cli.Context) (*renderer.Renderer, error) {
	backend, err := renderer.ParseBackend(ctx.String("backend"))
	if err != nil {
		return nil, err
	}

	return renderer.New(renderer.Options{
		FrameW:     uint32(ctx.Int("width")),
		FrameH:     uint32(ctx.Int("height")),
		Mass:       float32(ctx.Float64("mass")),
		Backend:    backend,
		NumWorkers: ctx.Int("workers"),
		DeviceName: ctx.String("device"),
	})
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Frame", "Render time"})
	table.Append([]string{
		stats.TracerId,
		fmt.Sprintf("%dx%d", stats.FrameW, stats.FrameH),
		fmt.Sprintf("%s", stats.RenderTime),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
