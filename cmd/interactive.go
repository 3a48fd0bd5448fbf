package cmd

import (
	"runtime"

	"github.com/Selkomark/Blackhole-Simulation/renderer"
	"github.com/urfave/cli"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

// Open an interactive view of the black hole with an orbiting camera.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	r, err := setupRenderer(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	return renderer.Interactive(r, "blackhole")
}
