package main

import (
	"os"

	"github.com/Selkomark/Blackhole-Simulation/cmd"
	"github.com/urfave/cli"
)

func renderFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 1280,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 720,
			Usage: "frame height",
		},
		cli.Float64Flag{
			Name:  "mass",
			Value: 1.0,
			Usage: "black hole mass (schwarzschild radius is 2*mass)",
		},
		cli.StringFlag{
			Name:  "backend",
			Value: "cpu",
			Usage: "execution backend: cpu or opencl",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "cpu backend worker count; 0 uses all hardware threads",
		},
		cli.StringFlag{
			Name:  "device",
			Usage: "opencl backend: select device whose name contains this value",
		},
		cli.IntFlag{
			Name:  "color-mode",
			Value: 0,
			Usage: "disk palette: 0 blue, 1 orange, 2 red",
		},
		cli.Float64Flag{
			Name:  "intensity",
			Value: 1.0,
			Usage: "disk emission intensity multiplier",
		},
	}
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "blackhole"
	app.Usage = "render a schwarzschild black hole with a volumetric accretion disk"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame to a png file",
			Flags: append(renderFlags(),
				cli.Float64Flag{
					Name:  "time",
					Value: 0,
					Usage: "elapsed time driving disk rotation and background drift",
				},
				cli.Float64Flag{
					Name:  "cam-x",
					Value: 0,
					Usage: "camera x position",
				},
				cli.Float64Flag{
					Name:  "cam-y",
					Value: 3,
					Usage: "camera y position",
				},
				cli.Float64Flag{
					Name:  "cam-z",
					Value: -20,
					Usage: "camera z position",
				},
				cli.Float64Flag{
					Name:  "fov",
					Value: 60,
					Usage: "vertical field of view in degrees",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			),
			Action: cmd.RenderFrame,
		},
		{
			Name:   "interactive",
			Usage:  "open an interactive orbit view",
			Flags:  renderFlags(),
			Action: cmd.RenderInteractive,
		},
		{
			Name:   "list-devices",
			Usage:  "list available opencl devices",
			Action: cmd.ListDevices,
		},
	}

	app.Run(os.Args)
}
