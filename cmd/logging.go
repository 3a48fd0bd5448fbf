package cmd

import (
	"github.com/Selkomark/Blackhole-Simulation/log"
	"github.com/urfave/cli"
)

var logger = log.New("blackhole")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
