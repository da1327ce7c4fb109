// Command shoal runs the flocking simulation in a terminal, headless, or
// behind a live tuning server.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/urfave/cli"
)

var version = "dev"

func main() {
	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "shoal: %v\n", err)
		os.Exit(1)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "shoal"
	app.Usage = "fish flocking steering simulation"
	app.Version = version

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Value: "", Usage: "TOML file with tunables; defaults when unset"},
		cli.Uint64Flag{Name: "seed", Usage: "Random seed; 0 picks one from the clock"},
		cli.IntFlag{Name: "workers", Usage: "Steering workers; 0 uses GOMAXPROCS"},
		cli.StringFlag{Name: "index", Value: "", Usage: "Spatial index: grid or rtree; anything else means grid"},
		cli.StringSliceFlag{Name: "obstacle", Usage: "Static obstacle as x,y,radius; repeatable"},
		cli.BoolFlag{Name: "debug", Usage: "Write debug logs to " + logPath()},
	}

	app.Commands = []cli.Command{
		{
			Name:    "view",
			Aliases: []string{"v"},
			Usage:   "Watch the flock in the terminal",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "mute", Usage: "Start with the speed hum off"},
				cli.BoolFlag{Name: "no-audio", Usage: "Never open the audio device"},
			},
			Action: viewAction,
		},
		{
			Name:    "run",
			Aliases: []string{"r"},
			Usage:   "Simulate a fixed number of ticks without a display",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "ticks, n", Value: 1000, Usage: "Ticks to simulate"},
				cli.BoolFlag{Name: "quiet, q", Usage: "Hide the progress bar"},
				cli.StringFlag{Name: "dump", Value: "", Usage: "Write the final tunables as TOML to this file"},
			},
			Action: runAction,
		},
		{
			Name:    "serve",
			Aliases: []string{"s"},
			Usage:   "Simulate in real time behind a WebSocket tuning endpoint",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "addr", Value: "127.0.0.1:8080", Usage: "Listen address"},
				cli.BoolFlag{Name: "access-log", Usage: "Log HTTP requests to stderr"},
			},
			Action: serveAction,
		},
	}

	// Default to the viewer like the game binary does
	app.Action = viewAction
	return app
}

// recoverTerminal restores the terminal before a panic reaches the user
func recoverTerminal(fini func()) {
	if r := recover(); r != nil {
		if fini != nil {
			fini()
		}
		fmt.Fprintf(os.Stderr, "\n\033[31mshoal crashed: %v\033[0m\n", r)
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		os.Exit(1)
	}
}
