package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/achilleasa/scenecache/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "scenecache"
	app.Usage = "compile a scene graph into its device-resident cached representation"
	app.Version = "0.0.1"
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
			Name:        "compile",
			Usage:       "compile a demo scene and print its buffer breakdown",
			Description: `Build a small in-memory demo scene, run it through the scene compiler twice, and print the resulting compiled scene's Stats() table.`,
			Action:      cmd.CompileScene,
		},
		{
			Name:   "list-devices",
			Usage:  "list available opencl platforms and devices",
			Action: cmd.ListDevices,
		},
	}

	app.Run(os.Args)
}
