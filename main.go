package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/bvhaccel/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "bvhaccel"
	app.Usage = "build stackless BVH trees for triangle meshes"
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
			Name:  "build",
			Usage: "build BVH trees for a set of procedural meshes",
			Description: `
Partition each mesh into a BVH tree, flatten the trees into hit/miss linked
node lists and concatenate them into a single GPU-ready buffer.

Build and buffer statistics are displayed once all meshes are processed.`,
			Flags:  cmd.BuildFlags(),
			Action: cmd.BuildScene,
		},
		{
			Name:  "dump",
			Usage: "display the flattened BVH nodes",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "limit, n",
					Value: 64,
					Usage: "max number of nodes to display; 0 displays all nodes",
				},
			}, cmd.BuildFlags()...),
			Action: cmd.DumpNodes,
		},
		{
			Name:  "debug",
			Usage: "display the BVH node boxes up to a given depth",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "depth, d",
					Value: 3,
					Usage: "max depth to display; -1 displays the entire tree",
				},
			}, cmd.BuildFlags()...),
			Action: cmd.ShowTree,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
