package cmd

import (
	"github.com/achilleasa/bvhaccel/asset/compiler"
	"github.com/urfave/cli"
)

// Build BVH trees for the requested meshes and display build and scene stats.
func BuildScene(ctx *cli.Context) error {
	setupLogging(ctx)

	meshes, err := meshesFromFlags(ctx)
	if err != nil {
		return err
	}

	for _, m := range meshes {
		_, stats := m.BvhWithStats()
		logger.Noticef("BVH statistics for %q:\n%s", m.Name, stats)
	}

	sc, err := compiler.Compile(meshes)
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}
