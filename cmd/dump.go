package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/bvhaccel/asset/compiler"
	"github.com/achilleasa/bvhaccel/asset/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display the flattened nodes that would be uploaded to the GPU.
func DumpNodes(ctx *cli.Context) error {
	setupLogging(ctx)

	meshes, err := meshesFromFlags(ctx)
	if err != nil {
		return err
	}

	sc, err := compiler.Compile(meshes)
	if err != nil {
		return err
	}

	nodes := sc.BvhNodeList
	if limit := ctx.Int("limit"); limit > 0 && limit < len(nodes) {
		nodes = nodes[:limit]
	}

	logger.Noticef("flattened nodes (%d of %d):\n%s", len(nodes), len(sc.BvhNodeList), fmtNodeTable(nodes))
	return nil
}

func fmtNodeTable(nodes []scene.BvhNode) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Mesh", "Min", "Max", "Hit", "Miss", "Leaf", "Triangle"})
	for index, n := range nodes {
		table.Append([]string{
			fmt.Sprintf("%d", index),
			fmt.Sprintf("%d", n.MeshIndex),
			fmtVec3(n.Min),
			fmtVec3(n.Max),
			fmt.Sprintf("%d", n.HitIndex),
			fmt.Sprintf("%d", n.MissIndex),
			fmt.Sprintf("%t", n.IsLeaf()),
			fmt.Sprintf("%d", n.TriangleIndex),
		})
	}
	table.Render()
	return buf.String()
}
