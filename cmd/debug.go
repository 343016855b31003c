package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/achilleasa/bvhaccel/asset/compiler/bvh"
	"github.com/achilleasa/bvhaccel/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display the bounding boxes of each mesh BVH up to a max depth.
func ShowTree(ctx *cli.Context) error {
	setupLogging(ctx)

	meshes, err := meshesFromFlags(ctx)
	if err != nil {
		return err
	}

	maxDepth := ctx.Int("depth")
	for _, m := range meshes {
		var buf bytes.Buffer
		table := tablewriter.NewWriter(&buf)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader([]string{"Node", "Depth", "Min", "Max", "Area"})

		bvh.Walk(m.Bvh(), maxDepth, func(node *bvh.Node) {
			label := fmt.Sprintf("%s%d", strings.Repeat("  ", node.Depth()), node.Index())
			if node.IsLeaf() {
				label += fmt.Sprintf(" (tri %d)", node.TriangleIndex())
			}
			bbox := node.AABB()
			table.Append([]string{
				label,
				fmt.Sprintf("%d", node.Depth()),
				fmtVec3(bbox.Min),
				fmtVec3(bbox.Max),
				fmt.Sprintf("%.3f", bbox.SurfaceArea()),
			})
		})

		table.Render()
		logger.Noticef("BVH tree for %q:\n%s", m.Name, buf.String())
	}

	return nil
}

func fmtVec3(v types.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
