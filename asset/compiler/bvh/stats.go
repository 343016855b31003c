package bvh

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Statistics collected while building a BVH tree.
type BuildStats struct {
	Triangles int
	Nodes     int
	Leaves    int
	MaxDepth  int

	// Number of nodes split using SAH and at the centroid median. Every
	// interior node is counted exactly once.
	SAHSplits    int
	MedianSplits int

	// Number of SAH splits with an empty side that were replaced by a
	// median split. These are included in MedianSplits.
	DegenerateFallbacks int

	BuildTime time.Duration
}

// Render the stats as a table.
func (s BuildStats) String() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Stat", "Value"})
	table.Append([]string{"Triangles", fmt.Sprintf("%d", s.Triangles)})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", s.Nodes)})
	table.Append([]string{"Leaves", fmt.Sprintf("%d", s.Leaves)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"SAH splits", fmt.Sprintf("%d", s.SAHSplits)})
	table.Append([]string{"Median splits", fmt.Sprintf("%d", s.MedianSplits)})
	table.Append([]string{"Degenerate fallbacks", fmt.Sprintf("%d", s.DegenerateFallbacks)})
	table.SetFooter([]string{"Build time", s.BuildTime.String()})
	table.Render()
	return buf.String()
}
