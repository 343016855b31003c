package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// The MeshInstance structure locates the flattened BVH of a mesh inside the
// global bvh node list.
type MeshInstance struct {
	MeshIndex int32

	// The index of the mesh BVH root in the global node list or -1 if the
	// mesh contains no geometry.
	BvhRoot int32

	// Number of bvh nodes emitted for this mesh.
	NodeCount uint32

	// Number of triangles partitioned by the mesh BVH.
	TriangleCount uint32
}

// A scene contains the flattened BVH trees of all meshes concatenated into
// a single list ready for uploading to the GPU.
type Scene struct {
	BvhNodeList      []BvhNode
	MeshInstanceList []MeshInstance

	// Mesh names in mesh index order; used for reporting.
	MeshNames []string
}

// Serialize the global bvh node list.
func (sc *Scene) Bytes() []byte {
	return MarshalBvhNodes(sc.BvhNodeList)
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Mesh", "Root", "Nodes", "Triangles", "Size"})
	for index, mi := range sc.MeshInstanceList {
		name := fmt.Sprintf("#%d", mi.MeshIndex)
		if index < len(sc.MeshNames) {
			name = sc.MeshNames[index]
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%d", mi.BvhRoot),
			fmt.Sprintf("%d", mi.NodeCount),
			fmt.Sprintf("%d", mi.TriangleCount),
			fmtBytes(float32(mi.NodeCount * SizeofBvhNode)),
		})
	}
	table.SetFooter([]string{"Total", " ", fmt.Sprintf("%d", len(sc.BvhNodeList)), " ", strings.TrimLeft(fmtSize(sc.BvhNodeList), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	return fmtBytes(totalBytes)
}

func fmtBytes(totalBytes float32) string {
	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
