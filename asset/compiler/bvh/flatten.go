package bvh

import (
	"fmt"

	"github.com/achilleasa/bvhaccel/asset/scene"
)

// Flatten a BVH tree into a list of GPU nodes suitable for stackless
// traversal. Nodes are emitted in pre-order so that each node ends up at
// the list position matching its index. Each emitted node is tagged with
// meshIndex so that trees from multiple meshes can share a buffer.
//
// root must be the node returned by Construct; passing any other node panics
// with an error wrapping ErrNotTreeRoot. Flatten does not modify the tree and
// always produces the same output for the same tree.
func Flatten(root *Node, meshIndex int32) []scene.BvhNode {
	if root != nil && root.parent != nil {
		panic(fmt.Errorf("%w: node %d has a parent", ErrNotTreeRoot, root.index))
	}

	out := make([]scene.BvhNode, 0)
	Walk(root, -1, func(node *Node) {
		if int(node.index) != len(out) {
			panic(fmt.Errorf("%w: node %d visited at position %d", ErrUnreachable, node.index, len(out)))
		}

		rec := scene.BvhNode{
			HitIndex:      node.HitIndex(),
			MissIndex:     node.MissIndex(),
			MeshIndex:     meshIndex,
			TriangleIndex: node.triIndex,
		}
		rec.SetBBox(node.bbox)
		if node.IsLeaf() {
			rec.Leaf = 1
		}
		out = append(out, rec)
	})

	return out
}
