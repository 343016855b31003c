package bvh

import "github.com/achilleasa/bvhaccel/types"

// A node of a BVH tree built over the triangles of a mesh. Interior nodes
// have exactly two children; leaves reference a single triangle. Node
// indices follow the pre-order visiting order of the tree.
//
// Nodes are never modified after the builder returns, so a tree can be
// shared between goroutines without locking.
type Node struct {
	bbox     types.AABB
	index    int32
	depth    int
	triIndex int32

	left  *Node
	right *Node

	// Back-reference to the parent node; nil for the root.
	parent *Node
}

// Get the node bounding box.
func (n *Node) AABB() types.AABB {
	return n.bbox
}

// Get the pre-order index of the node.
func (n *Node) Index() int32 {
	return n.index
}

// Get the node depth. The root has a depth of 0.
func (n *Node) Depth() int {
	return n.depth
}

// Check if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

// Get the index of the triangle referenced by a leaf or -1 for interior nodes.
func (n *Node) TriangleIndex() int32 {
	return n.triIndex
}

// Get the left child or nil if this is a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Get the right child or nil if this is a leaf.
func (n *Node) Right() *Node {
	return n.right
}

// Get the parent node or nil if this is the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Get the index of the node to visit when a ray misses this node's box.
// This is the right child of the closest ancestor whose right subtree has
// not been visited yet in pre-order or -1 if the traversal is complete.
func (n *Node) MissIndex() int32 {
	for ancestor := n.parent; ancestor != nil; ancestor = ancestor.parent {
		if ancestor.right != nil && ancestor.right.index > n.index {
			return ancestor.right.index
		}
	}
	return -1
}

// Get the index of the node to visit when a ray hits this node's box.
// Interior nodes descend into their left child while leaves continue
// with their miss target.
func (n *Node) HitIndex() int32 {
	if n.left != nil {
		return n.left.index
	}
	return n.MissIndex()
}

// Visit the nodes of a tree in pre-order, skipping nodes deeper than
// maxDepth. A negative maxDepth visits the entire tree.
func Walk(root *Node, maxDepth int, fn func(*Node)) {
	if root == nil {
		return
	}

	stack := []*Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if maxDepth >= 0 && node.depth > maxDepth {
			continue
		}

		fn(node)

		if node.right != nil {
			stack = append(stack, node.right)
		}
		if node.left != nil {
			stack = append(stack, node.left)
		}
	}
}
