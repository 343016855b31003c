package scene

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/achilleasa/bvhaccel/types"
)

// Size of a serialized BvhNode in bytes.
const SizeofBvhNode = 48

// A flattened BVH node as consumed by a stackless GPU traversal kernel.
// Nodes are stored in pre-order so that the position of a node inside the
// node list equals its build index. A traversal starts at the mesh root,
// tests the node box and jumps to HitIndex or MissIndex depending on the
// outcome. A jump target of -1 terminates the traversal.
//
// Layout (std430, 48 bytes):
//
//	offset  0: Min           vec3<f32>
//	offset 12: HitIndex      i32
//	offset 16: Max           vec3<f32>
//	offset 28: MissIndex     i32
//	offset 32: Leaf          u32
//	offset 36: MeshIndex     i32
//	offset 40: TriangleIndex i32
//	offset 44: padding       u32
type BvhNode struct {
	Min      types.Vec3
	HitIndex int32

	Max       types.Vec3
	MissIndex int32

	Leaf          uint32
	MeshIndex     int32
	TriangleIndex int32

	padding uint32
}

// Set bounding box.
func (n *BvhNode) SetBBox(bbox types.AABB) {
	n.Min = bbox.Min
	n.Max = bbox.Max
}

// Get bounding box.
func (n *BvhNode) BBox() types.AABB {
	return types.AABB{Min: n.Min, Max: n.Max}
}

// Check if this is a leaf node.
func (n *BvhNode) IsLeaf() bool {
	return n.Leaf != 0
}

// Add offset to the hit and miss jump targets. Terminal (-1) targets are
// left untouched.
func (n *BvhNode) OffsetJumpTargets(offset int32) {
	if n.HitIndex >= 0 {
		n.HitIndex += offset
	}
	if n.MissIndex >= 0 {
		n.MissIndex += offset
	}
}

// Size returns the in-memory size of the node in bytes.
func (n *BvhNode) Size() int {
	return int(unsafe.Sizeof(*n))
}

// Marshal serializes the node into a little-endian byte buffer suitable for
// GPU upload.
func (n *BvhNode) Marshal() []byte {
	buf := make([]byte, SizeofBvhNode)
	n.marshalTo(buf)
	return buf
}

func (n *BvhNode) marshalTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(n.Min[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(n.Min[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(n.Min[2]))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(n.HitIndex))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(n.Max[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(n.Max[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(n.Max[2]))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(n.MissIndex))
	binary.LittleEndian.PutUint32(buf[32:36], n.Leaf)
	binary.LittleEndian.PutUint32(buf[36:40], uint32(n.MeshIndex))
	binary.LittleEndian.PutUint32(buf[40:44], uint32(n.TriangleIndex))
	binary.LittleEndian.PutUint32(buf[44:48], 0)
}

// Serialize a node list into a contiguous buffer.
func MarshalBvhNodes(nodes []BvhNode) []byte {
	buf := make([]byte, len(nodes)*SizeofBvhNode)
	for index := range nodes {
		nodes[index].marshalTo(buf[index*SizeofBvhNode:])
	}
	return buf
}

// Decode a node previously encoded with Marshal.
func UnmarshalBvhNode(buf []byte) (BvhNode, error) {
	if len(buf) < SizeofBvhNode {
		return BvhNode{}, ErrShortBuffer
	}

	var n BvhNode
	for i := 0; i < 3; i++ {
		n.Min[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		n.Max[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[16+i*4:]))
	}
	n.HitIndex = int32(binary.LittleEndian.Uint32(buf[12:16]))
	n.MissIndex = int32(binary.LittleEndian.Uint32(buf[28:32]))
	n.Leaf = binary.LittleEndian.Uint32(buf[32:36])
	n.MeshIndex = int32(binary.LittleEndian.Uint32(buf[36:40]))
	n.TriangleIndex = int32(binary.LittleEndian.Uint32(buf[40:44]))
	return n, nil
}
