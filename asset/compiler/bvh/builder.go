package bvh

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/achilleasa/bvhaccel/log"
	"github.com/achilleasa/bvhaccel/types"
)

// A SAH bucket accumulates the triangles whose centroids fall inside it.
type bucket struct {
	count int
	bbox  types.AABB
}

// A Builder partitions triangle meshes into BVH trees. A builder keeps
// per-build state and must not be shared between goroutines.
type Builder struct {
	logger log.Logger
	opts   Options

	// Per-triangle bounds for the mesh being partitioned.
	bounds []triangleBounds

	// The index assigned to the next created node.
	nextIndex int32

	// Stats for the last build.
	stats BuildStats
}

// Create a new builder with the supplied options.
func NewBuilder(opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Builder{
		logger: log.New("bvh builder"),
		opts:   opts,
	}, nil
}

// Build a BVH for a triangle list using the default builder options.
func Construct(indices []uint32, positions []types.Vec3) *Node {
	b, err := NewBuilder(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return b.Construct(indices, positions)
}

// Get the stats for the last build.
func (b *Builder) Stats() BuildStats {
	return b.stats
}

// Construct a BVH for the triangle list defined by indices. Each group of
// three indices refers to the vertices of a triangle inside positions.
// The builder only reads from the supplied slices.
//
// Construct returns nil if the index list is empty. Malformed input and
// trees exceeding the configured max depth are unrecoverable; in that
// case Construct panics with an error wrapping one of the package errors.
func (b *Builder) Construct(indices []uint32, positions []types.Vec3) *Node {
	b.stats = BuildStats{}
	b.nextIndex = 0

	bounds, err := computeTriangleBounds(indices, positions)
	if err != nil {
		b.fatal(err)
	}
	if len(bounds) == 0 {
		return nil
	}

	start := time.Now()
	b.bounds = bounds
	b.stats.Triangles = len(bounds)
	defer func() { b.bounds = nil }()

	workList := make([]int32, len(bounds))
	for index := range workList {
		workList[index] = int32(index)
	}

	root := b.partition(nil, workList)

	b.stats.BuildTime = time.Since(start)
	b.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d, sah splits: %d, median splits: %d",
		b.stats.BuildTime.Nanoseconds()/1e6,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leaves, b.stats.SAHSplits, b.stats.MedianSplits,
	)
	return root
}

// Create a node for the triangles in workList and recursively partition
// them into child nodes.
func (b *Builder) partition(parent *Node, workList []int32) *Node {
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}
	if depth > b.opts.MaxDepth {
		b.fatal(fmt.Errorf("%w: reached depth %d with %d triangles (limit %d)", ErrMaxDepthExceeded, depth, len(workList), b.opts.MaxDepth))
	}
	if len(workList) == 0 {
		b.fatal(fmt.Errorf("%w: empty work list at depth %d", ErrUnreachable, depth))
	}
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	// The index must be assigned before visiting the children so that
	// indices follow the pre-order of the tree.
	node := &Node{
		bbox:     types.EmptyAABB(),
		index:    b.nextIndex,
		depth:    depth,
		triIndex: -1,
		parent:   parent,
	}
	b.nextIndex++
	b.stats.Nodes++

	for _, triIndex := range workList {
		node.bbox = node.bbox.Union(b.bounds[triIndex].bbox)
	}

	if len(workList) == 1 {
		node.triIndex = workList[0]
		b.stats.Leaves++
		return node
	}

	var leftWorkList, rightWorkList []int32
	if len(workList) <= b.opts.MedianSplitThreshold || node.bbox.SurfaceArea() == 0 {
		leftWorkList, rightWorkList = b.medianSplit(node.bbox, workList)
	} else {
		leftWorkList, rightWorkList = b.sahSplit(node.bbox, workList)
		if b.opts.GuardEmptySplits && (len(leftWorkList) == 0 || len(rightWorkList) == 0) {
			b.stats.SAHSplits--
			b.stats.DegenerateFallbacks++
			leftWorkList, rightWorkList = b.medianSplit(node.bbox, workList)
		}
	}

	node.left = b.partition(node, leftWorkList)
	node.right = b.partition(node, rightWorkList)
	return node
}

// Sort the work list by the triangle centroids along the largest axis of
// bbox and split it in half.
func (b *Builder) medianSplit(bbox types.AABB, workList []int32) (left, right []int32) {
	b.stats.MedianSplits++

	axis := bbox.MaxExtentAxis()
	sort.SliceStable(workList, func(i, j int) bool {
		return b.bounds[workList[i]].centroid[axis] < b.bounds[workList[j]].centroid[axis]
	})

	mid := len(workList) / 2
	return workList[:mid], workList[mid:]
}

// Split the work list using a binned surface area heuristic along the
// dominant axis of the triangle centroid bounds.
func (b *Builder) sahSplit(bbox types.AABB, workList []int32) (left, right []int32) {
	b.stats.SAHSplits++

	centroidBox := types.EmptyAABB()
	for _, triIndex := range workList {
		centroidBox = centroidBox.Grow(b.bounds[triIndex].centroid)
	}
	axis := centroidBox.MaxExtentAxis()
	axisMin := centroidBox.Min[axis]
	axisLen := centroidBox.Max[axis] - axisMin

	buckets := make([]bucket, b.opts.BucketCount)
	for index := range buckets {
		buckets[index].bbox = types.EmptyAABB()
	}
	for _, triIndex := range workList {
		tb := &b.bounds[triIndex]
		slot := b.bucketSlot(tb.centroid[axis], axisMin, axisLen)
		buckets[slot].count++
		buckets[slot].bbox = buckets[slot].bbox.Union(tb.bbox)
	}

	splitIndex, _ := b.bestSplit(buckets, bbox.SurfaceArea())

	left = make([]int32, 0, len(workList))
	right = make([]int32, 0, len(workList))
	for _, triIndex := range workList {
		slot := b.bucketSlot(b.bounds[triIndex].centroid[axis], axisMin, axisLen)
		if slot <= splitIndex {
			left = append(left, triIndex)
		} else {
			right = append(right, triIndex)
		}
	}

	return left, right
}

// Find the bucket boundary with the lowest SAH cost. Candidate i splits
// buckets [0, i] from [i+1, n). When multiple candidates share the lowest
// cost the first one wins.
func (b *Builder) bestSplit(buckets []bucket, parentArea float32) (splitIndex int, bestCost float32) {
	bestCost = math.MaxFloat32
	for index := 0; index < len(buckets)-1; index++ {
		cost := b.splitCost(buckets, index, parentArea)
		if cost < bestCost {
			bestCost = cost
			splitIndex = index
		}
	}
	return splitIndex, bestCost
}

// Map a centroid coordinate to a bucket index.
func (b *Builder) bucketSlot(value, axisMin, axisLen float32) int {
	// All centroids share the same coordinate
	if axisLen <= 0 {
		return 0
	}

	slot := int(math.Floor(float64((value - axisMin) * float32(b.opts.BucketCount) / axisLen)))
	if slot < 0 {
		return 0
	} else if slot >= b.opts.BucketCount {
		return b.opts.BucketCount - 1
	}
	return slot
}

// Calculate the SAH cost of splitting after bucket splitIndex:
//
// traversal cost + (left count * left area + right count * right area) / parent area
func (b *Builder) splitCost(buckets []bucket, splitIndex int, parentArea float32) float32 {
	leftBox, rightBox := types.EmptyAABB(), types.EmptyAABB()
	leftCount, rightCount := 0, 0
	for index, bk := range buckets {
		if bk.count == 0 {
			continue
		}
		if index <= splitIndex {
			leftCount += bk.count
			leftBox = leftBox.Union(bk.bbox)
		} else {
			rightCount += bk.count
			rightBox = rightBox.Union(bk.bbox)
		}
	}

	return b.opts.TraversalCost +
		(float32(leftCount)*leftBox.SurfaceArea()+float32(rightCount)*rightBox.SurfaceArea())/parentArea
}

// Log an unrecoverable build error and abort.
func (b *Builder) fatal(err error) {
	b.logger.Critical(err)
	panic(err)
}
