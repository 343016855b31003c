package bvh

import (
	"fmt"

	"github.com/achilleasa/bvhaccel/types"
)

// Precomputed per-triangle data used while partitioning.
type triangleBounds struct {
	bbox     types.AABB
	centroid types.Vec3
}

// Calculate the AABB and centroid of each triangle in the index list.
func computeTriangleBounds(indices []uint32, positions []types.Vec3) ([]triangleBounds, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d indices", ErrMalformedIndices, len(indices))
	}

	out := make([]triangleBounds, len(indices)/3)
	for triIndex := range out {
		var v [3]types.Vec3
		for i := 0; i < 3; i++ {
			vIndex := indices[3*triIndex+i]
			if int(vIndex) >= len(positions) {
				return nil, fmt.Errorf("%w: triangle %d references vertex %d; vertex count is %d", ErrIndexOutOfRange, triIndex, vIndex, len(positions))
			}
			v[i] = positions[vIndex]
		}

		out[triIndex] = triangleBounds{
			bbox:     types.EmptyAABB().Grow(v[0]).Grow(v[1]).Grow(v[2]),
			centroid: v[0].Add(v[1]).Add(v[2]).Mul(1.0 / 3.0),
		}
	}

	return out, nil
}
