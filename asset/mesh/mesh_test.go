package mesh

import (
	"errors"
	"sync"
	"testing"

	"github.com/achilleasa/bvhaccel/asset/compiler/bvh"
	"github.com/achilleasa/bvhaccel/types"
)

func TestShapes(t *testing.T) {
	type spec struct {
		mesh         *Mesh
		expTriangles int
		expBBox      types.AABB
	}
	specs := []spec{
		{Cube("cube", types.Vec3{1, 0, 0}, 2), 12, types.AABB{Min: types.Vec3{0, -1, -1}, Max: types.Vec3{2, 1, 1}}},
		{Plane("plane", 4, 3, 0.5, 1), 24, types.AABB{Min: types.Vec3{0, 1, 0}, Max: types.Vec3{2, 1, 1.5}}},
		{Sphere("sphere", types.Vec3{}, 1, 4, 8), 48, types.AABB{Min: types.Vec3{-1, -1, -1}, Max: types.Vec3{1, 1, 1}}},
	}

	for index, s := range specs {
		if got := s.mesh.TriangleCount(); got != s.expTriangles {
			t.Fatalf("[spec %d] expected %d triangles; got %d", index, s.expTriangles, got)
		}
		for _, vIndex := range s.mesh.Indices {
			if int(vIndex) >= len(s.mesh.Positions) {
				t.Fatalf("[spec %d] vertex index %d out of range", index, vIndex)
			}
		}
		bbox := s.mesh.BBox()
		for axis := 0; axis < 3; axis++ {
			if absDiff(bbox.Min[axis], s.expBBox.Min[axis]) > 1e-5 || absDiff(bbox.Max[axis], s.expBBox.Max[axis]) > 1e-5 {
				t.Fatalf("[spec %d] expected bbox %v; got %v", index, s.expBBox, bbox)
			}
		}
	}
}

func TestBvhIsCached(t *testing.T) {
	m := Cube("cube", types.Vec3{}, 2)

	tree, stats := m.BvhWithStats()
	if tree == nil {
		t.Fatal("expected a bvh tree")
	}
	if stats.Leaves != 12 {
		t.Fatalf("expected 12 leaves; got %d", stats.Leaves)
	}

	if m.Bvh() != tree {
		t.Fatal("expected the cached tree to be returned")
	}
	if _, stats = m.BvhWithStats(); stats.Nodes != 0 {
		t.Fatalf("expected empty stats for a cached tree; got %d nodes", stats.Nodes)
	}

	m.Invalidate()
	rebuilt := m.Bvh()
	if rebuilt == tree {
		t.Fatal("expected a new tree after invalidation")
	}
	if rebuilt.AABB() != tree.AABB() {
		t.Fatalf("expected rebuilt tree bbox %v; got %v", tree.AABB(), rebuilt.AABB())
	}
}

func TestBvhConcurrentAccess(t *testing.T) {
	m := Sphere("sphere", types.Vec3{}, 1, 8, 16)

	var wg sync.WaitGroup
	trees := make([]*bvh.Node, 16)
	for i := range trees {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			trees[i] = m.Bvh()
		}(i)
	}
	wg.Wait()

	for i, tree := range trees {
		if tree != trees[0] {
			t.Fatalf("[goroutine %d] expected all callers to share the same tree", i)
		}
	}
}

func TestEmptyMesh(t *testing.T) {
	m := New("empty", nil, nil)
	if m.Bvh() != nil {
		t.Fatal("expected nil tree for empty mesh")
	}
	if !m.BBox().IsEmpty() {
		t.Fatal("expected empty bbox for empty mesh")
	}
}

func TestSetBvhOptions(t *testing.T) {
	m := Cube("cube", types.Vec3{}, 2)
	tree := m.Bvh()

	opts := bvh.DefaultOptions()
	opts.BucketCount = 0
	if err := m.SetBvhOptions(opts); !errors.Is(err, bvh.ErrInvalidOptions) {
		t.Fatalf("expected to get ErrInvalidOptions; got %v", err)
	}
	if m.Bvh() != tree {
		t.Fatal("expected invalid options to leave the cached tree intact")
	}

	opts = bvh.DefaultOptions()
	opts.MedianSplitThreshold = 16
	if err := m.SetBvhOptions(opts); err != nil {
		t.Fatal(err)
	}
	_, stats := m.BvhWithStats()
	if stats.SAHSplits != 0 {
		t.Fatalf("expected median splits only; got %d SAH splits", stats.SAHSplits)
	}
}

func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}
