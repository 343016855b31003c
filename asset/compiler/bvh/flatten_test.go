package bvh

import (
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/achilleasa/bvhaccel/asset/scene"
	"github.com/achilleasa/bvhaccel/types"
)

func TestFlattenEmptyTree(t *testing.T) {
	nodes := Flatten(nil, 0)
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes; got %d", len(nodes))
	}
}

func TestFlattenSingleTriangle(t *testing.T) {
	indices, positions := triangleSoup([][3]types.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	})
	nodes := Flatten(Construct(indices, positions), 7)

	if len(nodes) != 1 {
		t.Fatalf("expected 1 node; got %d", len(nodes))
	}
	n := nodes[0]
	if n.HitIndex != -1 || n.MissIndex != -1 {
		t.Fatalf("expected hit and miss index to be -1; got %d, %d", n.HitIndex, n.MissIndex)
	}
	if !n.IsLeaf() || n.TriangleIndex != 0 || n.MeshIndex != 7 {
		t.Fatalf("unexpected leaf record %+v", n)
	}
}

func TestFlattenTwoTriangles(t *testing.T) {
	indices, positions := triangleSoup([][3]types.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		{{4, 0, 0}, {5, 0, 0}, {4, 1, 0}},
	})
	nodes := Flatten(Construct(indices, positions), 0)

	type spec struct {
		hit, miss int32
		leaf      bool
		tri       int32
	}
	specs := []spec{
		{1, -1, false, -1},
		{2, 2, true, 0},
		{-1, -1, true, 1},
	}
	if len(nodes) != len(specs) {
		t.Fatalf("expected %d nodes; got %d", len(specs), len(nodes))
	}
	for index, s := range specs {
		n := nodes[index]
		if n.HitIndex != s.hit || n.MissIndex != s.miss {
			t.Fatalf("[node %d] expected hit/miss to be %d/%d; got %d/%d", index, s.hit, s.miss, n.HitIndex, n.MissIndex)
		}
		if n.IsLeaf() != s.leaf {
			t.Fatalf("[node %d] expected leaf flag to be %t", index, s.leaf)
		}
		if n.TriangleIndex != s.tri {
			t.Fatalf("[node %d] expected triangle index %d; got %d", index, s.tri, n.TriangleIndex)
		}
	}
}

func TestFlattenMatchesTree(t *testing.T) {
	indices, positions := randomSoup(5, 250)
	root := Construct(indices, positions)
	nodes := Flatten(root, 3)

	count := 0
	Walk(root, -1, func(node *Node) {
		count++
		n := nodes[node.Index()]
		if n.BBox() != node.AABB() {
			t.Fatalf("[node %d] expected record bbox %v; got %v", node.Index(), node.AABB(), n.BBox())
		}
		if n.IsLeaf() != node.IsLeaf() {
			t.Fatalf("[node %d] leaf flag mismatch", node.Index())
		}
		if n.TriangleIndex != node.TriangleIndex() {
			t.Fatalf("[node %d] expected triangle index %d; got %d", node.Index(), node.TriangleIndex(), n.TriangleIndex)
		}
		if n.HitIndex != node.HitIndex() || n.MissIndex != node.MissIndex() {
			t.Fatalf("[node %d] jump target mismatch", node.Index())
		}
		if n.MeshIndex != 3 {
			t.Fatalf("[node %d] expected mesh index 3; got %d", node.Index(), n.MeshIndex)
		}
		if !node.IsLeaf() && n.HitIndex != node.Index()+1 {
			t.Fatalf("[node %d] expected interior hit index to point to the next node; got %d", node.Index(), n.HitIndex)
		}
	})

	if count != len(nodes) {
		t.Fatalf("expected %d records; got %d", count, len(nodes))
	}
}

func TestFlattenIsDeterministic(t *testing.T) {
	indices, positions := randomSoup(9, 300)
	root := Construct(indices, positions)
	exp := Flatten(root, 1)

	var wg sync.WaitGroup
	results := make([][]scene.BvhNode, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Flatten(root, 1)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(exp, got) {
			t.Fatalf("[run %d] expected flatten output to be identical", i)
		}
	}
}

func TestTraversalTerminates(t *testing.T) {
	for _, triCount := range []int{1, 2, 3, 12, 100, 333} {
		indices, positions := randomSoup(int64(triCount), triCount)
		nodes := Flatten(Construct(indices, positions), 0)
		nodeCount := int32(len(nodes))

		// Every jump moves strictly forward or terminates; this rules
		// out cycles for any sequence of hit/miss outcomes.
		for index, n := range nodes {
			for _, target := range []int32{n.HitIndex, n.MissIndex} {
				if target != -1 && (target <= int32(index) || target >= nodeCount) {
					t.Fatalf("[%d tris, node %d] invalid jump target %d", triCount, index, target)
				}
			}
		}

		// Always taking the hit branch visits every node in order
		visited := int32(0)
		for cur := int32(0); cur != -1; cur = nodes[cur].HitIndex {
			if cur != visited {
				t.Fatalf("[%d tris] expected to visit node %d; got %d", triCount, visited, cur)
			}
			visited++
		}
		if visited != nodeCount {
			t.Fatalf("[%d tris] expected hit-only traversal to visit %d nodes; got %d", triCount, nodeCount, visited)
		}

		// Random outcomes always terminate within nodeCount steps
		rng := rand.New(rand.NewSource(int64(triCount)))
		for run := 0; run < 200; run++ {
			steps := int32(0)
			for cur := int32(0); cur != -1; steps++ {
				if steps > nodeCount {
					t.Fatalf("[%d tris] traversal did not terminate within %d steps", triCount, nodeCount)
				}
				if rng.Intn(2) == 0 {
					cur = nodes[cur].HitIndex
				} else {
					cur = nodes[cur].MissIndex
				}
			}
		}
	}
}

func TestMissSkipsSubtree(t *testing.T) {
	indices, positions := randomSoup(21, 64)
	root := Construct(indices, positions)

	// Missing an interior node must skip exactly its subtree
	Walk(root, -1, func(node *Node) {
		subtreeSize := int32(0)
		Walk(node, -1, func(*Node) { subtreeSize++ })

		miss := node.MissIndex()
		if miss == -1 {
			return
		}
		if exp := node.Index() + subtreeSize; miss != exp {
			t.Fatalf("[node %d] expected miss index %d; got %d", node.Index(), exp, miss)
		}
	})
}

func TestWalkDepthLimit(t *testing.T) {
	indices, positions := cubeMesh()
	root := Construct(indices, positions)

	visited := 0
	Walk(root, 1, func(node *Node) {
		if node.Depth() > 1 {
			t.Fatalf("expected to visit nodes up to depth 1; got node at depth %d", node.Depth())
		}
		visited++
	})
	if visited != 3 {
		t.Fatalf("expected to visit 3 nodes; got %d", visited)
	}
}

func TestFlattenRejectsSubtree(t *testing.T) {
	indices, positions := cubeMesh()
	root := Construct(indices, positions)

	expectPanic(t, ErrNotTreeRoot, func() {
		Flatten(root.Right(), 0)
	})
	expectPanic(t, ErrNotTreeRoot, func() {
		Flatten(root.Left(), 0)
	})
}
