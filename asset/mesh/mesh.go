package mesh

import (
	"sync"

	"github.com/achilleasa/bvhaccel/asset/compiler/bvh"
	"github.com/achilleasa/bvhaccel/types"
)

// A triangle mesh. The index and position slices are borrowed from the
// caller and must not be modified while the mesh is in use.
type Mesh struct {
	Name string

	// Triangle list; each group of 3 indices references Positions.
	Indices   []uint32
	Positions []types.Vec3

	mu sync.Mutex

	// Lazily built BVH tree. The tree may be nil for meshes without triangles
	// so treeBuilt tracks whether the cached value is valid.
	tree      *bvh.Node
	treeBuilt bool
	opts      bvh.Options

	bbox            types.AABB
	bboxNeedsUpdate bool
}

// Create a new mesh.
func New(name string, indices []uint32, positions []types.Vec3) *Mesh {
	return &Mesh{
		Name:            name,
		Indices:         indices,
		Positions:       positions,
		opts:            bvh.DefaultOptions(),
		bboxNeedsUpdate: true,
	}
}

// Get the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Set the options used for building the mesh BVH. Any cached tree is
// discarded.
func (m *Mesh) SetBvhOptions(opts bvh.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.opts = opts
	m.tree, m.treeBuilt = nil, false
	m.mu.Unlock()
	return nil
}

// Get the mesh BVH, building it on first use. The returned tree is
// immutable and may be shared between goroutines.
func (m *Mesh) Bvh() *bvh.Node {
	tree, _ := m.BvhWithStats()
	return tree
}

// Get the mesh BVH together with the stats of the build that produced it.
// Stats are empty if the tree was already cached.
func (m *Mesh) BvhWithStats() (*bvh.Node, bvh.BuildStats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.treeBuilt {
		return m.tree, bvh.BuildStats{}
	}

	builder, err := bvh.NewBuilder(m.opts)
	if err != nil {
		panic(err)
	}
	m.tree = builder.Construct(m.Indices, m.Positions)
	m.treeBuilt = true
	return m.tree, builder.Stats()
}

// Drop the cached BVH and bounding box. They will be rebuilt on next access.
func (m *Mesh) Invalidate() {
	m.mu.Lock()
	m.tree, m.treeBuilt = nil, false
	m.bboxNeedsUpdate = true
	m.mu.Unlock()
}

// Get mesh bounding box.
func (m *Mesh) BBox() types.AABB {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.bboxNeedsUpdate {
		m.bbox = types.EmptyAABB()
		for _, index := range m.Indices {
			m.bbox = m.bbox.Grow(m.Positions[index])
		}
		m.bboxNeedsUpdate = false
	}

	return m.bbox
}
