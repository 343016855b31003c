package compiler

import (
	"fmt"
	"time"

	"github.com/achilleasa/bvhaccel/asset/compiler/bvh"
	"github.com/achilleasa/bvhaccel/asset/mesh"
	"github.com/achilleasa/bvhaccel/asset/scene"
	"github.com/achilleasa/bvhaccel/log"
)

type sceneCompiler struct {
	meshes         []*mesh.Mesh
	optimizedScene *scene.Scene
	logger         log.Logger
}

// Compile a list of meshes into a GPU-friendly scene. The BVH tree of each
// mesh is flattened and appended to a global node list; the mesh index
// inside the supplied list becomes the mesh id of the emitted nodes.
func Compile(meshes []*mesh.Mesh) (*scene.Scene, error) {
	if len(meshes) == 0 {
		return nil, ErrNoMeshes
	}

	compiler := &sceneCompiler{
		meshes: meshes,
		optimizedScene: &scene.Scene{
			BvhNodeList:      make([]scene.BvhNode, 0),
			MeshInstanceList: make([]scene.MeshInstance, 0, len(meshes)),
			MeshNames:        make([]string, 0, len(meshes)),
		},
		logger: log.New("scene compiler"),
	}

	start := time.Now()
	compiler.logger.Noticef("compiling scene")

	err := compiler.partitionGeometry()
	if err != nil {
		return nil, err
	}

	compiler.logger.Noticef("compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return compiler.optimizedScene, nil
}

// Flatten the BVH of each mesh and append its nodes to the scene node list.
// Node jump targets are shifted so they point inside the global list.
func (sc *sceneCompiler) partitionGeometry() error {
	for mIndex, m := range sc.meshes {
		if m == nil {
			return fmt.Errorf("%w: mesh %d", ErrNilMesh, mIndex)
		}

		sc.logger.Infof(`flattening BVH tree for "%s" (%d triangles)`, m.Name, m.TriangleCount())

		bvhNodes := bvh.Flatten(m.Bvh(), int32(mIndex))
		offset := int32(len(sc.optimizedScene.BvhNodeList))
		for index := range bvhNodes {
			bvhNodes[index].OffsetJumpTargets(offset)
		}

		root := offset
		if len(bvhNodes) == 0 {
			sc.logger.Warningf(`mesh "%s" contains no triangles`, m.Name)
			root = -1
		}

		sc.optimizedScene.BvhNodeList = append(sc.optimizedScene.BvhNodeList, bvhNodes...)
		sc.optimizedScene.MeshInstanceList = append(sc.optimizedScene.MeshInstanceList, scene.MeshInstance{
			MeshIndex:     int32(mIndex),
			BvhRoot:       root,
			NodeCount:     uint32(len(bvhNodes)),
			TriangleCount: uint32(m.TriangleCount()),
		})
		sc.optimizedScene.MeshNames = append(sc.optimizedScene.MeshNames, m.Name)
	}

	return nil
}
