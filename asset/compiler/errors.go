package compiler

import "errors"

var (
	ErrNoMeshes = errors.New("scene compiler: no meshes to compile")
	ErrNilMesh  = errors.New("scene compiler: nil mesh")
)
