package bvh

import "errors"

// Errors raised by the BVH builder. The builder treats them as fatal and
// panics with a value wrapping one of them.
var (
	ErrMalformedIndices = errors.New("bvh builder: triangle index count is not a multiple of 3")
	ErrIndexOutOfRange  = errors.New("bvh builder: vertex index out of range")
	ErrMaxDepthExceeded = errors.New("bvh builder: max tree depth exceeded")
	ErrUnreachable      = errors.New("bvh builder: reached unreachable state")
	ErrInvalidOptions   = errors.New("bvh builder: invalid options")
	ErrNotTreeRoot      = errors.New("bvh builder: node is not a tree root")
)
