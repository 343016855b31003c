package scene

import "errors"

var (
	ErrShortBuffer = errors.New("scene: buffer too short for a bvh node")
)
