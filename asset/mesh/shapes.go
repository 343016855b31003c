package mesh

import (
	"math"

	"github.com/achilleasa/bvhaccel/types"
)

// Create an axis-aligned cube with 2 triangles per face.
func Cube(name string, center types.Vec3, size float32) *Mesh {
	h := size * 0.5
	positions := make([]types.Vec3, 8)
	for i := 0; i < 8; i++ {
		offset := types.Vec3{-h, -h, -h}
		if i&1 != 0 {
			offset[0] = h
		}
		if i&2 != 0 {
			offset[1] = h
		}
		if i&4 != 0 {
			offset[2] = h
		}
		positions[i] = center.Add(offset)
	}

	// Corner quads for each face
	faces := [6][4]uint32{
		{0, 2, 6, 4}, // -x
		{1, 5, 7, 3}, // +x
		{0, 4, 5, 1}, // -y
		{2, 3, 7, 6}, // +y
		{0, 1, 3, 2}, // -z
		{4, 6, 7, 5}, // +z
	}
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		indices = append(indices, f[0], f[1], f[2], f[0], f[2], f[3])
	}

	return New(name, indices, positions)
}

// Create a flat grid of cols x rows quads on the XZ plane at height y.
// Each quad is split into 2 triangles.
func Plane(name string, cols, rows int, cellSize, y float32) *Mesh {
	positions := make([]types.Vec3, 0, (cols+1)*(rows+1))
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			positions = append(positions, types.XYZ(float32(c)*cellSize, y, float32(r)*cellSize))
		}
	}

	stride := uint32(cols + 1)
	indices := make([]uint32, 0, 6*cols*rows)
	for r := uint32(0); r < uint32(rows); r++ {
		for c := uint32(0); c < uint32(cols); c++ {
			i0 := r*stride + c
			i1 := i0 + 1
			i2 := i0 + stride
			i3 := i2 + 1
			indices = append(indices, i0, i2, i1, i1, i2, i3)
		}
	}

	return New(name, indices, positions)
}

// Create a UV sphere with the given number of latitude rings and longitude
// segments. Pole caps are built from triangle fans.
func Sphere(name string, center types.Vec3, radius float32, rings, segments int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	positions := make([]types.Vec3, 0, 2+(rings-1)*segments)
	positions = append(positions, center.Add(types.Vec3{0, radius, 0}))
	for r := 1; r < rings; r++ {
		theta := math.Pi * float64(r) / float64(rings)
		for s := 0; s < segments; s++ {
			phi := 2 * math.Pi * float64(s) / float64(segments)
			positions = append(positions, center.Add(types.Vec3{
				radius * float32(math.Sin(theta)*math.Cos(phi)),
				radius * float32(math.Cos(theta)),
				radius * float32(math.Sin(theta)*math.Sin(phi)),
			}))
		}
	}
	positions = append(positions, center.Add(types.Vec3{0, -radius, 0}))

	ring := func(r, s int) uint32 {
		return uint32(1 + r*segments + s%segments)
	}
	bottom := uint32(len(positions) - 1)

	indices := make([]uint32, 0, 6*rings*segments)
	for s := 0; s < segments; s++ {
		indices = append(indices, 0, ring(0, s+1), ring(0, s))
	}
	for r := 0; r < rings-2; r++ {
		for s := 0; s < segments; s++ {
			indices = append(indices,
				ring(r, s), ring(r, s+1), ring(r+1, s),
				ring(r, s+1), ring(r+1, s+1), ring(r+1, s),
			)
		}
	}
	for s := 0; s < segments; s++ {
		indices = append(indices, ring(rings-2, s), ring(rings-2, s+1), bottom)
	}

	return New(name, indices, positions)
}
