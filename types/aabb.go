package types

import "math"

// An axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Create an empty bounding box. Growing an empty box by any point or box
// yields that point or box.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Check if the box encloses no points.
func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Return the union of two boxes.
func (b AABB) Union(b2 AABB) AABB {
	return AABB{
		Min: MinVec3(b.Min, b2.Min),
		Max: MaxVec3(b.Max, b2.Max),
	}
}

// Return a box grown to include point p.
func (b AABB) Grow(p Vec3) AABB {
	return AABB{
		Min: MinVec3(b.Min, p),
		Max: MaxVec3(b.Max, p),
	}
}

// Get the box side lengths. Empty boxes have a zero extent.
func (b AABB) Extent() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Get the box surface area. Empty boxes and boxes that collapse to a line
// or a point report 0.
func (b AABB) SurfaceArea() float32 {
	side := b.Extent()
	return 2 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

// Get the box center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the axis with the largest extent. Ties resolve to the lower axis.
func (b AABB) MaxExtentAxis() Axis {
	side := b.Extent()
	axis := XAxis
	if side[1] > side[axis] {
		axis = YAxis
	}
	if side[2] > side[axis] {
		axis = ZAxis
	}
	return axis
}

// Check whether b2 lies entirely inside b.
func (b AABB) Contains(b2 AABB) bool {
	if b2.IsEmpty() {
		return true
	}
	for axis := 0; axis < 3; axis++ {
		if b2.Min[axis] < b.Min[axis] || b2.Max[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}
