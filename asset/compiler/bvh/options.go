package bvh

import "fmt"

// Options control the BVH partitioner.
type Options struct {
	// The max node depth. Building a deeper tree aborts the build.
	MaxDepth int

	// Number of equal-width buckets used for evaluating SAH splits.
	BucketCount int

	// Work lists with at most this many triangles are split at the
	// centroid median instead of using SAH.
	MedianSplitThreshold int

	// The constant node traversal cost added to each SAH split score.
	TraversalCost float32

	// If set, a SAH split that leaves one side empty is replaced by a
	// median split. If unset, such splits are used as-is and the build
	// relies on MaxDepth to terminate.
	GuardEmptySplits bool
}

// Get the default builder options.
func DefaultOptions() Options {
	return Options{
		MaxDepth:             32,
		BucketCount:          12,
		MedianSplitThreshold: 4,
		TraversalCost:        0.125,
		GuardEmptySplits:     true,
	}
}

// Validate options.
func (o Options) Validate() error {
	switch {
	case o.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must be >= 0; got %d", ErrInvalidOptions, o.MaxDepth)
	case o.BucketCount < 2:
		return fmt.Errorf("%w: bucket count must be >= 2; got %d", ErrInvalidOptions, o.BucketCount)
	case o.MedianSplitThreshold < 1:
		return fmt.Errorf("%w: median split threshold must be >= 1; got %d", ErrInvalidOptions, o.MedianSplitThreshold)
	case o.TraversalCost < 0:
		return fmt.Errorf("%w: traversal cost must be >= 0; got %f", ErrInvalidOptions, o.TraversalCost)
	}
	return nil
}
