package cmd

import (
	"fmt"
	"strings"

	"github.com/achilleasa/bvhaccel/asset/compiler/bvh"
	"github.com/achilleasa/bvhaccel/asset/mesh"
	"github.com/achilleasa/bvhaccel/types"
	"github.com/urfave/cli"
)

// Get the flags shared by all commands that build BVH trees. Each call
// returns a new flag list so that slice flag values are not shared.
func BuildFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringSliceFlag{
			Name:  "shape, s",
			Value: &cli.StringSlice{},
			Usage: "procedural mesh to partition (cube, plane, sphere); may be repeated",
		},
		cli.IntFlag{
			Name:  "resolution, r",
			Value: 16,
			Usage: "grid cells per side for planes; rings and segments for spheres",
		},
		cli.IntFlag{
			Name:  "max-depth",
			Value: bvh.DefaultOptions().MaxDepth,
			Usage: "abort the build if the tree grows deeper than this",
		},
		cli.IntFlag{
			Name:  "buckets",
			Value: bvh.DefaultOptions().BucketCount,
			Usage: "number of SAH buckets",
		},
		cli.IntFlag{
			Name:  "median-threshold",
			Value: bvh.DefaultOptions().MedianSplitThreshold,
			Usage: "split work lists with at most this many triangles at the centroid median",
		},
		cli.Float64Flag{
			Name:  "traversal-cost",
			Value: float64(bvh.DefaultOptions().TraversalCost),
			Usage: "constant node traversal cost used by SAH",
		},
		cli.BoolFlag{
			Name:  "no-guard",
			Usage: "do not replace SAH splits with an empty side by a median split",
		},
	}
}

// Map command flags to BVH builder options.
func bvhOptions(ctx *cli.Context) (bvh.Options, error) {
	opts := bvh.Options{
		MaxDepth:             ctx.Int("max-depth"),
		BucketCount:          ctx.Int("buckets"),
		MedianSplitThreshold: ctx.Int("median-threshold"),
		TraversalCost:        float32(ctx.Float64("traversal-cost")),
		GuardEmptySplits:     !ctx.Bool("no-guard"),
	}
	return opts, opts.Validate()
}

// Create the meshes requested via the shape flag. Each mesh is placed next
// to the previous one along the X axis.
func meshesFromFlags(ctx *cli.Context) ([]*mesh.Mesh, error) {
	opts, err := bvhOptions(ctx)
	if err != nil {
		return nil, err
	}

	shapes := ctx.StringSlice("shape")
	if len(shapes) == 0 {
		shapes = []string{"cube"}
	}
	res := ctx.Int("resolution")
	if res < 1 {
		return nil, fmt.Errorf("resolution must be >= 1; got %d", res)
	}

	meshes := make([]*mesh.Mesh, 0, len(shapes))
	for index, shape := range shapes {
		center := types.XYZ(float32(index)*3, 0, 0)
		name := fmt.Sprintf("%s-%d", shape, index)

		var m *mesh.Mesh
		switch strings.ToLower(shape) {
		case "cube":
			m = mesh.Cube(name, center, 2)
		case "plane":
			m = mesh.Plane(name, res, res, 2/float32(res), 0)
		case "sphere":
			m = mesh.Sphere(name, center, 1, res, 2*res)
		default:
			return nil, fmt.Errorf("unsupported shape %q", shape)
		}

		if err = m.SetBvhOptions(opts); err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}

	return meshes, nil
}
