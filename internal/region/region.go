// Package region assembles per-region triangle sets: every ring of a named
// region is triangulated on its own and the results are concatenated in ring
// order. Rings are never triangulated jointly, so a region with an interior
// hole must be pre-split into non-overlapping rings by the caller.
package region

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/irfansharif/cartomesh/internal/geom"
	"github.com/irfansharif/cartomesh/internal/triangulate"
)

// Region is one named geographic unit made of one or more rings.
type Region struct {
	Name  string
	Rings []geom.Ring
}

// Vertices returns the total number of ring points in the region.
func (r Region) Vertices() int {
	n := 0
	for _, ring := range r.Rings {
		n += len(ring)
	}
	return n
}

// Assemble triangulates every ring of r by ear clipping.
func Assemble(r Region) ([]geom.Triangle, error) {
	return AssembleWith(r, triangulate.EarClip)
}

// AssembleWith triangulates every ring of r with fn and concatenates the
// results in ring order. Errors carry the region name and ring index and wrap
// the triangulator's typed error.
func AssembleWith(r Region, fn triangulate.Func) ([]geom.Triangle, error) {
	if len(r.Rings) == 0 {
		return nil, fmt.Errorf("region %q has no rings", r.Name)
	}
	var out []geom.Triangle
	for i, ring := range r.Rings {
		tris, err := fn(ring)
		if err != nil {
			return nil, fmt.Errorf("region %q ring %d (%d vertices): %w", r.Name, i, len(ring), err)
		}
		out = append(out, tris...)
	}
	return out, nil
}

// AssembleAll triangulates regions concurrently, at most workers at a time
// (workers <= 0 means no limit). Result i belongs to regions[i], so the output
// does not depend on scheduling. The first failure cancels the remaining work
// and is returned.
func AssembleAll(ctx context.Context, regions []Region, fn triangulate.Func, workers int) ([][]geom.Triangle, error) {
	results := make([][]geom.Triangle, len(regions))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range regions {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tris, err := AssembleWith(regions[i], fn)
			if err != nil {
				return err
			}
			results[i] = tris
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
