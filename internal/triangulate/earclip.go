// Package triangulate reduces simple polygon rings to triangles.
//
// EarClip is the classic O(n²)-per-ring ear-clipping algorithm: repeatedly
// find three consecutive vertices forming a triangle that winds the same way
// as the ring and contains no other remaining vertex, emit it and drop its
// middle vertex. Earcut delegates to github.com/rclancey/earcut instead and is
// kept as a cross-check for the hand-rolled clipper.
package triangulate

import (
	"fmt"

	"github.com/irfansharif/cartomesh/internal/geom"
)

// Func triangulates a single ring.
type Func func(geom.Ring) ([]geom.Triangle, error)

// TriangulationError reports that no ear could be found while more than three
// vertices remained, which only happens on self-intersecting or otherwise
// malformed input.
type TriangulationError struct {
	Vertices  int // size of the input ring
	Remaining int // vertices left when the scan came up empty
	Emitted   int // triangles emitted before giving up
}

func (e *TriangulationError) Error() string {
	return fmt.Sprintf("no ear found with %d of %d vertices remaining (%d triangles emitted); ring is likely self-intersecting",
		e.Remaining, e.Vertices, e.Emitted)
}

// ByName returns the triangulator registered under name.
func ByName(name string) (Func, error) {
	switch name {
	case "", "earclip":
		return EarClip, nil
	case "earcut":
		return Earcut, nil
	default:
		return nil, fmt.Errorf("unknown triangulator %q (want earclip or earcut)", name)
	}
}

// EarClip triangulates a simple ring of n points into exactly n-2 triangles
// whose union is the ring's interior. Both windings are accepted; ears must
// match the ring's winding.
func EarClip(ring geom.Ring) ([]geom.Triangle, error) {
	if err := ring.Validate(); err != nil {
		return nil, err
	}

	winding := ring.Winding()
	work := make([]int, len(ring)) // indices into ring of the vertices still present
	for i := range work {
		work[i] = i
	}

	triangles := make([]geom.Triangle, 0, len(ring)-2)
	for len(work) > 3 {
		v, ok := findEar(ring, work, winding)
		if !ok {
			return nil, &TriangulationError{
				Vertices:  len(ring),
				Remaining: len(work),
				Emitted:   len(triangles),
			}
		}
		triangles = append(triangles, candidate(ring, work, v))
		work = without(work, v)
	}
	triangles = append(triangles, geom.Triangle{ring[work[0]], ring[work[1]], ring[work[2]]})
	return triangles, nil
}

// findEar scans the working sequence from the start and returns the position
// of the first vertex that is the tip of a valid ear.
func findEar(ring geom.Ring, work []int, winding int) (int, bool) {
	n := len(work)
	for v := 0; v < n; v++ {
		tri := candidate(ring, work, v)
		if geom.Orientation(tri) != winding {
			continue // reflex or flat
		}

		prev, next := (v+n-1)%n, (v+1)%n
		blocked := false
		for u := 0; u < n; u++ {
			if u == prev || u == v || u == next {
				continue
			}
			if geom.PointInTriangle(ring[work[u]], tri) {
				blocked = true
				break
			}
		}
		if !blocked {
			return v, true
		}
	}
	return 0, false
}

// candidate returns the triangle formed by the vertex at position v of the
// working sequence and its immediate neighbours.
func candidate(ring geom.Ring, work []int, v int) geom.Triangle {
	n := len(work)
	return geom.Triangle{
		ring[work[(v+n-1)%n]],
		ring[work[v]],
		ring[work[(v+1)%n]],
	}
}

// without returns a new working sequence with position v removed; the input
// is left untouched.
func without(work []int, v int) []int {
	out := make([]int, 0, len(work)-1)
	out = append(out, work[:v]...)
	return append(out, work[v+1:]...)
}
