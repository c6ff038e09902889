package geom

import (
	"fmt"
	"math"
)

// Ring is one simple closed polygon boundary. The closing point is not
// repeated: the edge from the last point back to the first is implied.
// Self-intersection is assumed absent, not checked.
type Ring []Point

// Triangle is three points of some ring, produced by a triangulator.
type Triangle [3]Point

// MalformedRingError reports a ring that cannot be triangulated as given.
type MalformedRingError struct {
	Vertices int    // number of points in the ring
	Index    int    // offending point index, -1 if not point-specific
	Reason   string // what is wrong with the ring
}

func (e *MalformedRingError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("malformed ring (%d vertices): %s at vertex %d", e.Vertices, e.Reason, e.Index)
	}
	return fmt.Sprintf("malformed ring (%d vertices): %s", e.Vertices, e.Reason)
}

// SignedArea returns the shoelace area of the ring; positive for
// counter-clockwise winding.
func (r Ring) SignedArea() float64 {
	sum := 0.0
	for i, p := range r {
		q := r[(i+1)%len(r)]
		sum += Cross(p, q)
	}
	return sum / 2
}

// Winding returns +1 for counter-clockwise rings, -1 for clockwise ones and 0
// for rings with no area.
func (r Ring) Winding() int { return sign(r.SignedArea()) }

// Validate checks the structural ring invariants: at least three points, no
// two consecutive points (including last to first) identical, finite
// coordinates and a non-zero area.
func (r Ring) Validate() error {
	if len(r) < 3 {
		return &MalformedRingError{Vertices: len(r), Index: -1, Reason: "fewer than 3 points"}
	}
	for i, p := range r {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return &MalformedRingError{Vertices: len(r), Index: i, Reason: "non-finite coordinate"}
		}
		if p == r[(i+1)%len(r)] {
			return &MalformedRingError{Vertices: len(r), Index: i, Reason: "duplicate consecutive point"}
		}
	}
	if r.SignedArea() == 0 {
		return &MalformedRingError{Vertices: len(r), Index: -1, Reason: "zero area"}
	}
	return nil
}

// Compact returns a copy of the ring with consecutive duplicate points and a
// repeated closing point removed. Input adapters use it to turn file formats
// that close their rings explicitly into the form Validate accepts.
func (r Ring) Compact() Ring {
	out := make(Ring, 0, len(r))
	for _, p := range r {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// Area returns the unsigned area of the triangle.
func (t Triangle) Area() float64 {
	return math.Abs(Cross(t[1].Sub(t[0]), t[2].Sub(t[0]))) / 2
}
