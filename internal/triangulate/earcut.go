package triangulate

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/cartomesh/internal/geom"
)

// Earcut triangulates a ring with the earcut library. Rings are validated the
// same way EarClip validates them; collinear vertices may be dropped by the
// library, so fewer than n-2 triangles can come back.
func Earcut(ring geom.Ring) ([]geom.Triangle, error) {
	if err := ring.Validate(); err != nil {
		return nil, err
	}

	// Format: [x0, y0, x1, y1, ..., xn, yn]
	coords := make([]float64, len(ring)*2)
	for i, p := range ring {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(coords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("earcut on %d-vertex ring: %w", len(ring), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("earcut returned %d indices, not divisible by 3", len(indices))
	}
	if len(indices) == 0 {
		return nil, &TriangulationError{Vertices: len(ring), Remaining: len(ring)}
	}

	triangles := make([]geom.Triangle, len(indices)/3)
	for i := range triangles {
		for k := 0; k < 3; k++ {
			idx := indices[3*i+k]
			if idx < 0 || idx >= len(ring) {
				return nil, fmt.Errorf("earcut returned out-of-range index %d for %d-vertex ring", idx, len(ring))
			}
			triangles[i][k] = ring[idx]
		}
	}
	return triangles, nil
}
