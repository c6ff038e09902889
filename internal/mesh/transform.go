package mesh

import (
	"fmt"

	"github.com/irfansharif/cartomesh/internal/geom"
)

// DefaultWrapThreshold is the longitude past which vertices are shifted a full
// turn west. No mainland geometry lies east of 90°, so in practice this only
// catches island fragments across the antimeridian.
const DefaultWrapThreshold = 90

// RegionNotFoundError reports a transform naming a region that is absent from
// the mesh, either unknown or excluded.
type RegionNotFoundError struct {
	Name string
}

func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("region %q is not part of the mesh", e.Name)
}

// Wraparound subtracts 360 from the x coordinate of every vertex whose x
// exceeds threshold, stitching geometry that crosses the ±180° meridian back
// into one contiguous range. It applies to the whole mesh and returns the
// number of vertices moved. It must run before Transform so that inset
// centres are computed from wrapped coordinates.
func (m *Mesh) Wraparound(threshold float64) int {
	moved := 0
	for i := range m.Vertices {
		if m.Vertices[i].X > threshold {
			m.Vertices[i].X -= 360
			moved++
		}
	}
	return moved
}

// Transform rescales the named region about the centre of its bounding box
// and then moves it by offset. Scale 1 with a zero offset leaves the region
// unchanged.
func (m *Mesh) Transform(name string, scale float64, offset geom.Point) error {
	ordinal := m.Ordinal(name)
	if ordinal == 0 {
		return &RegionNotFoundError{Name: name}
	}

	var pts []geom.Point
	for _, v := range m.Vertices {
		if v.Region == ordinal {
			pts = append(pts, geom.MakePoint(v.X, v.Y))
		}
	}
	box, err := geom.Bounds(pts)
	if err != nil {
		return fmt.Errorf("region %q: %w", name, err)
	}

	tr := geom.ScaleAbout(box.Center(), scale, offset)
	for i := range m.Vertices {
		v := &m.Vertices[i]
		if v.Region != ordinal {
			continue
		}
		p := tr.MulPoint(geom.MakePoint(v.X, v.Y))
		v.X, v.Y = p.X, p.Y
	}
	return nil
}
