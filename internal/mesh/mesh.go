// Package mesh packs triangulated regions into a single indexed mesh.
//
// Index folds over the included regions in input order. Each region gets its
// own exact-coordinate vertex table; its local indices are shifted by the
// number of vertices emitted for earlier regions, so every region owns a
// contiguous range of the global vertex array. Vertices carry the 1-based
// ordinal of their region, which the renderer turns into a colour.
//
// After indexing, Wraparound and Transform adjust coordinates in place. They
// never change vertex identity or ordinal.
package mesh

import (
	"fmt"
	"math"

	"github.com/irfansharif/cartomesh/internal/geom"
	"github.com/irfansharif/cartomesh/internal/region"
)

// MaxVertices is the largest vertex count addressable by 16-bit indices.
const MaxVertices = math.MaxUint16

// Vertex is a deduplicated coordinate tagged with its region's ordinal.
type Vertex struct {
	X, Y   float64
	Region int // 1-based position among the included regions
}

// Span records where one region's vertices and triangles live in the packed
// arrays.
type Span struct {
	Name          string
	Ordinal       int
	FirstVertex   int
	Vertices      int
	FirstTriangle int
	Triangles     int
}

// Mesh is the packed artifact.
type Mesh struct {
	Names     []string // included regions in output order
	Vertices  []Vertex
	Triangles [][3]uint16
	Spans     []Span
}

// IndexOverflowError reports a mesh with more vertices than 16-bit indices
// can address.
type IndexOverflowError struct {
	Vertices int    // vertex count reached
	Region   string // region being indexed when the limit was crossed
}

func (e *IndexOverflowError) Error() string {
	return fmt.Sprintf("mesh needs %d vertices (limit %d for 16-bit indices) after indexing region %q",
		e.Vertices, MaxVertices, e.Region)
}

// indexState is the accumulator threaded through the fold over regions.
type indexState struct {
	offset int // vertices emitted so far; the next region's first global index
	mesh   *Mesh
}

// Index deduplicates and packs the triangles of every region not named in
// exclude. triangles maps region name to that region's triangles.
func Index(regions []region.Region, triangles map[string][]geom.Triangle, exclude map[string]bool) (*Mesh, error) {
	seen := make(map[string]bool, len(regions))
	acc := indexState{mesh: &Mesh{}}
	for _, r := range regions {
		if seen[r.Name] {
			return nil, fmt.Errorf("duplicate region name %q", r.Name)
		}
		seen[r.Name] = true
		if exclude[r.Name] {
			continue
		}
		tris, ok := triangles[r.Name]
		if !ok || len(tris) == 0 {
			return nil, fmt.Errorf("no triangles for region %q", r.Name)
		}

		var err error
		if acc, err = acc.step(r.Name, tris); err != nil {
			return nil, err
		}
	}
	return acc.mesh, nil
}

// step indexes one region and returns the advanced accumulator.
func (s indexState) step(name string, tris []geom.Triangle) (indexState, error) {
	local := make(map[geom.Point]int)
	var order []geom.Point
	rewritten := make([][3]int, len(tris))
	for i, tri := range tris {
		for k, p := range tri {
			idx, ok := local[p]
			if !ok {
				idx = len(order)
				local[p] = idx
				order = append(order, p)
			}
			rewritten[i][k] = idx
		}
	}

	total := s.offset + len(order)
	if total > MaxVertices {
		return s, &IndexOverflowError{Vertices: total, Region: name}
	}

	m := s.mesh
	ordinal := len(m.Names) + 1
	m.Names = append(m.Names, name)
	m.Spans = append(m.Spans, Span{
		Name:          name,
		Ordinal:       ordinal,
		FirstVertex:   s.offset,
		Vertices:      len(order),
		FirstTriangle: len(m.Triangles),
		Triangles:     len(tris),
	})
	for _, p := range order {
		m.Vertices = append(m.Vertices, Vertex{X: p.X, Y: p.Y, Region: ordinal})
	}
	for _, t := range rewritten {
		m.Triangles = append(m.Triangles, [3]uint16{
			uint16(t[0] + s.offset),
			uint16(t[1] + s.offset),
			uint16(t[2] + s.offset),
		})
	}
	return indexState{offset: total, mesh: m}, nil
}

func (m *Mesh) VertexCount() int   { return len(m.Vertices) }
func (m *Mesh) TriangleCount() int { return len(m.Triangles) }

// Ordinal returns the 1-based ordinal of the named region, or 0 if the region
// is not part of the mesh.
func (m *Mesh) Ordinal(name string) int {
	for i, n := range m.Names {
		if n == name {
			return i + 1
		}
	}
	return 0
}

// PackedVertices returns the vertices as flat (x, y, ordinal) float32
// triples.
func (m *Mesh) PackedVertices() []float32 {
	out := make([]float32, 0, 3*len(m.Vertices))
	for _, v := range m.Vertices {
		out = append(out, float32(v.X), float32(v.Y), float32(v.Region))
	}
	return out
}

// PackedIndices returns the triangles as flat (i0, i1, i2) triples.
func (m *Mesh) PackedIndices() []uint16 {
	out := make([]uint16, 0, 3*len(m.Triangles))
	for _, t := range m.Triangles {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() (geom.Box, error) {
	pts := make([]geom.Point, len(m.Vertices))
	for i, v := range m.Vertices {
		pts[i] = geom.MakePoint(v.X, v.Y)
	}
	return geom.Bounds(pts)
}

// FromPacked rebuilds a mesh from its wire form. Spans are recovered from the
// per-vertex ordinals; every index must address an existing vertex.
func FromPacked(names []string, verts []float32, indices []uint16) (*Mesh, error) {
	if len(verts)%3 != 0 {
		return nil, fmt.Errorf("vertex array length %d is not a multiple of 3", len(verts))
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index array length %d is not a multiple of 3", len(indices))
	}
	if n := len(verts) / 3; n > MaxVertices {
		return nil, &IndexOverflowError{Vertices: n}
	}

	m := &Mesh{Names: append([]string(nil), names...)}
	for i := 0; i < len(verts); i += 3 {
		ordinal := int(verts[i+2])
		if float32(ordinal) != verts[i+2] || ordinal < 1 || ordinal > len(names) {
			return nil, fmt.Errorf("vertex %d has invalid region ordinal %v (%d regions)", i/3, verts[i+2], len(names))
		}
		if n := len(m.Spans); n == 0 || m.Spans[n-1].Ordinal != ordinal {
			if n > 0 && m.Spans[n-1].Ordinal > ordinal {
				return nil, fmt.Errorf("vertex %d: region ordinals are not contiguous", i/3)
			}
			m.Spans = append(m.Spans, Span{Name: names[ordinal-1], Ordinal: ordinal, FirstVertex: i / 3})
		}
		m.Spans[len(m.Spans)-1].Vertices++
		m.Vertices = append(m.Vertices, Vertex{X: float64(verts[i]), Y: float64(verts[i+1]), Region: ordinal})
	}
	for i := 0; i < len(indices); i += 3 {
		t := [3]uint16{indices[i], indices[i+1], indices[i+2]}
		for _, idx := range t {
			if int(idx) >= len(m.Vertices) {
				return nil, fmt.Errorf("triangle %d references vertex %d of %d", i/3, idx, len(m.Vertices))
			}
		}
		m.Triangles = append(m.Triangles, t)
	}
	for i := range m.Spans {
		s := &m.Spans[i]
		for j, t := range m.Triangles {
			if m.Vertices[t[0]].Region != s.Ordinal {
				continue
			}
			if s.Triangles == 0 {
				s.FirstTriangle = j
			}
			s.Triangles++
		}
	}
	return m, nil
}
