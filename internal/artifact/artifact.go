// Package artifact serializes a packed mesh for consumers that do not link
// against the compiler: region names, a flat float32 (x, y, ordinal) vertex
// array and a flat uint16 index array, with explicit counts.
package artifact

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/irfansharif/cartomesh/internal/mesh"
)

// File is the on-disk form of a mesh.
type File struct {
	Regions       []string  `json:"regions"`
	VertexCount   int       `json:"vertex_count"`
	Vertices      []float32 `json:"vertices"`
	TriangleCount int       `json:"triangle_count"`
	Indices       []uint16  `json:"indices"`
}

// FromMesh packs m.
func FromMesh(m *mesh.Mesh) File {
	return File{
		Regions:       m.Names,
		VertexCount:   m.VertexCount(),
		Vertices:      m.PackedVertices(),
		TriangleCount: m.TriangleCount(),
		Indices:       m.PackedIndices(),
	}
}

// Mesh validates the counts and rebuilds the mesh.
func (f File) Mesh() (*mesh.Mesh, error) {
	if len(f.Vertices) != 3*f.VertexCount {
		return nil, fmt.Errorf("vertex_count %d does not match %d vertex values", f.VertexCount, len(f.Vertices))
	}
	if len(f.Indices) != 3*f.TriangleCount {
		return nil, fmt.Errorf("triangle_count %d does not match %d index values", f.TriangleCount, len(f.Indices))
	}
	return mesh.FromPacked(f.Regions, f.Vertices, f.Indices)
}

// Write encodes m to w.
func Write(w io.Writer, m *mesh.Mesh) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FromMesh(m))
}

// Read decodes a mesh written by Write.
func Read(r io.Reader) (*mesh.Mesh, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding mesh artifact: %w", err)
	}
	m, err := f.Mesh()
	if err != nil {
		return nil, fmt.Errorf("invalid mesh artifact: %w", err)
	}
	return m, nil
}
