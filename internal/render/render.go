// Package render draws a packed region mesh with OpenGL.
//
// The mesh is uploaded once: a vertex buffer of (x, y, ordinal) float32
// triples and an element buffer of uint16 indices, both straight from the
// mesh's packed form. Each frame sets the view transform and issues a single
// indexed draw. Region colours come from a palette uniform indexed by the
// vertex ordinal.
package render

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/cartomesh/internal/geom"
	"github.com/irfansharif/cartomesh/internal/mesh"
	"github.com/irfansharif/cartomesh/internal/palette"
	"github.com/irfansharif/cartomesh/internal/viewport"
)

var renderLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("CARTOMESH_DEBUG_RENDER") == "1" {
		renderLogger = log.New(os.Stdout, "[render] ", log.Ltime|log.Lmsgprefix)
	}
}

const floatSize, indexSize = 4, 2

type Renderer struct {
	vao, vbo, ebo uint32
	indexCount    int32
	bounds        geom.Box

	shaderManager *ShaderManager
	stats         Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	Vertices, Triangles int
	GPUBytes            int
	LastDrawTimeUs      float64 // time spent in last Draw() call in microseconds
}

// NewRenderer compiles the shaders and uploads m. It must be called with a
// current OpenGL context.
func NewRenderer(m *mesh.Mesh, colors []color.RGBA) (*Renderer, error) {
	if m.TriangleCount() == 0 {
		return nil, fmt.Errorf("cannot render an empty mesh")
	}
	bounds, err := m.Bounds()
	if err != nil {
		return nil, fmt.Errorf("computing mesh bounds: %w", err)
	}
	sm, err := NewShaderManager()
	if err != nil {
		return nil, err
	}
	sm.SetPalette(palette.Floats(colors))

	r := &Renderer{bounds: bounds, shaderManager: sm}
	r.upload(m)
	return r, nil
}

func (r *Renderer) upload(m *mesh.Mesh) {
	vertices := m.PackedVertices()
	indices := m.PackedIndices()

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*indexSize, gl.Ptr(indices), gl.STATIC_DRAW)

	// Position (x, y) and ordinal share one vec3 attribute.
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*floatSize, gl.PtrOffset(0))

	// The element buffer binding is VAO state; unbind the VAO first.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.indexCount = int32(len(indices))
	r.stats.Vertices = m.VertexCount()
	r.stats.Triangles = m.TriangleCount()
	r.stats.GPUBytes = len(vertices)*floatSize + len(indices)*indexSize
	renderLogger.Printf("uploaded %d vertices, %d triangles (%d bytes)",
		r.stats.Vertices, r.stats.Triangles, r.stats.GPUBytes)
}

// Bounds returns the bounding box of the uploaded mesh.
func (r *Renderer) Bounds() geom.Box { return r.bounds }

// Draw renders the mesh through view.
func (r *Renderer) Draw(view *viewport.View) error {
	startTime := time.Now()

	transform, err := view.ToNDC(r.bounds)
	if err != nil {
		return err
	}
	r.shaderManager.SetTransform(viewport.Matrix4(transform))

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_SHORT, nil)
	gl.BindVertexArray(0)

	r.stats.LastDrawTimeUs = float64(time.Since(startTime).Microseconds())
	return nil
}

// Stats returns the current performance statistics
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Delete releases the GPU resources.
func (r *Renderer) Delete() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.ebo)
	r.shaderManager.Delete()
}
