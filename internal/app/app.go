// Package app ties the preview window, the mesh renderer and the view state
// together.
package app

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/cartomesh/internal/mesh"
	"github.com/irfansharif/cartomesh/internal/palette"
	"github.com/irfansharif/cartomesh/internal/render"
	"github.com/irfansharif/cartomesh/internal/viewport"
)

// App encapsulates the main application state and logic.
type App struct {
	Window   *glfw.Window
	Renderer *render.Renderer
	View     *viewport.View
	Mesh     *mesh.Mesh
}

// NewApp uploads m for display in window, colouring regions from a palette
// seeded with seed. The window's context must be current.
func NewApp(window *glfw.Window, m *mesh.Mesh, seed int64) (*App, error) {
	colors := palette.ForRegions(len(m.Names), rand.New(rand.NewSource(seed)))
	renderer, err := render.NewRenderer(m, colors)
	if err != nil {
		return nil, fmt.Errorf("preparing renderer: %w", err)
	}
	cw, ch := window.GetFramebufferSize()
	return &App{
		Window:   window,
		Renderer: renderer,
		View:     viewport.NewView(cw, ch),
		Mesh:     m,
	}, nil
}

// Title summarizes the mesh and frame timing for the window title.
func (app *App) Title(fps, avgFrameTime float64) string {
	stats := app.Renderer.Stats()
	return fmt.Sprintf("cartomesh (%d regions, %d vertices, %d triangles, %.1f FPS, %.2fms/frame, %.2fµs/draw, zoom %.2fx)",
		len(app.Mesh.Names),
		stats.Vertices,
		stats.Triangles,
		fps,
		avgFrameTime,
		stats.LastDrawTimeUs,
		app.View.Zoom,
	)
}

// Close releases GPU resources.
func (app *App) Close() {
	app.Renderer.Delete()
}
