// Package viewport holds the preview's zoom and pan state and maps mesh
// coordinates (longitude/latitude, y up) onto the framebuffer and OpenGL
// normalized device coordinates.
package viewport

import (
	"fmt"

	"github.com/irfansharif/cartomesh/internal/geom"
)

const (
	minZoom = 0.1
	maxZoom = 64.0

	// fill is the share of the shorter viewport side the mesh occupies at
	// zoom 1.
	fill = 0.9
)

// View manages the current view state including zoom, pan, and viewport.
type View struct {
	Zoom          float64
	PanX, PanY    float64 // framebuffer pixels
	Width, Height int
}

// NewView creates a new view state with default values.
func NewView(width, height int) *View {
	return &View{
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// SetZoom sets the zoom level, clamping to valid range.
func (v *View) SetZoom(zoom float64) {
	if zoom < minZoom {
		v.Zoom = minZoom
	} else if zoom > maxZoom {
		v.Zoom = maxZoom
	} else {
		v.Zoom = zoom
	}
}

// SetPan sets the pan position to the given coordinates.
func (v *View) SetPan(x, y float64) {
	v.PanX = x
	v.PanY = y
}

// SetViewport updates the viewport dimensions.
func (v *View) SetViewport(width, height int) {
	v.Width = width
	v.Height = height
}

// Reset returns to the fitted view.
func (v *View) Reset() {
	v.Zoom = 1.0
	v.PanX, v.PanY = 0, 0
}

// ZoomAt multiplies the zoom by factor, keeping the framebuffer point
// (fbX, fbY) fixed on screen.
func (v *View) ZoomAt(factor, fbX, fbY float64) {
	centerX, centerY := float64(v.Width)/2, float64(v.Height)/2
	cursorX, cursorY := fbX-centerX, fbY-centerY

	oldZoom := v.Zoom
	canvasX, canvasY := (cursorX-v.PanX)/oldZoom, (cursorY-v.PanY)/oldZoom
	v.SetZoom(oldZoom * factor)
	v.SetPan(cursorX-canvasX*v.Zoom, cursorY-canvasY*v.Zoom)
}

// ToScreen maps mesh coordinates to framebuffer pixels (y down). At zoom 1
// with no pan the bounds are centered and fill most of the viewport.
func (v *View) ToScreen(bounds geom.Box) (geom.Affine, error) {
	if v.Width <= 0 || v.Height <= 0 {
		return geom.Affine{}, fmt.Errorf("invalid viewport dimensions %dx%d", v.Width, v.Height)
	}

	flipY := geom.MakeAffine(1, 0, 0, 0, -1, 0)
	flipped := geom.MakeBox(bounds.X, -(bounds.Y + bounds.H), bounds.W, bounds.H)
	w, h := float64(v.Width), float64(v.Height)
	target := geom.MakeBox(w*(1-fill)/2, h*(1-fill)/2, w*fill, h*fill)
	fit, err := geom.FillBox(flipped, target)
	if err != nil {
		return geom.Affine{}, fmt.Errorf("fitting mesh to viewport: %w", err)
	}

	center := geom.MakePoint(w/2, h/2)
	zoom := geom.ScaleAbout(center, v.Zoom, geom.MakePoint(v.PanX, v.PanY))
	return zoom.Mul(fit).Mul(flipY), nil
}

// ToNDC maps mesh coordinates to OpenGL normalized device coordinates.
func (v *View) ToNDC(bounds geom.Box) (geom.Affine, error) {
	toScreen, err := v.ToScreen(bounds)
	if err != nil {
		return geom.Affine{}, err
	}
	screenToNDC := geom.MakeAffine(
		2.0/float64(v.Width), 0, -1,
		0, -2.0/float64(v.Height), 1,
	)
	return screenToNDC.Mul(toScreen), nil
}

// Matrix4 converts an affine transform to column-major OpenGL 4x4 form.
func Matrix4(t geom.Affine) [16]float32 {
	return [16]float32{
		float32(t.A), float32(t.D), 0, 0,
		float32(t.B), float32(t.E), 0, 0,
		0, 0, 1, 0,
		float32(t.C), float32(t.F), 0, 1,
	}
}
