// Package palette picks region colours for the mesh preview.
package palette

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spreads successive hues so neighbours in region order never
// land close together on the colour wheel.
const goldenAngle = 137.50776405003785

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ForRegions returns n opaque colours, one per region ordinal (index i is
// ordinal i+1). The starting hue and the saturation/brightness jitter come
// from r, so a fixed seed yields a fixed palette.
func ForRegions(n int, r *rand.Rand) []color.RGBA {
	if n <= 0 {
		return nil
	}
	hue := r.Float64() * 360
	out := make([]color.RGBA, n)
	for i := range out {
		sat := clamp(0.45+(r.Float64()-0.5)*0.2, 0, 1)
		bright := clamp(0.8+(r.Float64()-0.5)*0.2, 0, 1)

		c := colorful.Hsv(hue, sat, bright)
		red, green, blue := c.RGB255()
		out[i] = color.RGBA{R: red, G: green, B: blue, A: 255}

		hue += goldenAngle
		for hue >= 360 {
			hue -= 360
		}
	}
	return out
}

// Floats flattens colours into normalized RGBA quadruples, the layout of the
// shader's palette uniform.
func Floats(colors []color.RGBA) []float32 {
	out := make([]float32, 0, 4*len(colors))
	for _, c := range colors {
		out = append(out,
			float32(c.R)/255.0, float32(c.G)/255.0,
			float32(c.B)/255.0, float32(c.A)/255.0,
		)
	}
	return out
}
