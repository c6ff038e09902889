// Package geom provides the 2D primitives the mesh compiler is built from:
// - Points in geographic degrees (x = longitude, y = latitude)
// - Rings (simple closed polygon boundaries) and triangles
// - Orientation and containment predicates used by ear clipping
// - Bounding boxes and affine transforms used for insets and the preview
package geom

import (
	"fmt"
	"math"
)

// Point represents a 2D coordinate. Two points are the same vertex iff their
// coordinates compare exactly equal.
type Point struct {
	X float64
	Y float64
}

// Box represents an axis-aligned rectangle.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeBox(x, y, w, h float64) Box             { return Box{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

// Identity is the transform that maps every point to itself.
var Identity = MakeAffine(1, 0, 0, 0, 1, 0)

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Cross returns the z component of the cross product of p and q.
func Cross(p, q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Center returns the center of the box.
func (b Box) Center() Point { return Point{b.X + 0.5*b.W, b.Y + 0.5*b.H} }

// Bounds returns the axis-aligned bounding box of the given points.
func Bounds(pts []Point) (Box, error) {
	if len(pts) == 0 {
		return Box{}, fmt.Errorf("cannot compute bounds of an empty point set")
	}
	xmin, xmax := pts[0].X, pts[0].X
	ymin, ymax := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	if math.IsInf(xmin, 0) || math.IsInf(xmax, 0) || math.IsInf(ymin, 0) || math.IsInf(ymax, 0) {
		return Box{}, fmt.Errorf("bounds contain infinite values: x[%f,%f] y[%f,%f]", xmin, xmax, ymin, ymax)
	}
	return MakeBox(xmin, ymin, xmax-xmin, ymax-ymin), nil
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Inv returns the inverse of the affine transform.
// Returns an error if the transform is not invertible (determinant is zero).
func (t Affine) Inv() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant ≈ 0)")
	}
	return MakeAffine(
		t.E/det, -t.B/det, (t.B*t.F-t.C*t.E)/det,
		-t.D/det, t.A/det, (t.C*t.D-t.A*t.F)/det,
	), nil
}

// Translate returns a transform that moves every point by v.
func Translate(v Point) Affine { return MakeAffine(1, 0, v.X, 0, 1, v.Y) }

// ScaleAbout returns the transform that scales uniformly about center and then
// moves the result by offset. With scale 1 and a zero offset the result is
// exactly Identity.
func ScaleAbout(center Point, scale float64, offset Point) Affine {
	toOrigin := Translate(center.Scale(-1))
	uniform := MakeAffine(scale, 0, 0, 0, scale, 0)
	back := Translate(center.Add(offset))
	return back.Mul(uniform.Mul(toOrigin))
}

// FillBox returns a transform that maps box b1 into b2, preserving aspect
// ratio and centering the result.
func FillBox(b1, b2 Box) (Affine, error) {
	if b1.W <= 0 || b1.H <= 0 {
		return Affine{}, fmt.Errorf("source box must have positive width and height, got W=%v H=%v", b1.W, b1.H)
	}
	if b2.W <= 0 || b2.H <= 0 {
		return Affine{}, fmt.Errorf("destination box must have positive width and height, got W=%v H=%v", b2.W, b2.H)
	}

	sc := math.Min(b2.W/b1.W, b2.H/b1.H)
	centerDst := Translate(b2.Center())
	centerSrc := Translate(b1.Center().Scale(-1))
	return centerDst.Mul(MakeAffine(sc, 0, 0, 0, sc, 0)).Mul(centerSrc), nil
}
