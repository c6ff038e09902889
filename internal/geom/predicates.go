package geom

// SideSign returns the sign of the determinant
//
//	| a.X  a.Y  1 |
//	| b.X  b.Y  1 |
//	| p.X  p.Y  1 |
//
// which is twice the signed area of triangle (a, b, p): +1 when p lies left
// of the directed line a->b, -1 when it lies right, and 0 when collinear.
func SideSign(p, a, b Point) int {
	return sign(Cross(b.Sub(a), p.Sub(a)))
}

// Orientation returns the winding of the triangle using the same convention
// as SideSign: +1 counter-clockwise, -1 clockwise, 0 degenerate.
func Orientation(t Triangle) int {
	return SideSign(t[2], t[0], t[1])
}

// PointInTriangle reports whether p lies in the closed triangle t.
//
// Points on an edge are inside, so a remaining vertex that touches a
// candidate ear's diagonal blocks it. Points equal to one of t's corners are
// not inside: they occupy the ear's own vertex position. A degenerate
// triangle contains nothing.
func PointInTriangle(p Point, t Triangle) bool {
	o := Orientation(t)
	if o == 0 {
		return false
	}
	if p == t[0] || p == t[1] || p == t[2] {
		return false
	}
	sa := SideSign(p, t[0], t[1])
	sb := SideSign(p, t[1], t[2])
	sc := SideSign(p, t[2], t[0])
	return sa != -o && sb != -o && sc != -o
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
