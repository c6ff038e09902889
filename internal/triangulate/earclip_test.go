package triangulate

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/irfansharif/cartomesh/internal/geom"
)

func square() geom.Ring {
	return geom.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
}

func reversed(r geom.Ring) geom.Ring {
	out := make(geom.Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// star returns a star-shaped (hence simple) ring of n points around the
// origin with random radii.
func star(n int, seed int64) geom.Ring {
	rng := rand.New(rand.NewSource(seed))
	ring := make(geom.Ring, n)
	for i := range ring {
		theta := 2 * math.Pi * float64(i) / float64(n)
		r := 1 + 9*rng.Float64()
		ring[i] = geom.MakePoint(r*math.Cos(theta), r*math.Sin(theta))
	}
	return ring
}

func testRings() map[string]geom.Ring {
	return map[string]geom.Ring{
		"square":    square(),
		"square cw": reversed(square()),
		"l-shape":   {{0, 0}, {4, 0}, {4, 1}, {1, 1}, {1, 4}, {0, 4}},
		"comb": {
			{0, 0}, {5, 0}, {5, 3}, {4, 3}, {4, 1}, {3, 1}, {3, 3},
			{2, 3}, {2, 1}, {1, 1}, {1, 3}, {0, 3},
		},
		"collinear edge": {{0, 0}, {2, 0}, {4, 0}, {4, 4}, {0, 4}},
		"star":           star(200, 1),
		"star cw":        reversed(star(150, 2)),
	}
}

// referenceArea computes the ring's area with orb's planar package, which
// expects closed rings.
func referenceArea(r geom.Ring) float64 {
	ring := make(orb.Ring, 0, len(r)+1)
	for _, p := range r {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	ring = append(ring, ring[0])
	return math.Abs(planar.Area(orb.Polygon{ring}))
}

func totalArea(tris []geom.Triangle) float64 {
	sum := 0.0
	for _, t := range tris {
		sum += t.Area()
	}
	return sum
}

func TestEarClipSquare(t *testing.T) {
	tris, err := EarClip(square())
	if err != nil {
		t.Fatalf("EarClip: %v", err)
	}
	if len(tris) != 2 {
		t.Fatalf("len(triangles) = %d, want 2", len(tris))
	}
	if got := totalArea(tris); got != 16 {
		t.Fatalf("area = %v, want 16", got)
	}
}

func TestEarClipEarCount(t *testing.T) {
	for name, ring := range testRings() {
		t.Run(name, func(t *testing.T) {
			tris, err := EarClip(ring)
			if err != nil {
				t.Fatalf("EarClip: %v", err)
			}
			if want := len(ring) - 2; len(tris) != want {
				t.Fatalf("len(triangles) = %d, want %d", len(tris), want)
			}
			for i, tri := range tris {
				if geom.Orientation(tri) == 0 {
					t.Fatalf("triangle %d is degenerate: %v", i, tri)
				}
			}
		})
	}
}

func TestEarClipAreaConservation(t *testing.T) {
	for name, ring := range testRings() {
		t.Run(name, func(t *testing.T) {
			tris, err := EarClip(ring)
			if err != nil {
				t.Fatalf("EarClip: %v", err)
			}
			want := referenceArea(ring)
			if got := totalArea(tris); math.Abs(got-want) > 1e-9*want {
				t.Fatalf("area = %v, want %v", got, want)
			}
		})
	}
}

// strictlyInside reports whether p is in the open triangle t.
func strictlyInside(p geom.Point, t geom.Triangle) bool {
	o := geom.Orientation(t)
	return geom.SideSign(p, t[0], t[1]) == o &&
		geom.SideSign(p, t[1], t[2]) == o &&
		geom.SideSign(p, t[2], t[0]) == o
}

// insideRing is an even-odd ray cast.
func insideRing(p geom.Point, r geom.Ring) bool {
	in := false
	for i, a := range r {
		b := r[(i+1)%len(r)]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				in = !in
			}
		}
	}
	return in
}

func TestEarClipCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for name, ring := range testRings() {
		t.Run(name, func(t *testing.T) {
			tris, err := EarClip(ring)
			if err != nil {
				t.Fatalf("EarClip: %v", err)
			}
			box, err := geom.Bounds(ring)
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < 2000; i++ {
				p := geom.MakePoint(box.X+rng.Float64()*box.W, box.Y+rng.Float64()*box.H)
				hits := 0
				for _, tri := range tris {
					if strictlyInside(p, tri) {
						hits++
					}
				}
				want := 0
				if insideRing(p, ring) {
					want = 1
				}
				if hits != want {
					t.Fatalf("sample %v covered by %d triangles, want %d", p, hits, want)
				}
			}
		})
	}
}

func TestEarClipUsesRingPoints(t *testing.T) {
	ring := testRings()["comb"]
	seen := make(map[geom.Point]bool, len(ring))
	for _, p := range ring {
		seen[p] = true
	}
	tris, err := EarClip(ring)
	if err != nil {
		t.Fatalf("EarClip: %v", err)
	}
	for _, tri := range tris {
		for _, p := range tri {
			if !seen[p] {
				t.Fatalf("triangle vertex %v is not a ring point", p)
			}
		}
	}
}

func TestEarClipMalformed(t *testing.T) {
	for name, ring := range map[string]geom.Ring{
		"two points": {{0, 0}, {1, 0}},
		"duplicate":  {{0, 0}, {4, 0}, {4, 0}, {4, 4}},
		"bowtie":     {{0, 0}, {4, 4}, {4, 0}, {0, 4}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := EarClip(ring)
			var mre *geom.MalformedRingError
			if !errors.As(err, &mre) {
				t.Fatalf("EarClip() = %v, want *MalformedRingError", err)
			}
		})
	}
}

func TestEarClipDoesNotMutateInput(t *testing.T) {
	ring := testRings()["l-shape"]
	before := append(geom.Ring(nil), ring...)
	if _, err := EarClip(ring); err != nil {
		t.Fatalf("EarClip: %v", err)
	}
	for i := range before {
		if ring[i] != before[i] {
			t.Fatalf("ring[%d] = %v, want %v", i, ring[i], before[i])
		}
	}
}

func TestFindEarReportsNoEar(t *testing.T) {
	// Every vertex of a ring scanned with the opposite winding is reflex, so
	// the scan must come up empty rather than loop.
	ring := square()
	work := []int{0, 1, 2, 3}
	if _, ok := findEar(ring, work, -1); ok {
		t.Fatalf("findEar found an ear with the wrong winding")
	}
}

func TestEarClipSelfIntersecting(t *testing.T) {
	// Edge (1,0)-(3,3) crosses edge (0,2)-(2,1); the net area is 1, so the
	// ring passes Validate. One ear is clipped at (3,3), after which every
	// remaining candidate is either reflex or holds another vertex.
	ring := geom.Ring{{1, 0}, {3, 3}, {0, 2}, {2, 1}, {3, 0}}
	if err := ring.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	_, err := EarClip(ring)
	var te *TriangulationError
	if !errors.As(err, &te) {
		t.Fatalf("EarClip() = %v, want *TriangulationError", err)
	}
	if te.Vertices != 5 || te.Remaining != 4 || te.Emitted != 1 {
		t.Fatalf("TriangulationError = %+v, want 5 vertices, 4 remaining, 1 emitted", te)
	}
}

func TestEarcut(t *testing.T) {
	for name, ring := range map[string]geom.Ring{
		"square":  square(),
		"l-shape": testRings()["l-shape"],
		"star":    star(64, 3),
	} {
		t.Run(name, func(t *testing.T) {
			tris, err := Earcut(ring)
			if err != nil {
				t.Fatalf("Earcut: %v", err)
			}
			want := referenceArea(ring)
			if got := totalArea(tris); math.Abs(got-want) > 1e-9*want {
				t.Fatalf("area = %v, want %v", got, want)
			}
		})
	}

	if _, err := Earcut(geom.Ring{{0, 0}, {1, 1}}); err == nil {
		t.Fatalf("Earcut accepted a two-point ring")
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "earclip", "earcut"} {
		if _, err := ByName(name); err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("delaunay"); err == nil {
		t.Fatalf("ByName(delaunay) should fail")
	}
}
