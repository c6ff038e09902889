package mesh

import (
	"errors"
	"testing"

	"github.com/irfansharif/cartomesh/internal/geom"
	"github.com/irfansharif/cartomesh/internal/region"
)

func TestWraparound(t *testing.T) {
	m := &Mesh{
		Names: []string{"R"},
		Vertices: []Vertex{
			{X: 170, Y: 50, Region: 1},
			{X: 200, Y: 51, Region: 1},
			{X: 90, Y: 52, Region: 1},
			{X: -120, Y: 40, Region: 1},
		},
	}
	if moved := m.Wraparound(DefaultWrapThreshold); moved != 2 {
		t.Fatalf("Wraparound() moved %d vertices, want 2", moved)
	}
	for i, want := range []float64{-190, -160, 90, -120} {
		if got := m.Vertices[i].X; got != want {
			t.Fatalf("vertex %d x = %v, want %v", i, got, want)
		}
	}

	// Wrapped vertices are below the threshold, so a second pass is a no-op.
	if moved := m.Wraparound(DefaultWrapThreshold); moved != 0 {
		t.Fatalf("second Wraparound() moved %d vertices, want 0", moved)
	}
}

func TestWraparoundThreshold(t *testing.T) {
	m := &Mesh{Vertices: []Vertex{{X: 170, Region: 1}, {X: 200, Region: 1}}}
	m.Wraparound(180)
	if m.Vertices[0].X != 170 || m.Vertices[1].X != -160 {
		t.Fatalf("vertices = %+v, want x 170 and -160", m.Vertices)
	}
}

func insetFixture(t *testing.T) *Mesh {
	t.Helper()
	regions, tris := fixture(t,
		squareRegion("Mainland", -100, 30, 20),
		squareRegion("Island", -10, -10, 20),
	)
	m, err := Index(regions, tris, nil)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	return m
}

func TestTransformExample(t *testing.T) {
	m := insetFixture(t)
	if err := m.Transform("Island", 0.5, geom.MakePoint(20, -20)); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := map[geom.Point]geom.Point{
		{X: 10, Y: 10}:   {X: 25, Y: -15},
		{X: -10, Y: -10}: {X: 15, Y: -25},
		{X: 10, Y: -10}:  {X: 25, Y: -25},
		{X: -10, Y: 10}:  {X: 15, Y: -15},
	}
	s := m.Spans[1]
	for i := 0; i < s.Vertices; i++ {
		v := m.Vertices[s.FirstVertex+i]
		found := false
		for _, w := range want {
			if v.X == w.X && v.Y == w.Y {
				found = true
			}
		}
		if !found {
			t.Fatalf("transformed vertex (%v, %v) is not one of %v", v.X, v.Y, want)
		}
		if v.Region != 2 {
			t.Fatalf("vertex region = %d, want 2", v.Region)
		}
	}

	// Other regions are untouched.
	for _, v := range m.Vertices[:m.Spans[0].Vertices] {
		if v.X < -100 || v.X > -80 || v.Y < 30 || v.Y > 50 {
			t.Fatalf("mainland vertex moved: %+v", v)
		}
	}
}

func TestTransformIdentity(t *testing.T) {
	regions, tris := fixture(t, region.Region{Name: "Odd", Rings: []geom.Ring{{
		{-152.3, 61.7}, {-141.1, 60.2}, {-143.9, 70.1}, {-160.05, 69.33},
	}}})
	m, err := Index(regions, tris, nil)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	before := append([]Vertex(nil), m.Vertices...)
	for i := 0; i < 3; i++ {
		if err := m.Transform("Odd", 1, geom.Point{}); err != nil {
			t.Fatalf("Transform: %v", err)
		}
	}
	for i := range before {
		if m.Vertices[i] != before[i] {
			t.Fatalf("vertex %d = %+v, want %+v", i, m.Vertices[i], before[i])
		}
	}
}

func TestTransformRegionNotFound(t *testing.T) {
	regions, tris := fixture(t, squareRegion("Kept", 0, 0, 1), squareRegion("Dropped", 5, 5, 1))
	m, err := Index(regions, tris, map[string]bool{"Dropped": true})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	for _, name := range []string{"Dropped", "Atlantis"} {
		err := m.Transform(name, 0.5, geom.Point{})
		var rnf *RegionNotFoundError
		if !errors.As(err, &rnf) || rnf.Name != name {
			t.Fatalf("Transform(%s) = %v, want *RegionNotFoundError", name, err)
		}
	}
}

func TestTransformAfterWraparound(t *testing.T) {
	// An island chain straddling the antimeridian, one ring on each side.
	regions, tris := fixture(t, region.Region{Name: "Chain", Rings: []geom.Ring{
		{{-178, 50}, {-176, 50}, {-176, 52}, {-178, 52}},
		{{178, 50}, {180, 50}, {180, 52}, {178, 52}},
	}})
	m, err := Index(regions, tris, nil)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	m.Wraparound(DefaultWrapThreshold)
	box, err := m.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if box.X != -182 || box.W != 6 {
		t.Fatalf("bounds after wraparound = %+v, want x -182 width 6", box)
	}

	if err := m.Transform("Chain", 0.5, geom.Point{}); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	box, err = m.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	// The centre (-179, 51) stays put while the extent halves.
	if box.X != -180.5 || box.W != 3 || box.Y != 50.5 || box.H != 1 {
		t.Fatalf("bounds after transform = %+v", box)
	}
}
