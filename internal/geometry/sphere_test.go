package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestFullSphereCounts(t *testing.T) {
	g := NewSphere(FullSphere(1, 6, 12))

	if got, want := len(g.Positions), 7*13; got != want {
		t.Errorf("positions = %d, want %d", got, want)
	}
	// Pole rows contribute one triangle per segment, interior rows two.
	if got, want := g.TriangleCount(), 6*12*2-2*6; got != want {
		t.Errorf("triangles = %d, want %d", got, want)
	}
	for i, p := range g.Positions {
		if math.Abs(p.Len()-1) > epsilon {
			t.Fatalf("vertex %d not on unit sphere: %v", i, p)
		}
	}
}

func TestHemisphereHalves(t *testing.T) {
	front := NewSphere(Hemisphere(1, 6, 12, 0))
	back := NewSphere(Hemisphere(1, 6, 12, math.Pi))

	for _, p := range front.Positions {
		if p[2] < -epsilon {
			t.Fatalf("front hemisphere has vertex behind origin: %v", p)
		}
	}
	for _, p := range back.Positions {
		if p[2] > epsilon {
			t.Fatalf("back hemisphere has vertex in front of origin: %v", p)
		}
	}
}

func TestScaleFlattensDepth(t *testing.T) {
	g := NewSphere(FullSphere(2, 6, 12)).Scale(1, 1, 0.1)
	lo, hi := g.Bounds()

	if math.Abs(hi[0]-2) > 1e-6 || math.Abs(lo[0]+2) > 1e-6 {
		t.Errorf("x extent = [%v, %v], want [-2, 2]", lo[0], hi[0])
	}
	if hi[2] > 0.2+epsilon || lo[2] < -0.2-epsilon {
		t.Errorf("z extent = [%v, %v], want within [-0.2, 0.2]", lo[2], hi[2])
	}
}

func TestNegativeScaleMirrors(t *testing.T) {
	g := NewSphere(Hemisphere(1, 6, 12, math.Pi)).Scale(1, 1, -0.05)
	for _, p := range g.Positions {
		if p[2] < -epsilon {
			t.Fatalf("mirrored hemisphere has vertex behind origin: %v", p)
		}
	}
}

func TestComputeVertexNormalsUnitLength(t *testing.T) {
	g := NewSphere(FullSphere(1, 8, 6))
	g.ComputeVertexNormals()

	if len(g.Normals) != len(g.Positions) {
		t.Fatalf("normals = %d, positions = %d", len(g.Normals), len(g.Positions))
	}
	for i, n := range g.Normals {
		l := n.Len()
		if l != 0 && math.Abs(l-1) > 1e-6 {
			t.Errorf("normal %d length = %v", i, l)
		}
	}
	// Equator vertex normal should point outward.
	mid := 3*9 + 2
	if g.Normals[mid].Dot(g.Positions[mid]) <= 0 {
		t.Errorf("equator normal %v points inward for %v", g.Normals[mid], g.Positions[mid])
	}
}

func TestEdgesUnique(t *testing.T) {
	g := NewSphere(FullSphere(1, 4, 2))
	edges := g.Edges()
	if len(edges) == 0 {
		t.Fatal("expected edges")
	}
	if len(edges) >= len(g.Indices) {
		t.Errorf("edges = %d, expected fewer than index count %d", len(edges), len(g.Indices))
	}
}
