package geometry

import "github.com/go-gl/mathgl/mgl64"

// Edge is a segment between two mesh positions.
type Edge struct {
	A, B mgl64.Vec3
}

// Edges returns each unique triangle edge once, in first-seen order.
func (g *Geometry) Edges() []Edge {
	type key struct{ lo, hi uint32 }
	seen := make(map[key]struct{}, len(g.Indices))
	edges := make([]Edge, 0, len(g.Indices))

	add := func(i, j uint32) {
		k := key{i, j}
		if j < i {
			k = key{j, i}
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		edges = append(edges, Edge{g.Positions[i], g.Positions[j]})
	}

	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		add(a, b)
		add(b, c)
		add(c, a)
	}
	return edges
}
