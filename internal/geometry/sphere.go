package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is an indexed triangle mesh.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []uint32
}

// SphereParams describes a (possibly partial) UV sphere. Phi sweeps around
// the Y axis, theta sweeps from the +Y pole down to the -Y pole.
type SphereParams struct {
	Radius         float64
	WidthSegments  int
	HeightSegments int
	PhiStart       float64
	PhiLength      float64
	ThetaStart     float64
	ThetaLength    float64
}

const (
	minWidthSegments  = 3
	minHeightSegments = 2
)

// FullSphere returns params for a closed sphere.
func FullSphere(radius float64, widthSegments, heightSegments int) SphereParams {
	return SphereParams{
		Radius:         radius,
		WidthSegments:  widthSegments,
		HeightSegments: heightSegments,
		PhiLength:      2 * math.Pi,
		ThetaLength:    math.Pi,
	}
}

// Hemisphere returns params for half a sphere starting at phiStart.
// phiStart 0 yields the +Z half, math.Pi the -Z half.
func Hemisphere(radius float64, widthSegments, heightSegments int, phiStart float64) SphereParams {
	p := FullSphere(radius, widthSegments, heightSegments)
	p.PhiStart = phiStart
	p.PhiLength = math.Pi
	return p
}

// NewSphere builds the vertex grid and triangle list for p. Degenerate
// triangles at the poles are skipped.
func NewSphere(p SphereParams) *Geometry {
	ws := max(p.WidthSegments, minWidthSegments)
	hs := max(p.HeightSegments, minHeightSegments)
	thetaEnd := math.Min(p.ThetaStart+p.ThetaLength, math.Pi)

	g := &Geometry{
		Positions: make([]mgl64.Vec3, 0, (ws+1)*(hs+1)),
		Normals:   make([]mgl64.Vec3, 0, (ws+1)*(hs+1)),
	}

	grid := make([][]uint32, hs+1)
	var idx uint32
	for iy := 0; iy <= hs; iy++ {
		v := float64(iy) / float64(hs)
		row := make([]uint32, ws+1)

		for ix := 0; ix <= ws; ix++ {
			u := float64(ix) / float64(ws)
			sinPhi, cosPhi := math.Sincos(p.PhiStart + u*p.PhiLength)
			sinTheta, cosTheta := math.Sincos(p.ThetaStart + v*p.ThetaLength)

			pos := mgl64.Vec3{
				-p.Radius * cosPhi * sinTheta,
				p.Radius * cosTheta,
				p.Radius * sinPhi * sinTheta,
			}
			g.Positions = append(g.Positions, pos)
			g.Normals = append(g.Normals, safeNormalize(pos))

			row[ix] = idx
			idx++
		}
		grid[iy] = row
	}

	for iy := 0; iy < hs; iy++ {
		for ix := 0; ix < ws; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			if iy != 0 || p.ThetaStart > 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != hs-1 || thetaEnd < math.Pi {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	return g
}

// Scale multiplies every position component-wise and returns g.
func (g *Geometry) Scale(x, y, z float64) *Geometry {
	for i, p := range g.Positions {
		g.Positions[i] = mgl64.Vec3{p[0] * x, p[1] * y, p[2] * z}
	}
	return g
}

// ComputeVertexNormals replaces the normals with area-weighted face normals
// accumulated per vertex.
func (g *Geometry) ComputeVertexNormals() {
	normals := make([]mgl64.Vec3, len(g.Positions))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		pa, pb, pc := g.Positions[a], g.Positions[b], g.Positions[c]
		n := pc.Sub(pb).Cross(pa.Sub(pb))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = safeNormalize(normals[i])
	}
	g.Normals = normals
}

// TriangleCount returns the number of indexed triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the positions.
func (g *Geometry) Bounds() (lo, hi mgl64.Vec3) {
	if len(g.Positions) == 0 {
		return
	}
	lo, hi = g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	return lo, hi
}

func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	if l := v.Len(); l > 1e-12 {
		return v.Mul(1 / l)
	}
	return mgl64.Vec3{}
}
