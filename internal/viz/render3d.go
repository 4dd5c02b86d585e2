package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/googly/internal/geometry"
	"github.com/san-kum/googly/internal/scene"
)

// Camera looks down -Z at the origin with a mild perspective.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(1e4, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(1e-3, c.Zoom/1.2) }

// Fit sets the zoom so a scene of the given half extent fills most of the
// view.
func (c *Camera) Fit(extent float64) {
	if extent > 0 {
		c.Zoom = 1.2 / extent
	}
}

// View is the camera's rotation as a matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(c.RotZ).
		Mul4(mgl64.HomogRotate3DY(c.RotY)).
		Mul4(mgl64.HomogRotate3DX(c.RotX))
}

// PixelScale is the number of dots one world unit spans at the origin.
func (c *Camera) PixelScale(sw, sh int) float64 {
	return c.Zoom * float64(min(sw, sh)) / 3.0
}

// Project converts world coordinates to screen dots. It returns x, y,
// depth, and whether the point lands on screen.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	if !c.InFront(p) {
		return 0, 0, 0, false
	}
	rot := c.View().Mul4x1(p.Vec4(1)).Vec3().Mul(c.Zoom)
	scale := c.Distance / (c.Distance - rot[2])
	ps := float64(min(sw, sh)) / 3.0
	sx := int(rot[0]*scale*ps) + sw/2
	sy := int(-rot[1]*scale*ps) + sh/2
	return sx, sy, rot[2], sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// InFront reports whether p lies ahead of the near plane. Project's
// coordinates are meaningless for points that do not.
func (c *Camera) InFront(p mgl64.Vec3) bool {
	rot := c.View().Mul4x1(p.Vec4(1)).Vec3().Mul(c.Zoom)
	return rot[2] < c.Distance-c.Near
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p mgl64.Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()                  { w.Edges = w.Edges[:0] }

// EdgeCache memoizes mesh edges per geometry, which rig meshes share.
type EdgeCache map[*geometry.Geometry][]geometry.Edge

func (ec EdgeCache) get(g *geometry.Geometry) []geometry.Edge {
	if e, ok := ec[g]; ok {
		return e
	}
	e := g.Edges()
	ec[g] = e
	return e
}

// AddScene appends the world-space edges of every mesh under root for which
// keep returns true. A nil keep accepts all meshes.
func (w *Wireframe) AddScene(root *scene.Node, cache EdgeCache, keep func(*scene.Node) bool) {
	root.Walk(func(n *scene.Node) bool {
		mesh := n.Mesh()
		if mesh == nil || mesh.Geometry == nil || (keep != nil && !keep(n)) {
			return true
		}
		world := n.WorldMatrix()
		for _, e := range cache.get(mesh.Geometry) {
			a := world.Mul4x1(e.A.Vec4(1)).Vec3()
			b := world.Mul4x1(e.B.Vec4(1)).Vec3()
			w.AddEdge(a, b)
		}
		return true
	})
}

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
}

// Render3D draws the wireframe far-to-near onto the canvas.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.PixelSize()
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if !cam.InFront(e.Start) || !cam.InFront(e.End) {
			continue
		}
		if v1 || v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	for _, e := range proj {
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			c.Set(e.X1, e.Y1)
		} else {
			c.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		}
	}
}
