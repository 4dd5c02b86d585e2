package viz

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/googly/internal/eyes"
	"github.com/san-kum/googly/internal/scene"
)

func TestCameraProject(t *testing.T) {
	cam := NewCamera()

	x, y, _, ok := cam.Project(mgl64.Vec3{}, 160, 96)
	if !ok || x != 80 || y != 48 {
		t.Errorf("origin should project to centre, got (%d, %d, %v)", x, y, ok)
	}

	x, y, _, _ = cam.Project(mgl64.Vec3{1, 0, 0}, 160, 96)
	if x != 112 || y != 48 {
		t.Errorf("expected (112, 48), got (%d, %d)", x, y)
	}

	cam.RotateZ(math.Pi / 2)
	x, y, _, _ = cam.Project(mgl64.Vec3{1, 0, 0}, 160, 96)
	if x != 80 || y != 16 {
		t.Errorf("quarter roll should map +X to up, got (%d, %d)", x, y)
	}

	if _, _, _, ok := NewCamera().Project(mgl64.Vec3{0, 0, 60}, 160, 96); ok {
		t.Error("point behind the camera should be hidden")
	}
}

func TestCameraFitAndZoom(t *testing.T) {
	cam := NewCamera()
	cam.Fit(0.5)
	if math.Abs(cam.Zoom-2.4) > 1e-12 {
		t.Errorf("expected zoom 2.4, got %v", cam.Zoom)
	}
	cam.Fit(0)
	if math.Abs(cam.Zoom-2.4) > 1e-12 {
		t.Error("zero extent should leave zoom alone")
	}
	cam.ZoomIn()
	if cam.Zoom <= 2.4 {
		t.Error("zoom in should increase zoom")
	}
	if s := cam.PixelScale(160, 96); math.Abs(s-cam.Zoom*32) > 1e-9 {
		t.Errorf("unexpected pixel scale %v", s)
	}
}

func TestRender3D(t *testing.T) {
	c := NewCanvas(80, 24)
	w := NewWireframe()
	w.AddEdge(mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{1, 0, 0})
	w.AddPoint(mgl64.Vec3{0, 1, 0})

	Render3D(c, w, NewCamera())
	if !c.IsSet(80, 48) || !c.IsSet(48, 48) || !c.IsSet(112, 48) {
		t.Error("expected horizontal line through the centre")
	}
	if !c.IsSet(80, 16) {
		t.Error("expected point above the centre")
	}

	w.Clear()
	if len(w.Edges) != 0 {
		t.Error("clear should drop edges")
	}
	Render3D(nil, w, nil)
}

func TestRender3DSkipsEdgesBehindCamera(t *testing.T) {
	c := NewCanvas(80, 24)
	w := NewWireframe()
	w.AddEdge(mgl64.Vec3{}, mgl64.Vec3{0, 0, 60})

	Render3D(c, w, NewCamera())
	if c.IsSet(0, 0) || c.IsSet(40, 24) {
		t.Error("edge to a point behind the camera drew a line toward the corner")
	}
	if c.IsSet(80, 48) {
		t.Error("expected the whole edge to be dropped")
	}
}

func TestWireframeAddScene(t *testing.T) {
	rig, err := eyes.NewRig(eyes.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	per := len(rig.Left().Socket.Mesh().Geometry.Edges()) +
		len(rig.Left().Iris.Mesh().Geometry.Edges()) +
		len(rig.Left().Cap.Mesh().Geometry.Edges())

	cache := make(EdgeCache)
	w := NewWireframe()
	w.AddScene(rig.Node(), cache, nil)
	if len(w.Edges) != 2*per {
		t.Errorf("expected %d edges, got %d", 2*per, len(w.Edges))
	}
	if len(cache) != 3 {
		t.Errorf("expected 3 shared geometries cached, got %d", len(cache))
	}

	left, right := 0, 0
	for _, e := range w.Edges {
		switch {
		case e.Start[0] < 0:
			left++
		case e.Start[0] > 0:
			right++
		}
	}
	if left != right || left+right != len(w.Edges) {
		t.Errorf("edges should split evenly across the eyes: %d left, %d right", left, right)
	}

	w.Clear()
	w.AddScene(rig.Node(), cache, func(n *scene.Node) bool { return !n.Material().Transparent })
	capEdges := len(rig.Left().Cap.Mesh().Geometry.Edges())
	if len(w.Edges) != 2*(per-capEdges) {
		t.Errorf("filter should drop the caps: got %d edges", len(w.Edges))
	}
}
