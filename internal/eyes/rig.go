package eyes

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/googly/internal/geometry"
	"github.com/san-kum/googly/internal/scene"
)

// Depth scales applied along each socket's forward (local Z) axis.
const (
	socketDepth = -0.05
	irisDepth   = 0.1
	capDepth    = 0.25
)

// Eye groups the nodes and physics of one side of the rig.
type Eye struct {
	Socket  *scene.Node // hemisphere, frame of the simulation
	Iris    *scene.Node
	Cap     *scene.Node // transparent highlight over the iris
	Physics *Particle
}

// Rig is a left/right pair of googly eyes. Attach Node() wherever a group of
// renderable nodes is expected and call Update once per frame.
type Rig struct {
	root        *scene.Node
	left, right Eye
	opts        Options

	gravity float64
	damping float64

	white       *scene.Material
	iris        *scene.Material
	transparent *scene.Material
}

// NewRig builds both sockets, their iris and cap meshes, and the shared
// materials. All geometry is created here; only material references change
// afterwards.
func NewRig(opts Options) (*Rig, error) {
	opts = opts.withDefaults()

	r := &Rig{
		root:    scene.NewGroup("googly-eyes"),
		opts:    opts,
		gravity: DefaultGravity,
		damping: DefaultDamping,
	}

	ws, hs := opts.WidthSegments, opts.HeightSegments
	whiteGeom := geometry.NewSphere(geometry.Hemisphere(opts.EyeRadius, ws, hs, math.Pi)).Scale(1, 1, socketDepth)
	irisGeom := geometry.NewSphere(geometry.FullSphere(opts.IrisRadius, ws, hs)).Scale(1, 1, irisDepth)
	capGeom := geometry.NewSphere(geometry.Hemisphere(opts.EyeRadius, ws, hs, 0)).Scale(1, 1, capDepth)
	whiteGeom.ComputeVertexNormals()
	irisGeom.ComputeVertexNormals()
	capGeom.ComputeVertexNormals()

	r.white = opts.MaterialFactory(whiteParams)
	r.iris = opts.MaterialFactory(irisParams)
	r.transparent = opts.MaterialFactory(capParams)

	half := opts.EyeSpacing * 0.5
	var err error
	r.left, err = r.buildEye("left", -half, opts.InwardRotation, whiteGeom, irisGeom, capGeom)
	if err != nil {
		return nil, err
	}
	r.right, err = r.buildEye("right", half, -opts.InwardRotation, whiteGeom, irisGeom, capGeom)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rig) buildEye(side string, x, yaw float64, whiteGeom, irisGeom, capGeom *geometry.Geometry) (Eye, error) {
	e := Eye{
		Socket: scene.NewMesh(side+"-socket", whiteGeom, r.white),
		Iris:   scene.NewMesh(side+"-iris", irisGeom, r.iris),
		Cap:    scene.NewMesh(side+"-cap", capGeom, r.transparent),
	}
	e.Socket.SetPosition(mgl64.Vec3{x, 0, 0})
	e.Socket.SetRotationY(yaw)

	for _, attach := range []struct{ parent, child *scene.Node }{
		{r.root, e.Socket},
		{e.Socket, e.Iris},
		{e.Socket, e.Cap},
	} {
		if err := attach.parent.AddChild(attach.child); err != nil {
			return Eye{}, fmt.Errorf("attach %s: %w", attach.child.Name, err)
		}
	}

	p, err := NewParticle(e.Iris, r.opts.EyeRadius, r.opts.IrisRadius)
	if err != nil {
		return Eye{}, fmt.Errorf("%s eye: %w", side, err)
	}
	e.Physics = p
	return e, nil
}

// Update steps both irises by dt seconds with the current gravity and damping.
func (r *Rig) Update(dt float64) error {
	if err := r.left.Physics.Update(dt, r.gravity, r.damping); err != nil {
		return fmt.Errorf("left eye: %w", err)
	}
	if err := r.right.Physics.Update(dt, r.gravity, r.damping); err != nil {
		return fmt.Errorf("right eye: %w", err)
	}
	return nil
}

// Reset puts both irises at rest where they currently are.
func (r *Rig) Reset() {
	r.left.Physics.Reset()
	r.right.Physics.Reset()
}

func (r *Rig) Node() *scene.Node { return r.root }
func (r *Rig) Left() Eye         { return r.left }
func (r *Rig) Right() Eye        { return r.right }
func (r *Rig) Options() Options  { return r.opts }

func (r *Rig) Gravity() float64     { return r.gravity }
func (r *Rig) SetGravity(g float64) { r.gravity = g }

// Damping is the fraction of velocity lost per update.
func (r *Rig) Damping() float64     { return r.damping }
func (r *Rig) SetDamping(d float64) { r.damping = d }

func (r *Rig) WhiteMaterial() *scene.Material { return r.white }

// SetWhiteMaterial assigns m to both sockets.
func (r *Rig) SetWhiteMaterial(m *scene.Material) {
	r.white = m
	r.left.Socket.SetMaterial(m)
	r.right.Socket.SetMaterial(m)
}

func (r *Rig) IrisMaterial() *scene.Material { return r.iris }

// SetIrisMaterial assigns m to both irises.
func (r *Rig) SetIrisMaterial(m *scene.Material) {
	r.iris = m
	r.left.Iris.SetMaterial(m)
	r.right.Iris.SetMaterial(m)
}

func (r *Rig) TransparentMaterial() *scene.Material { return r.transparent }

// SetTransparentMaterial assigns m to both caps.
func (r *Rig) SetTransparentMaterial(m *scene.Material) {
	r.transparent = m
	r.left.Cap.SetMaterial(m)
	r.right.Cap.SetMaterial(m)
}
