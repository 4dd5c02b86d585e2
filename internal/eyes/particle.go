package eyes

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/googly/internal/scene"
)

// ErrDetached indicates the iris node has no socket parent to simulate in.
var ErrDetached = errors.New("eyes: iris node is not attached to a socket")

// Particle simulates one iris as a Verlet point confined to a disk in the
// local XY plane of its parent socket. It writes the result into the target
// node's local position but does not own the node.
type Particle struct {
	target     *scene.Node
	eyeRadius  float64
	irisRadius float64
	maxOffset  float64

	worldPos mgl64.Vec3
	prevPos  mgl64.Vec3
}

// NewParticle binds a particle to target, starting at rest at the target's
// current world position. target must already be attached to its socket.
func NewParticle(target *scene.Node, eyeRadius, irisRadius float64) (*Particle, error) {
	if target == nil || target.Parent() == nil {
		return nil, ErrDetached
	}
	p := &Particle{
		target:     target,
		eyeRadius:  eyeRadius,
		irisRadius: irisRadius,
		maxOffset:  eyeRadius - irisRadius,
	}
	p.Reset()
	return p, nil
}

// Update advances the particle by dt seconds. Velocity is implicit in the
// difference between the current and previous world positions. gravity and
// damping are supplied per call; damping is the fraction of velocity lost.
func (p *Particle) Update(dt, gravity, damping float64) error {
	socket := p.target.Parent()
	if socket == nil {
		return ErrDetached
	}

	v := p.worldPos.Sub(p.prevPos)
	p.prevPos = p.worldPos
	v[1] -= gravity * dt
	v = v.Mul(1 - damping)
	next := p.worldPos.Add(v)

	local := socket.WorldToLocal(next)
	local[2] = 0
	local = clampPlanar(local, p.maxOffset)

	p.target.SetPosition(local)
	p.worldPos = socket.LocalToWorld(local)
	return nil
}

// Reset re-reads the target's world position and zeroes the velocity.
func (p *Particle) Reset() {
	p.worldPos = p.target.WorldPosition()
	p.prevPos = p.worldPos
}

func (p *Particle) Target() *scene.Node       { return p.target }
func (p *Particle) EyeRadius() float64        { return p.eyeRadius }
func (p *Particle) IrisRadius() float64       { return p.irisRadius }
func (p *Particle) MaxOffset() float64        { return p.maxOffset }
func (p *Particle) WorldPosition() mgl64.Vec3 { return p.worldPos }

// Velocity is the world-space displacement over the last step.
func (p *Particle) Velocity() mgl64.Vec3 {
	return p.worldPos.Sub(p.prevPos)
}

// clampPlanar pulls v radially back onto the circle of radius limit when it
// lies outside. A non-positive limit pins v to the origin.
func clampPlanar(v mgl64.Vec3, limit float64) mgl64.Vec3 {
	if limit <= 0 {
		return mgl64.Vec3{}
	}
	d := math.Hypot(v[0], v[1])
	if d > limit {
		v = v.Mul(limit / d)
	}
	return v
}
