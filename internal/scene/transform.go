package scene

import "github.com/go-gl/mathgl/mgl64"

var yAxis = mgl64.Vec3{0, 1, 0}

// --- Local pose ---

// Position returns the local position relative to the parent.
func (n *Node) Position() mgl64.Vec3 { return n.position }

// SetPosition sets the local position.
func (n *Node) SetPosition(p mgl64.Vec3) { n.position = p }

// Translate adds d to the local position.
func (n *Node) Translate(d mgl64.Vec3) { n.position = n.position.Add(d) }

// Rotation returns the local orientation.
func (n *Node) Rotation() mgl64.Quat { return n.rotation }

// SetRotation sets the local orientation.
func (n *Node) SetRotation(q mgl64.Quat) { n.rotation = q }

// SetRotationY sets the local orientation to a rotation of angle radians
// about the local Y axis.
func (n *Node) SetRotationY(angle float64) {
	n.rotation = mgl64.QuatRotate(angle, yAxis)
}

// SetEulerRotation sets the orientation from XYZ Euler angles in radians.
func (n *Node) SetEulerRotation(x, y, z float64) {
	n.rotation = mgl64.AnglesToQuat(x, y, z, mgl64.XYZ)
}

// Scale returns the local scale.
func (n *Node) Scale() mgl64.Vec3 { return n.scale }

// SetScale sets the local scale.
func (n *Node) SetScale(s mgl64.Vec3) { n.scale = s }

// --- Matrices ---

// LocalMatrix composes Translate * Rotate * Scale.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.position[0], n.position[1], n.position[2])
	r := n.rotation.Mat4()
	s := mgl64.Scale3D(n.scale[0], n.scale[1], n.scale[2])
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix multiplies local matrices from the root down. It is computed
// on demand so edits to any ancestor are visible immediately.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul4(n.LocalMatrix())
}

// --- Coordinate conversion ---

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// LocalToWorld converts a point in this node's local space to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(n.WorldMatrix(), p)
}

// WorldToLocal converts a world-space point into this node's local space.
// A singular world matrix (zero scale) maps everything to the origin.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(n.WorldMatrix().Inv(), p)
}

func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}
