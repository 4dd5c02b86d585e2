package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/googly/internal/geometry"
)

var (
	// ErrCycle is returned when attaching a node under one of its own descendants.
	ErrCycle = errors.New("scene: adding child would create a cycle")

	// ErrNotChild is returned when detaching a node from something that is not its parent.
	ErrNotChild = errors.New("scene: node is not a child of this parent")
)

// NodeType distinguishes plain groups from renderable meshes.
type NodeType uint8

const (
	NodeTypeGroup NodeType = iota
	NodeTypeMesh
)

// nodeIDCounter is a plain counter; scene mutation is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Mesh pairs a geometry with the material slot it is drawn with. Several
// meshes may point at the same Material.
type Mesh struct {
	Geometry *geometry.Geometry
	Material *Material
}

// Node is a scene graph element with a local pose relative to its parent.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	parent   *Node
	children []*Node

	position mgl64.Vec3
	rotation mgl64.Quat
	scale    mgl64.Vec3

	mesh *Mesh
}

func newNode(name string, typ NodeType) *Node {
	return &Node{
		ID:       nextNodeID(),
		Name:     name,
		Type:     typ,
		rotation: mgl64.QuatIdent(),
		scale:    mgl64.Vec3{1, 1, 1},
	}
}

// NewGroup creates a node with no visual representation.
func NewGroup(name string) *Node {
	return newNode(name, NodeTypeGroup)
}

// NewMesh creates a renderable node drawing geom with mat.
func NewMesh(name string, geom *geometry.Geometry, mat *Material) *Node {
	n := newNode(name, NodeTypeMesh)
	n.mesh = &Mesh{Geometry: geom, Material: mat}
	return n
}

// Mesh returns the mesh slot, or nil for groups.
func (n *Node) Mesh() *Mesh { return n.mesh }

// Material returns the material currently assigned to a mesh node.
func (n *Node) Material() *Material {
	if n.mesh == nil {
		return nil
	}
	return n.mesh.Material
}

// SetMaterial reassigns the mesh material. No-op on groups.
func (n *Node) SetMaterial(m *Material) {
	if n.mesh == nil {
		return
	}
	n.mesh.Material = m
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, detaching it from any
// previous parent first. Panics if child is nil.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if isAncestor(child, n) {
		return ErrCycle
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches child from this node.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.parent != n {
		return ErrNotChild
	}
	n.removeChildByPtr(child)
	child.parent = nil
	return nil
}

// RemoveFromParent detaches this node from its parent. No-op for roots.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.removeChildByPtr(n)
	n.parent = nil
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// Root walks up the parent chain.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the subtree below that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// isAncestor reports whether candidate is n or one of n's ancestors.
func isAncestor(candidate, n *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
