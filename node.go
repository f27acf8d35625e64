package bloom

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// ClickContext carries click event data.
type ClickContext struct {
	Node      *Node
	EntityID  uint32
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
}

// nodeIDCounter is a plain counter (no atomic, the scene is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Groups are the animation groups the node answers to, e.g. "sunflower"
	// or "message-2". A node may belong to several.
	Groups []string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation is in degrees, clockwise.
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Ordering
	ZIndex int

	// Metadata
	UserData any
	EntityID uint32

	BlendMode BlendMode
	Color     Color

	// Mesh fields (NodeTypeMesh)
	Vertices         []ebiten.Vertex
	Indices          []uint16
	MeshImage        *ebiten.Image
	transformedVerts []ebiten.Vertex // preallocated transform buffer

	// Particle fields (NodeTypeParticleEmitter)
	Emitter *ParticleEmitter

	// Text fields (NodeTypeText)
	Label *Label

	// Hit testing
	HitShape HitShape

	// OnClick fires on press then release over the node.
	OnClick func(ClickContext)
	// OnUpdate runs once per Scene.Update with the frame delta in seconds.
	OnUpdate func(dt float64)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewMesh creates a mesh node that uses DrawTriangles for rendering. A nil
// img draws with WhitePixel, so the node's Color is the fill.
func NewMesh(name string, img *ebiten.Image, vertices []ebiten.Vertex, indices []uint16) *Node {
	if img == nil {
		img = WhitePixel()
	}
	n := &Node{
		Name:      name,
		Type:      NodeTypeMesh,
		MeshImage: img,
		Vertices:  vertices,
		Indices:   indices,
	}
	nodeDefaults(n)
	return n
}

// NewParticleEmitter creates a particle emitter node with a preallocated pool.
func NewParticleEmitter(name string, cfg EmitterConfig) *Node {
	n := &Node{
		Name:      name,
		Type:      NodeTypeParticleEmitter,
		BlendMode: cfg.BlendMode,
		Emitter:   newParticleEmitter(cfg),
	}
	nodeDefaults(n)
	return n
}

// NewText creates a text node. Its origin is the center of the line.
func NewText(name, content string, size float64) *Node {
	n := &Node{
		Name:  name,
		Type:  NodeTypeText,
		Label: newLabel(content, size),
	}
	nodeDefaults(n)
	return n
}

// --- Groups ---

// AddGroup adds the node to group. Adding twice is a no-op.
func (n *Node) AddGroup(group string) {
	if !n.InGroup(group) {
		n.Groups = append(n.Groups, group)
	}
}

// InGroup reports whether the node belongs to group.
func (n *Node) InGroup(group string) bool {
	return slices.Contains(n.Groups, group)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("bloom: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("bloom: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
	}
	if child.Parent != n {
		panic("bloom: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Walk calls fn for n and every descendant, depth first in insertion order.
// Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Tweens targeting a disposed node
// stop on their next update.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.MeshImage = nil
	n.transformedVerts = nil
	n.Emitter = nil
	n.Label = nil
	n.UserData = nil
	n.OnClick = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
