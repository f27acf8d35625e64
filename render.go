package bloom

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandMesh     CommandType = iota // DrawTriangles
	CommandParticle                    // one DrawTriangles for every alive particle
	CommandText                        // text.Draw
)

// RenderCommand is a single draw instruction emitted during scene traversal.
// Commands are emitted in paint order, so no sort pass follows.
type RenderCommand struct {
	Type      CommandType
	Transform [6]float64
	Color     Color
	BlendMode BlendMode

	// Mesh-only fields (slice headers, not copies of vertex data).
	meshVerts []ebiten.Vertex
	meshInds  []uint16
	meshImage *ebiten.Image

	emitter *ParticleEmitter
	label   *Label
}

// traverse walks the node tree depth-first, updating transforms and emitting
// render commands for visible leaf nodes. Children are visited in ZIndex order.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.worldAlpha > 0 {
		switch n.Type {
		case NodeTypeMesh:
			if len(n.Vertices) > 0 && len(n.Indices) > 0 {
				tint := Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha}
				dst := ensureTransformedVerts(n)
				transformVertices(n.Vertices, dst, n.worldTransform, tint)
				s.commands = append(s.commands, RenderCommand{
					Type:      CommandMesh,
					Transform: n.worldTransform,
					BlendMode: n.BlendMode,
					meshVerts: dst,
					meshInds:  n.Indices,
					meshImage: n.MeshImage,
				})
			}
		case NodeTypeParticleEmitter:
			if n.Emitter != nil && n.Emitter.alive > 0 {
				s.commands = append(s.commands, RenderCommand{
					Type:      CommandParticle,
					Transform: n.worldTransform,
					Color:     Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha},
					BlendMode: n.BlendMode,
					emitter:   n.Emitter,
				})
			}
		case NodeTypeText:
			if n.Label != nil {
				s.commands = append(s.commands, RenderCommand{
					Type:      CommandText,
					Transform: n.worldTransform,
					Color:     Color{A: n.worldAlpha},
					label:     n.Label,
				})
			}
		}
	}

	if len(n.children) == 0 {
		return
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	children := n.children
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a
// node. The insertion sort is stable, so equal ZIndex keeps insertion order.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// paintOrder returns the children of n in the order they are drawn.
func paintOrder(n *Node) []*Node {
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		return n.sortedChildren
	}
	return n.children
}

// --- Submission ---

// submit draws the command list to target in order.
func (s *Scene) submit(target *ebiten.Image) {
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandMesh:
			submitMesh(target, cmd)
		case CommandParticle:
			s.submitParticles(target, cmd)
		case CommandText:
			cmd.label.draw(target, cmd.Transform, cmd.Color.A)
		}
	}
}

// submitMesh draws a mesh command using DrawTriangles.
func submitMesh(target *ebiten.Image, cmd *RenderCommand) {
	if cmd.meshImage == nil || len(cmd.meshVerts) == 0 || len(cmd.meshInds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = cmd.BlendMode.EbitenBlend()
	target.DrawTriangles(cmd.meshVerts, cmd.meshInds, cmd.meshImage, &op)
}

// submitParticles coalesces every alive particle of an emitter into a single
// DrawTriangles call, one copy of the emitter's shape per particle.
func (s *Scene) submitParticles(target *ebiten.Image, cmd *RenderCommand) {
	e := cmd.emitter
	if e == nil || e.alive == 0 {
		return
	}
	ba, bb, bc, bd, btx, bty := cmd.Transform[0], cmd.Transform[1], cmd.Transform[2], cmd.Transform[3], cmd.Transform[4], cmd.Transform[5]

	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]
	nv := len(e.shapeVerts)

	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		if nv*(i+1) > math.MaxUint16 {
			break
		}
		sin, cos := math.Sincos(p.rotation * math.Pi / 180)
		a := float32(p.alpha * cmd.Color.A)
		r := float32(p.color.R*cmd.Color.R) * a
		g := float32(p.color.G*cmd.Color.G) * a
		b := float32(p.color.B*cmd.Color.B) * a

		base := uint16(len(s.batchVerts))
		for _, v := range e.shapeVerts {
			// particle local: scale, rotate, translate
			lx := (v.X*cos-v.Y*sin)*p.scale + p.x
			ly := (v.X*sin+v.Y*cos)*p.scale + p.y
			s.batchVerts = append(s.batchVerts, ebiten.Vertex{
				DstX:   float32(ba*lx + bc*ly + btx),
				DstY:   float32(bb*lx + bd*ly + bty),
				SrcX:   0.5,
				SrcY:   0.5,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			})
		}
		for _, idx := range e.shapeInds {
			s.batchInds = append(s.batchInds, base+idx)
		}
	}

	var op ebiten.DrawTrianglesOptions
	op.Blend = cmd.BlendMode.EbitenBlend()
	target.DrawTriangles(s.batchVerts, s.batchInds, WhitePixel(), &op)
}
