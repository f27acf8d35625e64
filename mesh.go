package bloom

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// transformVertices applies an affine transform and color tint to src vertices,
// writing the result into dst. dst must be at least len(src) in length.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
// newX = a*x + c*y + tx, newY = b*x + d*y + ty
//
// Color components are multiplied (vertex color * tint) and premultiplied by
// the tint's alpha, which already has worldAlpha baked in.
func transformVertices(src, dst []ebiten.Vertex, transform [6]float64, tint Color) {
	a, b, c, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]
	cr := float32(tint.R)
	cg := float32(tint.G)
	cb := float32(tint.B)
	ca := float32(tint.A)

	for i := range src {
		s := &src[i]
		ox := float64(s.DstX)
		oy := float64(s.DstY)
		dst[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   s.SrcX,
			SrcY:   s.SrcY,
			ColorR: s.ColorR * cr * ca,
			ColorG: s.ColorG * cg * ca,
			ColorB: s.ColorB * cb * ca,
			ColorA: s.ColorA * ca,
		}
	}
}

// ensureTransformedVerts grows the node's transformedVerts buffer to fit
// len(n.Vertices), using a high-water-mark strategy (never shrinks).
func ensureTransformedVerts(n *Node) []ebiten.Vertex {
	need := len(n.Vertices)
	if cap(n.transformedVerts) < need {
		n.transformedVerts = make([]ebiten.Vertex, need)
	}
	n.transformedVerts = n.transformedVerts[:need]
	return n.transformedVerts
}

// meshBounds returns the local-space bounding box of the mesh vertices.
func meshBounds(verts []ebiten.Vertex) Rect {
	if len(verts) == 0 {
		return Rect{}
	}
	minX, minY := verts[0].DstX, verts[0].DstY
	maxX, maxY := minX, minY
	for _, v := range verts[1:] {
		minX = min(minX, v.DstX)
		minY = min(minY, v.DstY)
		maxX = max(maxX, v.DstX)
		maxY = max(maxY, v.DstY)
	}
	return Rect{X: float64(minX), Y: float64(minY), Width: float64(maxX - minX), Height: float64(maxY - minY)}
}

// Bounds returns the local-space bounding box of a mesh node, or the measured
// line box of a text node. Other nodes report an empty rect.
func (n *Node) Bounds() Rect {
	switch n.Type {
	case NodeTypeMesh:
		return meshBounds(n.Vertices)
	case NodeTypeText:
		if n.Label != nil {
			w, h := n.Label.Measure()
			return Rect{X: -w / 2, Y: -h / 2, Width: w, Height: h}
		}
	}
	return Rect{}
}
