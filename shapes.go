package bloom

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultSegments is the vertex count of curved outlines.
const defaultSegments = 24

// NewPolygon creates an untextured polygon mesh from the given outline. The
// outline must be star-shaped around its centroid (every convex shape, hearts
// and stars qualify). Color comes from the node's Color field.
func NewPolygon(name string, points []Vec2) *Node {
	verts, inds := buildPolygonFan(points)
	return NewMesh(name, WhitePixel(), verts, inds)
}

// SetPolygonPoints replaces the polygon's outline, reusing backing arrays.
func SetPolygonPoints(n *Node, points []Vec2) {
	verts, inds := buildPolygonFan(points)
	n.Vertices = append(n.Vertices[:0], verts...)
	n.Indices = append(n.Indices[:0], inds...)
}

// buildPolygonFan triangulates an outline as a fan around its centroid.
// N points give N+1 vertices and 3N indices.
func buildPolygonFan(points []Vec2) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}
	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(n)
	cy /= float64(n)

	verts := make([]ebiten.Vertex, n+1)
	inds := make([]uint16, 0, n*3)
	verts[0] = whiteVertex(cx, cy)
	for i, p := range points {
		verts[i+1] = whiteVertex(p.X, p.Y)
		j := (i+1)%n + 1
		inds = append(inds, 0, uint16(i+1), uint16(j))
	}
	return verts, inds
}

// whiteVertex maps to the center of the white pixel so the node tint is the
// fill color.
func whiteVertex(x, y float64) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
	}
}

// --- Outlines ---

// EllipsePoints returns an ellipse outline centered on (cx, cy).
func EllipsePoints(cx, cy, rx, ry float64, segments int) []Vec2 {
	if segments < 3 {
		segments = defaultSegments
	}
	pts := make([]Vec2, segments)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		pts[i] = Vec2{cx + rx*cos, cy + ry*sin}
	}
	return pts
}

// PetalPoints returns a petal whose base sits at the origin and whose tip
// points up (negative Y).
func PetalPoints(width, length float64) []Vec2 {
	return EllipsePoints(0, -length/2, width/2, length/2, defaultSegments)
}

// LeafPoints returns a pointed lens from the origin up to (0, -height).
func LeafPoints(width, height float64) []Vec2 {
	const half = defaultSegments / 2
	pts := make([]Vec2, 0, 2*half)
	for i := 0; i < half; i++ {
		t := float64(i) / half
		pts = append(pts, Vec2{width / 2 * math.Sin(math.Pi*t), -height * t})
	}
	for i := 0; i < half; i++ {
		t := 1 - float64(i)/half
		pts = append(pts, Vec2{-width / 2 * math.Sin(math.Pi*t), -height * t})
	}
	return pts
}

// BladePoints returns a grass blade rooted at the origin, tapering to a tip
// at height. bend shifts the tip sideways.
func BladePoints(width, height, bend float64) []Vec2 {
	const steps = 6
	pts := make([]Vec2, 0, 2*steps+1)
	for i := 0; i < steps; i++ {
		t := float64(i) / steps
		pts = append(pts, Vec2{width/2*(1-t) + bend*t*t, -height * t})
	}
	pts = append(pts, Vec2{bend, -height})
	for i := steps - 1; i >= 0; i-- {
		t := float64(i) / steps
		pts = append(pts, Vec2{-width/2*(1-t) + bend*t*t, -height * t})
	}
	return pts
}

// HeartPoints returns a heart of the given width centered on the origin.
func HeartPoints(size float64) []Vec2 {
	k := size / 34
	pts := make([]Vec2, defaultSegments)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(len(pts))
		s := math.Sin(t)
		pts[i] = Vec2{
			X: k * 16 * s * s * s,
			Y: -k * (13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)),
		}
	}
	return pts
}

// StarPoints returns a star with the given number of tips, tip up.
func StarPoints(outer, inner float64, tips int) []Vec2 {
	if tips < 2 {
		tips = 4
	}
	pts := make([]Vec2, 2*tips)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := math.Pi*float64(i)/float64(tips) - math.Pi/2
		pts[i] = Vec2{r * math.Cos(a), r * math.Sin(a)}
	}
	return pts
}

// RoundedRectPoints returns a rectangle of size w×h centered on the origin
// with corner radius r.
func RoundedRectPoints(w, h, r float64) []Vec2 {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	const arc = 5
	corners := [4]Vec2{
		{w/2 - r, -h/2 + r},
		{w/2 - r, h/2 - r},
		{-w/2 + r, h/2 - r},
		{-w/2 + r, -h/2 + r},
	}
	pts := make([]Vec2, 0, 4*(arc+1))
	for c, o := range corners {
		start := -math.Pi/2 + float64(c)*math.Pi/2
		for i := 0; i <= arc; i++ {
			sin, cos := math.Sincos(start + math.Pi/2*float64(i)/arc)
			pts = append(pts, Vec2{o.X + r*cos, o.Y + r*sin})
		}
	}
	return pts
}
