package bloom

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// maxTweenFields bounds how many fields one TweenGroup drives.
const maxTweenFields = 6

// TweenGroup animates up to six float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenAlpha, TweenScale,
// TweenPosition) or NewTweenGroup and call Update(dt) each frame. The group
// auto-applies values and marks the node dirty. If the target node is
// disposed, the group stops immediately.
//
// A group with Yoyo set never finishes: every time its tweens complete they
// swap ends and play back.
type TweenGroup struct {
	tweens   [maxTweenFields]*gween.Tween
	from, to [maxTweenFields]float32
	fields   [maxTweenFields]*float64
	count    int
	duration float32
	fn       ease.TweenFunc
	target   *Node

	Yoyo bool
	Done bool
}

// NewTweenGroup creates an empty group on node. Add fields with Add.
func NewTweenGroup(node *Node, duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	return &TweenGroup{target: node, duration: duration, fn: fn}
}

// Add animates field from its current value to to. Fields past the sixth are
// ignored and Add reports false.
func (g *TweenGroup) Add(field *float64, to float64) bool {
	if g.count == maxTweenFields {
		return false
	}
	i := g.count
	g.from[i] = float32(*field)
	g.to[i] = float32(to)
	g.fields[i] = field
	g.tweens[i] = gween.New(g.from[i], g.to[i], g.duration, g.fn)
	g.count++
	return true
}

// Len returns the number of animated fields.
func (g *TweenGroup) Len() int {
	return g.count
}

// Target returns the node the group writes to.
func (g *TweenGroup) Target() *Node {
	return g.target
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if g.target != nil {
		g.target.MarkDirty()
	}
	if !allDone {
		return
	}
	if !g.Yoyo {
		g.Done = true
		return
	}

	// Swap ends and carry the time past the end into the return trip.
	var overflow float32
	if g.count > 0 {
		overflow = g.tweens[0].Overflow
	}
	for i := 0; i < g.count; i++ {
		g.from[i], g.to[i] = g.to[i], g.from[i]
		g.tweens[i] = gween.New(g.from[i], g.to[i], g.duration, g.fn)
	}
	if overflow > 0 && overflow < g.duration {
		g.Update(overflow)
	}
}

// Stop ends the group where it is.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := NewTweenGroup(node, duration, fn)
	g.Add(&node.X, toX)
	g.Add(&node.Y, toY)
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := NewTweenGroup(node, duration, fn)
	g.Add(&node.ScaleX, toSX)
	g.Add(&node.ScaleY, toSY)
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := NewTweenGroup(node, duration, fn)
	g.Add(&node.Alpha, to)
	return g
}

// TweenRotation creates a TweenGroup that animates node.Rotation to the target
// value in degrees over the specified duration using the easing function.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := NewTweenGroup(node, duration, fn)
	g.Add(&node.Rotation, to)
	return g
}
