package bloom

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxPointers bounds tracked pointers: pointer 0 is the mouse, 1-9 are touches.
const maxPointers = 10

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1, y1 := p.Points[i].X, p.Points[i].Y
		j := (i + 1) % n
		x2, y2 := p.Points[j].X, p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	lastX   float64
	lastY   float64
	hitNode *Node
	button  MouseButton // button captured at press time
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the mesh or text bounds. Containers with no
// HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	b := n.Bounds()
	if b.Width == 0 && b.Height == 0 {
		return false
	}
	return b.Contains(lx, ly)
}

// collectInteractable walks the tree in paint order (DFS, ZIndex-sorted),
// appending hit-testable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range paintOrder(n) {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse paint order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput reads the keyboard, mouse, and touches for this frame.
func (s *Scene) processInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.confirm()
	}
	s.processMousePointer()
	s.processTouchPointers()
}

func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button)
}

func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	// Release slots whose touch ended this frame.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot returns the pointer slot mapped to tid, claiming a free one for a
// new touch. Returns -1 when every slot is taken.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer advances one pointer's press state machine. A click fires
// when the release lands on the node the press started on.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		target := s.hitTest(wx, wy)
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.fire(EventPointerDown, target, pointerID, wx, wy, button)

	case !pressed && ps.down:
		target := s.hitTest(wx, wy)
		if ps.hitNode != nil && ps.hitNode == target {
			s.fire(EventClick, target, pointerID, wx, wy, ps.button)
		}
		s.fire(EventPointerUp, target, pointerID, wx, wy, ps.button)
		ps.down = false
		ps.hitNode = nil
	}
	ps.lastX = wx
	ps.lastY = wy
}

// fire dispatches an event to the node's handler and the entity store.
func (s *Scene) fire(typ EventType, node *Node, pointerID int, wx, wy float64, button MouseButton) {
	var lx, ly float64
	var entityID uint32
	var name string
	if node != nil {
		lx, ly = node.WorldToLocal(wx, wy)
		entityID = node.EntityID
		name = node.Name
	}
	if typ == EventClick && node != nil && node.OnClick != nil {
		node.OnClick(ClickContext{
			Node: node, EntityID: entityID, UserData: node.UserData,
			GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
			Button: button, PointerID: pointerID,
		})
	}
	if s.store != nil {
		s.store.EmitEvent(InteractionEvent{
			Type:     typ,
			EntityID: entityID,
			Name:     name,
			GlobalX:  wx,
			GlobalY:  wy,
			LocalX:   lx,
			LocalY:   ly,
			Button:   button,
		})
	}
}
