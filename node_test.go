package bloom

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewMeshDefaults(t *testing.T) {
	verts := []ebiten.Vertex{{DstX: 0, DstY: 0}}
	inds := []uint16{0}
	n := NewMesh("mesh", nil, verts, inds)
	assertNodeDefaults(t, n, "mesh", NodeTypeMesh)
	if len(n.Vertices) != 1 || len(n.Indices) != 1 {
		t.Errorf("Vertices/Indices not set")
	}
	if n.MeshImage != WhitePixel() {
		t.Error("nil image should fall back to WhitePixel")
	}
}

func TestNewParticleEmitterDefaults(t *testing.T) {
	n := NewParticleEmitter("emitter", EmitterConfig{BlendMode: BlendAdd})
	assertNodeDefaults(t, n, "emitter", NodeTypeParticleEmitter)
	if n.Emitter == nil {
		t.Fatal("Emitter is nil")
	}
	if n.BlendMode != BlendAdd {
		t.Errorf("BlendMode = %v, want config's", n.BlendMode)
	}
}

func TestNewTextDefaults(t *testing.T) {
	n := NewText("text", "hello", 20)
	assertNodeDefaults(t, n, "text", NodeTypeText)
	if n.Label == nil || n.Label.Content != "hello" || n.Label.Size() != 20 {
		t.Errorf("Label = %+v", n.Label)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if n.Color != ColorWhite {
		t.Errorf("Color = %v, want white", n.Color)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs collide: %d", a.ID)
	}
}

// --- Groups ---

func TestGroups(t *testing.T) {
	n := NewContainer("petal")
	n.AddGroup("sunflower-petal")
	n.AddGroup("sunflower-petal")
	n.AddGroup("message")
	if len(n.Groups) != 2 {
		t.Errorf("Groups = %v, want two entries", n.Groups)
	}
	if !n.InGroup("message") || n.InGroup("rose") {
		t.Errorf("InGroup wrong for %v", n.Groups)
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	if child.Parent != parent {
		t.Error("Parent not set")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Error("child not appended")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)
	b.AddChild(child)
	if a.NumChildren() != 0 {
		t.Error("old parent still holds child")
	}
	if child.Parent != b {
		t.Error("Parent not updated")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewContainer("p").AddChild(nil) }},
		{"self", func() {
			n := NewContainer("n")
			n.AddChild(n)
		}},
		{"cycle", func() {
			a := NewContainer("a")
			b := NewContainer("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.RemoveFromParent()
	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("child not removed")
	}
	// No parent: no-op.
	child.RemoveFromParent()
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewContainer("a").RemoveChild(NewContainer("b"))
}

func TestWalkSkipsSubtree(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	a1 := NewContainer("a1")
	b := NewContainer("b")
	root.AddChild(a)
	a.AddChild(a1)
	root.AddChild(b)

	var seen []string
	root.Walk(func(n *Node) bool {
		seen = append(seen, n.Name)
		return n.Name != "a"
	})
	want := []string{"root", "a", "b"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestPaintOrderFollowsZIndex(t *testing.T) {
	root := NewContainer("root")
	front := NewContainer("front")
	front.ZIndex = 5
	back := NewContainer("back")
	back.ZIndex = -1
	mid1 := NewContainer("mid1")
	mid2 := NewContainer("mid2")
	root.AddChild(front)
	root.AddChild(mid1)
	root.AddChild(back)
	root.AddChild(mid2)

	got := paintOrder(root)
	want := []*Node{back, mid1, mid2, front}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, got[i].Name, want[i].Name)
		}
	}

	mid2.SetZIndex(10)
	if got := paintOrder(root); got[len(got)-1] != mid2 {
		t.Errorf("after SetZIndex last = %q, want mid2", got[len(got)-1].Name)
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	n := NewContainer("n")
	child := NewContainer("child")
	n.OnUpdate = func(float64) {}
	parent.AddChild(n)
	n.AddChild(child)

	n.Dispose()
	if !n.IsDisposed() || !child.IsDisposed() {
		t.Error("subtree not disposed")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed node still attached")
	}
	if n.ID != 0 || n.OnUpdate != nil {
		t.Error("fields not cleared")
	}
	// Twice is a no-op.
	n.Dispose()
}

func TestDebugAddDisposedPanics(t *testing.T) {
	globalDebug = true
	defer func() { globalDebug = false }()

	n := NewContainer("gone")
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a disposed node in debug mode")
		}
	}()
	NewContainer("parent").AddChild(n)
}
