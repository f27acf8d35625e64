package bloom

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func assertNear32(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestTweenPosition(t *testing.T) {
	n := NewContainer("n")
	g := TweenPosition(n, 100, 50, 1, ease.Linear)
	if g.Len() != 2 || g.Target() != n {
		t.Fatalf("Len = %d, Target = %v", g.Len(), g.Target())
	}
	g.Update(0.5)
	assertNear32(t, "X", n.X, 50)
	assertNear32(t, "Y", n.Y, 25)
	if g.Done {
		t.Error("done halfway")
	}
	if !n.transformDirty {
		t.Error("node not marked dirty")
	}
	g.Update(0.5)
	assertNear32(t, "X", n.X, 100)
	assertNear32(t, "Y", n.Y, 50)
	if !g.Done {
		t.Error("not done at the end")
	}
}

func TestTweenScaleAlphaRotation(t *testing.T) {
	n := NewContainer("n")
	s := TweenScale(n, 2, 3, 1, ease.Linear)
	a := TweenAlpha(n, 0, 1, ease.Linear)
	r := TweenRotation(n, 90, 1, ease.Linear)
	for _, g := range []*TweenGroup{s, a, r} {
		g.Update(1)
	}
	assertNear32(t, "ScaleX", n.ScaleX, 2)
	assertNear32(t, "ScaleY", n.ScaleY, 3)
	assertNear32(t, "Alpha", n.Alpha, 0)
	assertNear32(t, "Rotation", n.Rotation, 90)
}

func TestTweenGroupNilEaseIsLinear(t *testing.T) {
	n := NewContainer("n")
	g := NewTweenGroup(n, 2, nil)
	g.Add(&n.X, 10)
	g.Update(1)
	assertNear32(t, "X", n.X, 5)
}

func TestTweenGroupFieldLimit(t *testing.T) {
	n := NewContainer("n")
	g := NewTweenGroup(n, 1, ease.Linear)
	fields := []*float64{&n.X, &n.Y, &n.ScaleX, &n.ScaleY, &n.Rotation, &n.Alpha}
	for _, f := range fields {
		if !g.Add(f, 1) {
			t.Fatal("Add refused a field under the limit")
		}
	}
	if g.Add(&n.PivotX, 1) {
		t.Error("Add accepted a seventh field")
	}
	if g.Len() != maxTweenFields {
		t.Errorf("Len = %d", g.Len())
	}
}

func TestTweenGroupYoyo(t *testing.T) {
	n := NewContainer("n")
	g := TweenRotation(n, 10, 1, ease.Linear)
	g.Yoyo = true

	g.Update(1)
	assertNear32(t, "out", n.Rotation, 10)
	if g.Done {
		t.Fatal("yoyo group finished")
	}
	g.Update(0.5)
	assertNear32(t, "back halfway", n.Rotation, 5)
	g.Update(0.5)
	assertNear32(t, "back", n.Rotation, 0)
	g.Update(0.25)
	assertNear32(t, "out again", n.Rotation, 2.5)
}

func TestTweenGroupYoyoCarriesOverflow(t *testing.T) {
	n := NewContainer("n")
	g := TweenPosition(n, 10, 0, 1, ease.Linear)
	g.Yoyo = true
	g.Update(1.25)
	assertNear32(t, "X", n.X, 7.5)
}

func TestTweenGroupStopsOnDisposedTarget(t *testing.T) {
	n := NewContainer("n")
	g := TweenAlpha(n, 0, 1, ease.Linear)
	n.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("group still running on a disposed node")
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, disposed node was written", n.Alpha)
	}
}

func TestTweenGroupStop(t *testing.T) {
	n := NewContainer("n")
	g := TweenPosition(n, 100, 0, 1, ease.Linear)
	g.Update(0.25)
	g.Stop()
	g.Update(0.5)
	assertNear32(t, "X", n.X, 25)
}
