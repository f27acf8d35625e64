package bloom

import (
	"testing"

	"github.com/phanxgames/bloom/garden"
	"github.com/phanxgames/bloom/layout"
	"github.com/phanxgames/bloom/stage"
	"github.com/phanxgames/bloom/timeline"
)

var desktop = layout.Viewport{Width: 1024, Height: 768}

func composeScene(t *testing.T, name string) *garden.Scene {
	t.Helper()
	s, err := garden.Compose(name, desktop, layout.NewRand(7), nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mountedEngine(t *testing.T, name string) (*Engine, *Scene) {
	t.Helper()
	sc := NewScene()
	e := NewEngine(sc, EngineOptions{Rand: layout.NewRand(7)})
	e.Mount(composeScene(t, name))
	return e, sc
}

func sel(group string) timeline.Selector {
	return timeline.Select(garden.Main, group)
}

func alphas(nodes []*Node) []float64 {
	out := make([]float64, len(nodes))
	for i, n := range nodes {
		out[i] = n.Alpha
	}
	return out
}

// --- Renderer ---

func TestEngineMountGroups(t *testing.T) {
	e, sc := mountedEngine(t, garden.Main)
	if !e.Mounted(garden.Main) || e.Mounted(garden.Rose) {
		t.Fatal("Mounted wrong")
	}
	if sc.Root().NumChildren() != 1 {
		t.Errorf("root children = %d, want 1", sc.Root().NumChildren())
	}

	tests := map[string]int{
		timeline.GroupContainer:             1,
		layout.KindSunflower.String():       3,
		layout.KindTulip.String():           4,
		layout.KindRose.String():            2,
		layout.KindGlowFlower.String():      3,
		layout.KindFrontLeaf.String():       10,
		timeline.Head(layout.KindSunflower): 3,
		timeline.GroupMessage:               3,
		timeline.Message(3):                 1,
		timeline.GroupButton:                len(buttonLabels),
		layout.KindStar.String():            0,
	}
	for group, want := range tests {
		if got := len(e.Members(sel(group))); got != want {
			t.Errorf("Members(%q) = %d, want %d", group, got, want)
		}
	}
	if len(e.Members(sel(timeline.All))) == 0 {
		t.Error("wildcard selects nothing")
	}
}

func TestEngineRemountReplaces(t *testing.T) {
	e, sc := mountedEngine(t, garden.Main)
	old := e.Members(sel(layout.KindSunflower.String()))
	e.Mount(composeScene(t, garden.Main))
	if sc.Root().NumChildren() != 1 {
		t.Errorf("root children = %d after remount", sc.Root().NumChildren())
	}
	for _, n := range old {
		if !n.IsDisposed() {
			t.Fatal("old nodes survived remount")
		}
	}
}

func TestEngineUnmount(t *testing.T) {
	e, sc := mountedEngine(t, garden.Main)
	nodes := e.Members(sel(timeline.All))
	e.Unmount(garden.Main)

	if e.Mounted(garden.Main) || sc.Root().NumChildren() != 0 {
		t.Fatal("scene still mounted")
	}
	for _, n := range nodes {
		if !n.IsDisposed() {
			t.Fatalf("node %q not disposed", n.Name)
		}
	}

	// Every operation on an unmounted scene is a no-op.
	e.Unmount(garden.Main)
	e.Burst(garden.Main, stage.BurstSparkle)
	if got := e.Members(sel(timeline.All)); len(got) != 0 {
		t.Errorf("Members = %d after unmount", len(got))
	}
	tl := timeline.MainEntrance()
	h := e.Schedule(&tl, nil)
	e.Update(10)
	if !h.Done() {
		t.Error("timeline over an unmounted scene never finished")
	}
	if e.Active() != 0 {
		t.Errorf("Active = %d", e.Active())
	}
}

func TestEngineBurst(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	e.Burst(garden.Main, stage.BurstSparkle)
	e.Burst(garden.Main, stage.BurstHeart)
	e.Burst(garden.Main, stage.Burst("confetti"))

	m := e.mounts[garden.Main]
	if got := m.bursts[stage.BurstSparkle].Emitter.AliveCount(); got != burstCounts[stage.BurstSparkle] {
		t.Errorf("sparkles = %d", got)
	}
	if got := m.bursts[stage.BurstHeart].Emitter.AliveCount(); got != burstCounts[stage.BurstHeart] {
		t.Errorf("hearts = %d", got)
	}
}

// --- Schedule ---

func fadeIn(group string, at, dur, stagger float64) timeline.Timeline {
	return timeline.Timeline{
		Scene: garden.Main,
		Name:  "test",
		Entries: []timeline.Entry{{
			Target:   sel(group),
			Props:    []timeline.Prop{{Name: timeline.PropAlpha, From: timeline.From(0), To: 1}},
			At:       at,
			Duration: dur,
			Ease:     timeline.Linear,
			Stagger:  stagger,
		}},
	}
}

func TestScheduleAppliesFromAndStaggers(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	flowers := e.Members(sel(layout.KindSunflower.String()))
	tl := fadeIn(layout.KindSunflower.String(), 1, 1, 0.5)
	h := e.Schedule(&tl, nil)

	for i, a := range alphas(flowers) {
		if a != 0 {
			t.Fatalf("flower %d alpha = %v before start, want 0", i, a)
		}
	}

	steps := []struct {
		dt   float64
		want [3]float64
	}{
		{1, [3]float64{0, 0, 0}},
		{0.5, [3]float64{0.5, 0, 0}},
		{0.5, [3]float64{1, 0.5, 0}},
		{0.5, [3]float64{1, 1, 0.5}},
	}
	for i, st := range steps {
		e.Update(st.dt)
		for j, a := range alphas(flowers) {
			assertNear32(t, "alpha", a, st.want[j])
			if t.Failed() {
				t.Fatalf("step %d member %d", i, j)
			}
		}
	}
	if h.Done() {
		t.Fatal("done with a member still running")
	}
	e.Update(0.5)
	if !h.Done() {
		t.Error("not done after the last member finished")
	}
}

func TestScheduleRelativeProps(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	flowers := e.Members(sel(layout.KindSunflower.String()))
	before := make([]float64, len(flowers))
	for i, n := range flowers {
		before[i] = n.Rotation
	}

	tl := timeline.Timeline{
		Scene: garden.Main,
		Entries: []timeline.Entry{{
			Target:   sel(layout.KindSunflower.String()),
			Props:    []timeline.Prop{{Name: timeline.PropRotation, To: 10, Relative: true}},
			Duration: 0.5,
			Ease:     timeline.Linear,
		}},
	}
	e.Schedule(&tl, nil)
	e.Update(0.5)
	for i, n := range flowers {
		assertNear32(t, "rotation", n.Rotation, before[i]+10)
	}
}

func TestScheduleCuesFireInTimeOrder(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	tl := timeline.Timeline{
		Scene: garden.Main,
		Cues: []timeline.Cue{
			{At: 0.5, Name: timeline.CueIdle},
			{At: 0.2, Name: timeline.CueSparkleBurst},
			{At: 0.2, Name: timeline.CueHeartBurst},
		},
	}
	var got []string
	h := e.Schedule(&tl, func(c timeline.Cue) { got = append(got, c.Name) })

	e.Update(0.3)
	if len(got) != 2 {
		t.Fatalf("cues after 0.3s = %v", got)
	}
	e.Update(0.3)
	want := []string{timeline.CueSparkleBurst, timeline.CueHeartBurst, timeline.CueIdle}
	if len(got) != len(want) {
		t.Fatalf("cues = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cue %d = %q, want %q", i, got[i], want[i])
		}
	}
	if !h.Done() {
		t.Error("cue-only timeline not done")
	}
}

func TestCancelInsideCueStopsLaterCues(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	tl := timeline.Timeline{
		Scene: garden.Main,
		Cues: []timeline.Cue{
			{At: 0.1, Name: timeline.CueHidden},
			{At: 0.2, Name: timeline.CueEntrance},
		},
	}
	var h stage.Handle
	var got []string
	h = e.Schedule(&tl, func(c timeline.Cue) {
		got = append(got, c.Name)
		h.Cancel()
	})
	e.Update(1)
	if len(got) != 1 || got[0] != timeline.CueHidden {
		t.Errorf("cues = %v, want only %q", got, timeline.CueHidden)
	}
}

func TestHandleCancelStopsTweens(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	flowers := e.Members(sel(layout.KindSunflower.String()))
	tl := fadeIn(layout.KindSunflower.String(), 0, 2, 0)
	h := e.Schedule(&tl, nil)

	e.Update(1)
	if e.Active() != len(flowers) {
		t.Fatalf("Active = %d", e.Active())
	}
	h.Cancel()
	if !h.Done() || e.Active() != 0 {
		t.Fatalf("Done = %v, Active = %d after Cancel", h.Done(), e.Active())
	}
	mid := alphas(flowers)
	e.Update(1)
	for i, a := range alphas(flowers) {
		if a != mid[i] {
			t.Errorf("flower %d moved after cancel: %v → %v", i, mid[i], a)
		}
	}
	h.Cancel()
}

func TestCancelGroupDropsPendingMembers(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	flowers := e.Members(sel(layout.KindSunflower.String()))
	tl := fadeIn(layout.KindSunflower.String(), 0, 0.5, 1)
	h := e.Schedule(&tl, nil)

	e.Update(0.1)
	e.CancelGroup(sel(layout.KindSunflower.String()))
	if e.Active() != 0 {
		t.Fatalf("Active = %d after CancelGroup", e.Active())
	}
	e.Update(3)
	for i, n := range flowers[1:] {
		if n.Alpha != 0 {
			t.Errorf("pending member %d started after CancelGroup: alpha %v", i+1, n.Alpha)
		}
	}
	if !h.Done() {
		t.Error("timeline with only cancelled members never finished")
	}
}

func TestCancelGroupLeavesOtherGroups(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	tulips := e.Members(sel(layout.KindTulip.String()))
	a := fadeIn(layout.KindSunflower.String(), 0, 1, 0)
	b := fadeIn(layout.KindTulip.String(), 0, 1, 0)
	e.Schedule(&a, nil)
	e.Schedule(&b, nil)
	e.Update(0.5)

	e.CancelGroup(sel(layout.KindSunflower.String()))
	if e.Active() != len(tulips) {
		t.Errorf("Active = %d, want the %d tulip tweens", e.Active(), len(tulips))
	}
	e.Update(0.5)
	for _, n := range tulips {
		assertNear32(t, "tulip alpha", n.Alpha, 1)
	}
}

// --- Loops ---

func TestTweenContinuousYoyos(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	heads := e.Members(sel(timeline.Head(layout.KindSunflower)))
	h := e.TweenContinuous(timeline.Loop{
		Target:   sel(timeline.Head(layout.KindSunflower)),
		Props:    []timeline.Prop{{Name: timeline.PropRotation, To: 5}},
		Duration: 1,
		Ease:     timeline.Linear,
	})

	e.Update(1)
	for _, n := range heads {
		assertNear32(t, "out", n.Rotation, 5)
	}
	e.Update(0.5)
	for _, n := range heads {
		assertNear32(t, "back halfway", n.Rotation, 2.5)
	}
	e.Update(0.5)
	for _, n := range heads {
		assertNear32(t, "back", n.Rotation, 0)
	}
	if h.Done() {
		t.Fatal("loop finished on its own")
	}

	h.Cancel()
	if !h.Done() || e.Active() != 0 {
		t.Errorf("Done = %v, Active = %d after Cancel", h.Done(), e.Active())
	}
}

func TestTweenContinuousHonorsDelay(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	heads := e.Members(sel(timeline.Head(layout.KindSunflower)))
	e.TweenContinuous(timeline.Loop{
		Target:    sel(timeline.Head(layout.KindSunflower)),
		Props:     []timeline.Prop{{Name: timeline.PropRotation, To: 10}},
		Duration:  1,
		DelayStep: 1,
		Ease:      timeline.Linear,
	})
	e.Update(0.5)
	assertNear32(t, "first", heads[0].Rotation, 5)
	assertNear32(t, "second waits", heads[1].Rotation, 0)
	e.Update(1)
	assertNear32(t, "second", heads[1].Rotation, 5)
}

func TestLoopDoneOnceNodesDisposed(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	h := e.TweenContinuous(timeline.Loop{
		Target:   sel(timeline.Head(layout.KindSunflower)),
		Props:    []timeline.Prop{{Name: timeline.PropRotation, To: 5}},
		Duration: 1,
	})
	e.Update(0.1)
	e.Unmount(garden.Main)
	e.Update(0.1)
	if !h.Done() {
		t.Error("loop over a removed scene is still running")
	}
}

// --- Confirm ---

func TestConfirmDisablesButtonsOnce(t *testing.T) {
	e, sc := mountedEngine(t, garden.Main)
	buttons := e.Members(sel(timeline.GroupButton))
	calls := 0
	e.OnConfirm = func() bool {
		calls++
		return calls == 1
	}

	sc.InjectConfirm()
	sc.Step(1.0 / 60)
	if calls != 1 {
		t.Fatalf("OnConfirm calls = %d", calls)
	}
	for _, b := range buttons {
		if b.Interactable {
			t.Errorf("button %q still interactable", b.Name)
		}
	}
	e.Update(0.2)
	for _, b := range buttons {
		assertNear32(t, "button alpha", b.Alpha, 0.6)
	}

	sc.InjectConfirm()
	sc.Step(1.0 / 60)
	if calls != 2 {
		t.Errorf("OnConfirm calls = %d", calls)
	}
	if e.Active() != 0 {
		t.Errorf("rejected confirm started %d tweens", e.Active())
	}
}

func TestRejectedConfirmKeepsButtons(t *testing.T) {
	e, _ := mountedEngine(t, garden.Main)
	e.OnConfirm = func() bool { return false }
	e.confirm()
	for _, b := range e.Members(sel(timeline.GroupButton)) {
		if !b.Interactable || b.Alpha != 1 {
			t.Errorf("button %q changed on a rejected confirm", b.Name)
		}
	}
}

func TestButtonClickConfirms(t *testing.T) {
	e, sc := mountedEngine(t, garden.Main)
	calls := 0
	e.OnConfirm = func() bool {
		calls++
		return true
	}

	updateWorldTransform(sc.root, identityTransform, 1, false)
	for i, b := range e.Members(sel(timeline.GroupButton)) {
		if !b.Interactable {
			break
		}
		x, y := b.LocalToWorld(0, 0)
		sc.InjectClick(x, y)
		sc.Step(1.0 / 60)
		sc.Step(1.0 / 60)
		if calls != i+1 {
			t.Fatalf("button %d: calls = %d", i, calls)
		}
	}
	if calls != 1 {
		t.Errorf("calls = %d, the first accepted click disables every button", calls)
	}
}
