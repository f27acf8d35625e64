package bloom

import (
	"math"
	"testing"

	"github.com/phanxgames/bloom/garden"
	"github.com/phanxgames/bloom/layout"
	"github.com/phanxgames/bloom/stage"
	"github.com/phanxgames/bloom/timeline"
)

const frame = 1.0 / 60

func newTestGarden(t *testing.T) *Garden {
	t.Helper()
	g := NewGarden(RunConfig{Rand: layout.NewRand(11)})
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	return g
}

// play steps g for the given number of seconds.
func play(t *testing.T, g *Garden, seconds float64) {
	t.Helper()
	for i := 0; i < int(math.Round(seconds/frame)); i++ {
		if err := g.Step(frame); err != nil {
			t.Fatal(err)
		}
	}
}

func clickButton(t *testing.T, g *Garden, i int) {
	t.Helper()
	buttons := g.Engine.Members(timeline.Select(garden.Main, timeline.GroupButton))
	if len(buttons) <= i {
		t.Fatalf("buttons = %d", len(buttons))
	}
	x, y := buttons[i].LocalToWorld(0, 0)
	g.Scene.InjectClick(x, y)
	play(t, g, 2*frame)
}

func TestGardenDefaults(t *testing.T) {
	g := newTestGarden(t)
	v := g.Controller.Viewport()
	if v.Width != 1024 || v.Height != 768 {
		t.Errorf("viewport = %+v", v)
	}
	if got := g.Controller.Phase(); got != stage.EntranceRunning {
		t.Errorf("phase = %s, want entrance", got)
	}
	if err := g.Start(); err != nil {
		t.Errorf("second Start = %v", err)
	}
	if !g.Engine.Mounted(garden.Main) {
		t.Error("main scene not mounted")
	}
}

func TestGardenEntranceReachesIdle(t *testing.T) {
	g := newTestGarden(t)
	play(t, g, 5)
	if got := g.Controller.Phase(); got != stage.IdleLooping {
		t.Fatalf("phase = %s, want idle", got)
	}
	if g.Engine.Active() == 0 {
		t.Error("idle loops not animating")
	}
}

func TestGardenConfirmToRoseGarden(t *testing.T) {
	g := newTestGarden(t)
	play(t, g, 5)

	clickButton(t, g, 0)
	if !g.Controller.Confirmed() {
		t.Fatal("button click did not confirm")
	}
	if got := g.Controller.Phase(); got != stage.TransitioningOut {
		t.Errorf("phase = %s, want transition-out", got)
	}

	play(t, g, 7)
	if got := g.Controller.Scene(); got != garden.Rose {
		t.Fatalf("scene = %q, want rose", got)
	}
	if got := g.Controller.Phase(); got != stage.IdleLooping {
		t.Errorf("phase = %s, want idle", got)
	}
	if g.Engine.Mounted(garden.Main) {
		t.Error("main scene still mounted")
	}
	if !g.Engine.Mounted(garden.Rose) {
		t.Error("rose garden not mounted")
	}
	if g.Controller.Confirm() {
		t.Error("second confirm accepted")
	}
}

func TestGardenResizeRebuilds(t *testing.T) {
	g := newTestGarden(t)
	play(t, g, 5)
	before := g.Controller.Current()

	g.Scene.OnResize(800, 600)
	play(t, g, 0.1)
	if g.Controller.Current() != before {
		t.Fatal("rebuilt before the debounce interval")
	}

	play(t, g, 0.4)
	v := g.Controller.Viewport()
	if v.Width != 800 || v.Height != 600 {
		t.Errorf("viewport = %+v", v)
	}
	if g.Controller.Current() == before {
		t.Fatal("scene not rebuilt")
	}
	if got := g.Controller.Current().Viewport; got != v {
		t.Errorf("composed for %+v, want %+v", got, v)
	}
	if got := g.Controller.Phase(); got != stage.EntranceRunning {
		t.Errorf("phase = %s, want entrance", got)
	}
}

func TestGardenOnUpdate(t *testing.T) {
	ticks := 0
	g := NewGarden(RunConfig{Rand: layout.NewRand(11), OnUpdate: func() { ticks++ }})
	play(t, g, 3*frame)
	if ticks != 3 {
		t.Errorf("ticks = %d, want 3", ticks)
	}
	if g.Controller.Phase() == stage.NotStarted {
		t.Error("Step did not start the garden")
	}
}
