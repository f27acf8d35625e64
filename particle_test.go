package bloom

import (
	"math"
	"testing"

	"github.com/phanxgames/bloom/layout"
)

func testEmitterConfig() EmitterConfig {
	return EmitterConfig{
		MaxParticles: 10,
		Area:         Rect{X: 10, Y: 20, Width: 30, Height: 40},
		Lifetime:     Range{1, 1},
		Speed:        Range{100, 100},
		Angle:        Range{0, 0},
		StartScale:   Range{2, 2},
		EndScale:     Range{0, 0},
		StartAlpha:   Range{1, 1},
		EndAlpha:     Range{0, 0},
	}
}

func TestEmitterDefaults(t *testing.T) {
	e := newParticleEmitter(EmitterConfig{})
	if len(e.particles) != 128 {
		t.Errorf("pool = %d, want 128", len(e.particles))
	}
	if len(e.shapeVerts) == 0 || len(e.shapeInds) == 0 {
		t.Error("default shape not built")
	}
}

func TestEmitterBurstIsCappedByPool(t *testing.T) {
	e := newParticleEmitter(testEmitterConfig())
	if got := e.Burst(4); got != 4 {
		t.Errorf("Burst(4) = %d", got)
	}
	if got := e.Burst(20); got != 6 {
		t.Errorf("Burst(20) = %d, want 6", got)
	}
	if e.AliveCount() != 10 {
		t.Errorf("AliveCount = %d", e.AliveCount())
	}
}

func TestEmitterSpawnsInsideArea(t *testing.T) {
	e := newParticleEmitter(testEmitterConfig())
	e.SetRand(layout.NewRand(5))
	e.Burst(10)
	for i := 0; i < e.alive; i++ {
		p := e.particles[i]
		if !(Rect{X: 10, Y: 20, Width: 30, Height: 40}).Contains(p.x, p.y) {
			t.Errorf("particle %d at (%v, %v) outside area", i, p.x, p.y)
		}
	}
}

func TestEmitterUpdateMovesAndFades(t *testing.T) {
	cfg := testEmitterConfig()
	cfg.Area = Rect{}
	e := newParticleEmitter(cfg)
	e.Burst(1)
	e.update(0.5)

	p := e.particles[0]
	assertNear(t, "x", p.x, 50)
	assertNear(t, "y", p.y, 0)
	assertNear(t, "scale", p.scale, 1)
	assertNear(t, "alpha", p.alpha, 0.5)

	e.update(0.6)
	if e.AliveCount() != 0 {
		t.Errorf("AliveCount = %d after lifetime", e.AliveCount())
	}
}

func TestEmitterGravity(t *testing.T) {
	cfg := testEmitterConfig()
	cfg.Speed = Range{}
	cfg.Gravity = Vec2{0, 100}
	e := newParticleEmitter(cfg)
	e.Burst(1)
	e.update(0.5)
	assertNear(t, "vy", e.particles[0].vy, 50)
}

func TestEmitterContinuousRate(t *testing.T) {
	cfg := testEmitterConfig()
	cfg.EmitRate = 4
	e := newParticleEmitter(cfg)
	e.update(0.5)
	if e.AliveCount() != 0 {
		t.Fatal("spawned while stopped")
	}
	e.Start()
	if !e.IsActive() {
		t.Fatal("not active after Start")
	}
	e.update(0.5)
	if e.AliveCount() != 2 {
		t.Errorf("AliveCount = %d, want 2", e.AliveCount())
	}
	e.Stop()
	e.update(0.25)
	if e.AliveCount() != 2 {
		t.Errorf("AliveCount = %d after Stop, want 2", e.AliveCount())
	}
	e.Reset()
	if e.AliveCount() != 0 || e.IsActive() {
		t.Error("Reset left particles or emission")
	}
}

func TestEmitterPicksFromPalette(t *testing.T) {
	cfg := testEmitterConfig()
	cfg.Colors = []Color{Hex("#FF0000")}
	e := newParticleEmitter(cfg)
	e.Burst(3)
	for i := 0; i < e.alive; i++ {
		if e.particles[i].color != cfg.Colors[0] {
			t.Errorf("particle %d color = %v", i, e.particles[i].color)
		}
	}
}

func TestUpdateParticlesWalksTree(t *testing.T) {
	root := NewContainer("root")
	em := NewParticleEmitter("em", testEmitterConfig())
	root.AddChild(em)
	em.Emitter.Burst(3)
	updateParticles(root, 2)
	if em.Emitter.AliveCount() != 0 {
		t.Errorf("AliveCount = %d", em.Emitter.AliveCount())
	}
}

func TestRangeRandom(t *testing.T) {
	rng := layout.NewRand(1)
	r := Range{2, 4}
	for i := 0; i < 100; i++ {
		v := r.random(rng)
		if v < 2 || v > 4 {
			t.Fatalf("random = %v", v)
		}
	}
	if v := (Range{3, 3}).random(rng); v != 3 {
		t.Errorf("fixed range = %v", v)
	}
}

func TestLerp(t *testing.T) {
	assertNear(t, "lerp", lerp(2, 6, 0.25), 3)
	assertNear(t, "lerp end", lerp(2, 6, 1), 6)
	if math.IsNaN(lerp(0, 0, 0.5)) {
		t.Error("NaN")
	}
}
