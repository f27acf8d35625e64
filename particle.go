package bloom

import (
	"math"

	"github.com/phanxgames/bloom/layout"
)

// particle holds per-particle simulation state. Unexported; managed by ParticleEmitter.
type particle struct {
	x, y       float64
	vx, vy     float64
	life       float64 // remaining lifetime in seconds
	maxLife    float64 // initial lifetime (for computing t)
	rotation   float64 // degrees
	spin       float64 // degrees per second
	startScale float64
	endScale   float64
	scale      float64
	startAlpha float64
	endAlpha   float64
	alpha      float64
	color      Color
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// EmitRate is the number of particles spawned per second while active.
	EmitRate float64
	// Area is the spawn rectangle in the emitter's local space. A zero Area
	// spawns at the origin.
	Area Rect
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Speed is the range of initial particle speeds in pixels per second.
	Speed Range
	// Angle is the range of emission angles in radians. 0 points right and
	// -π/2 points up.
	Angle Range
	// Spin is the range of rotation speeds in degrees per second.
	Spin Range
	// StartScale is the range of scale factors at birth, interpolated to EndScale over lifetime.
	StartScale Range
	// EndScale is the range of scale factors at death.
	EndScale Range
	// StartAlpha is the range of alpha values at birth, interpolated to EndAlpha over lifetime.
	StartAlpha Range
	// EndAlpha is the range of alpha values at death.
	EndAlpha Range
	// Gravity is the constant acceleration applied to all particles each frame.
	Gravity Vec2
	// Colors is the palette each particle picks its tint from. Empty means white.
	Colors []Color
	// Shape is the outline drawn for each particle at scale 1.
	Shape []Vec2
	// BlendMode is the compositing operation for particle rendering.
	BlendMode BlendMode
}

// ParticleEmitter manages a pool of particles with CPU-based simulation.
type ParticleEmitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
	emitAccum float64
	active    bool
	rng       layout.Rand

	// shape mesh, transformed per particle at draw time
	shapeVerts []Vec2
	shapeInds  []uint16
}

// newParticleEmitter creates a ParticleEmitter with a preallocated pool.
func newParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	n := cfg.MaxParticles
	if n <= 0 {
		n = 128
	}
	e := &ParticleEmitter{
		config:    cfg,
		particles: make([]particle, n),
		rng:       layout.Shared,
	}
	shape := cfg.Shape
	if len(shape) < 3 {
		shape = EllipsePoints(0, 0, 2, 2, 8)
	}
	verts, inds := buildPolygonFan(shape)
	e.shapeVerts = make([]Vec2, len(verts))
	for i, v := range verts {
		e.shapeVerts[i] = Vec2{float64(v.DstX), float64(v.DstY)}
	}
	e.shapeInds = inds
	return e
}

// SetRand replaces the random source used for spawning. Nil restores the
// shared source.
func (e *ParticleEmitter) SetRand(rng layout.Rand) {
	if rng == nil {
		rng = layout.Shared
	}
	e.rng = rng
}

// Start begins emitting particles.
func (e *ParticleEmitter) Start() {
	e.active = true
}

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *ParticleEmitter) Stop() {
	e.active = false
}

// Reset stops emitting and kills all alive particles.
func (e *ParticleEmitter) Reset() {
	e.active = false
	e.alive = 0
	e.emitAccum = 0
}

// Burst spawns n particles at once, up to the pool capacity, and returns how
// many were spawned.
func (e *ParticleEmitter) Burst(n int) int {
	spawned := 0
	for ; spawned < n && e.alive < len(e.particles); spawned++ {
		e.spawnParticle()
	}
	return spawned
}

// IsActive reports whether the emitter is currently emitting new particles.
func (e *ParticleEmitter) IsActive() bool {
	return e.active
}

// AliveCount returns the number of alive particles.
func (e *ParticleEmitter) AliveCount() int {
	return e.alive
}

// Config returns a pointer to the emitter's config for live tuning.
func (e *ParticleEmitter) Config() *EmitterConfig {
	return &e.config
}

// update advances particle simulation by dt seconds.
func (e *ParticleEmitter) update(dt float64) {
	gx := e.config.Gravity.X * dt
	gy := e.config.Gravity.Y * dt

	// Update existing particles, swap-remove dead ones.
	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life -= dt
		if p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.vx += gx
		p.vy += gy
		p.x += p.vx * dt
		p.y += p.vy * dt
		p.rotation += p.spin * dt

		t := 1.0 - p.life/p.maxLife
		p.scale = lerp(p.startScale, p.endScale, t)
		p.alpha = lerp(p.startAlpha, p.endAlpha, t)

		i++
	}

	if e.active && e.config.EmitRate > 0 {
		e.emitAccum += e.config.EmitRate * dt
		for e.emitAccum >= 1.0 {
			e.emitAccum -= 1.0
			if e.alive < len(e.particles) {
				e.spawnParticle()
			}
		}
	}
}

// spawnParticle initializes the particle at slot e.alive and increments alive.
func (e *ParticleEmitter) spawnParticle() {
	p := &e.particles[e.alive]
	cfg := &e.config

	angle := cfg.Angle.random(e.rng)
	speed := cfg.Speed.random(e.rng)
	p.vx = math.Cos(angle) * speed
	p.vy = math.Sin(angle) * speed

	p.x = cfg.Area.X + e.rng.Float64()*cfg.Area.Width
	p.y = cfg.Area.Y + e.rng.Float64()*cfg.Area.Height

	p.life = cfg.Lifetime.random(e.rng)
	if p.life <= 0 {
		p.life = 1.0
	}
	p.maxLife = p.life

	p.rotation = 0
	p.spin = cfg.Spin.random(e.rng)

	p.startScale = cfg.StartScale.random(e.rng)
	p.endScale = cfg.EndScale.random(e.rng)
	p.scale = p.startScale

	p.startAlpha = cfg.StartAlpha.random(e.rng)
	p.endAlpha = cfg.EndAlpha.random(e.rng)
	p.alpha = p.startAlpha

	p.color = ColorWhite
	if len(cfg.Colors) > 0 {
		p.color = cfg.Colors[layout.Pick(e.rng, len(cfg.Colors))]
	}

	e.alive++
}

// updateParticles walks the tree and advances every emitter by dt.
func updateParticles(n *Node, dt float64) {
	if n.Emitter != nil {
		n.Emitter.update(dt)
	}
	for _, c := range n.children {
		updateParticles(c, dt)
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// random returns a value in [Min, Max] drawn from rng.
func (r Range) random(rng layout.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
