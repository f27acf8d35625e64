package stage

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/bloom/config"
	"github.com/phanxgames/bloom/garden"
	"github.com/phanxgames/bloom/layout"
	"github.com/phanxgames/bloom/timeline"
)

// ErrStarted is returned by Start on a controller that already started.
var ErrStarted = errors.New("stage: already started")

// Phase is the controller's position in the scene lifecycle.
type Phase uint8

const (
	NotStarted Phase = iota
	EntranceRunning
	IdleLooping
	TransitioningOut
	TransitioningIn
)

var phaseNames = [...]string{
	NotStarted:       "not-started",
	EntranceRunning:  "entrance",
	IdleLooping:      "idle",
	TransitioningOut: "transition-out",
	TransitioningIn:  "transition-in",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", p)
}

// Options configures a Controller. Engine and Renderer are required.
type Options struct {
	Engine   AnimationEngine
	Renderer Renderer

	// Rand feeds composition jitter and loop resolution. Nil uses the shared
	// source.
	Rand layout.Rand
	// Logger receives phase changes at info and cues at debug. Nil discards.
	Logger *log.Logger
	// Debounce is the resize quiet interval. Zero uses config.DefaultResizeDebounce.
	Debounce time.Duration
	// Messages overrides the greeting lines per scene.
	Messages map[string][]string
	// Sets overrides the built-in entrance and idle loops per scene.
	Sets map[string]timeline.Set
}

// Controller owns the visible scene, its animation handles and the phase
// machine:
//
//	NotStarted → EntranceRunning → IdleLooping → TransitioningOut →
//	TransitioningIn → EntranceRunning(rose) → IdleLooping(rose)
//
// It is not safe for concurrent use; every method runs on the update loop.
type Controller struct {
	engine   AnimationEngine
	renderer Renderer
	rng      layout.Rand
	logger   *log.Logger
	messages map[string][]string
	sets     map[string]timeline.Set

	phase     Phase
	scene     string
	target    string
	current   *garden.Scene
	viewport  layout.Viewport
	confirmed bool

	handles  map[timeline.Selector][]Handle
	debounce *Debouncer
	rebuild  bool
	// gen increases on every teardown; callbacks from older generations
	// are dropped.
	gen int
}

// NewController returns a controller in the NotStarted phase.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	delay := opts.Debounce
	if delay == 0 {
		delay = config.DefaultResizeDebounce
	}
	return &Controller{
		engine:   opts.Engine,
		renderer: opts.Renderer,
		rng:      opts.Rand,
		logger:   logger,
		messages: opts.Messages,
		sets:     opts.Sets,
		handles:  make(map[timeline.Selector][]Handle),
		debounce: NewDebouncer(delay),
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Scene returns the name of the visible scene, or "" before Start.
func (c *Controller) Scene() string { return c.scene }

// Current returns the composed visible scene, or nil before Start.
func (c *Controller) Current() *garden.Scene { return c.current }

// Viewport returns the most recently reported viewport.
func (c *Controller) Viewport() layout.Viewport { return c.viewport }

// Confirmed reports whether the confirm action has been accepted.
func (c *Controller) Confirmed() bool { return c.confirmed }

// Start composes and mounts the main scene for v and plays its entrance.
func (c *Controller) Start(v layout.Viewport) error {
	if c.phase != NotStarted {
		return ErrStarted
	}
	c.viewport = v
	c.rebuild = false
	c.debounce.Cancel()
	if err := c.mount(garden.Main); err != nil {
		return err
	}
	return c.playEntrance()
}

// Confirm begins the transition to the rose garden. It is accepted once, and
// only while the main scene is entering or idling; every other call returns
// false and changes nothing.
func (c *Controller) Confirm() bool {
	if c.confirmed || c.scene != garden.Main {
		return false
	}
	if c.phase != EntranceRunning && c.phase != IdleLooping {
		return false
	}
	c.confirmed = true
	c.target = garden.Rose

	c.cancelScene(c.scene)
	exit := timeline.ExitTimeline(c.scene)
	c.track(timeline.Select(c.scene, timeline.NameExit), c.engine.Schedule(&exit, c.cueHandler()))
	c.setPhase(TransitioningOut)
	return true
}

// Resize records the new viewport and restarts the debounce interval. The
// visible scene is rebuilt once the viewport stays still.
func (c *Controller) Resize(v layout.Viewport) {
	c.viewport = v
	c.debounce.Signal()
}

// Update advances the resize debouncer by dt. A due rebuild waits while a
// scene transition is in flight.
func (c *Controller) Update(dt time.Duration) {
	if c.debounce.Poll(dt) {
		c.rebuild = true
	}
	if !c.rebuild || c.phase == NotStarted || c.transitioning() {
		return
	}
	c.rebuild = false
	if err := c.regenerate(); err != nil {
		c.logger.Error("rebuild failed", "scene", c.scene, "err", err)
	}
}

func (c *Controller) transitioning() bool {
	return c.phase == TransitioningOut || c.phase == TransitioningIn
}

// regenerate tears the visible scene down and builds it again from scratch
// for the current viewport.
func (c *Controller) regenerate() error {
	c.logger.Info("rebuilding scene", "scene", c.scene, "width", c.viewport.Width, "height", c.viewport.Height)
	name := c.scene
	c.teardown(name)
	if err := c.mount(name); err != nil {
		return err
	}
	return c.playEntrance()
}

func (c *Controller) mount(name string) error {
	s, err := garden.Compose(name, c.viewport, c.rng, c.messages[name])
	if err != nil {
		return fmt.Errorf("stage: compose: %w", err)
	}
	c.scene = name
	c.current = s
	c.renderer.Mount(s)
	c.logger.Debug("mounted scene", "scene", name, "elements", len(s.Elements), "scale", float64(s.Scale))
	return nil
}

// teardown cancels everything the scene runs, then removes its nodes.
func (c *Controller) teardown(name string) {
	c.cancelScene(name)
	c.renderer.Unmount(name)
	if c.current != nil && c.current.Name == name {
		c.current = nil
	}
}

func (c *Controller) set(name string) (timeline.Set, error) {
	if s, ok := c.sets[name]; ok {
		return s, nil
	}
	return timeline.ForScene(name)
}

func (c *Controller) playEntrance() error {
	set, err := c.set(c.scene)
	if err != nil {
		return err
	}
	c.track(timeline.Select(c.scene, timeline.NameEntrance), c.engine.Schedule(&set.Entrance, c.cueHandler()))
	c.setPhase(EntranceRunning)
	return nil
}

func (c *Controller) startIdle() {
	set, err := c.set(c.scene)
	if err != nil {
		c.logger.Error("no idle loops", "scene", c.scene, "err", err)
		return
	}
	for _, l := range set.Idle {
		c.track(l.Target, c.engine.TweenContinuous(l))
	}
	c.setPhase(IdleLooping)
}

// cueHandler binds cue dispatch to the current generation and scene.
func (c *Controller) cueHandler() func(timeline.Cue) {
	gen, scene := c.gen, c.scene
	return func(cue timeline.Cue) {
		if gen != c.gen {
			return
		}
		c.logger.Debug("cue", "scene", scene, "name", cue.Name, "at", cue.At)
		switch cue.Name {
		case timeline.CueSparkleBurst, timeline.CueHeartBurst:
			c.renderer.Burst(scene, Burst(cue.Name))
		case timeline.CueIdle:
			c.startIdle()
		case timeline.CueHidden:
			c.swap()
		case timeline.CueEntrance:
			if err := c.playEntrance(); err != nil {
				c.logger.Error("entrance failed", "scene", c.scene, "err", err)
			}
		}
	}
}

// swap replaces the hidden outgoing scene with the transition target and
// fades the target in.
func (c *Controller) swap() {
	c.teardown(c.scene)
	if err := c.mount(c.target); err != nil {
		c.logger.Error("transition failed", "target", c.target, "err", err)
		return
	}
	enter := timeline.EnterTimeline(c.scene)
	c.track(timeline.Select(c.scene, timeline.NameEnter), c.engine.Schedule(&enter, c.cueHandler()))
	c.setPhase(TransitioningIn)
}

func (c *Controller) track(sel timeline.Selector, h Handle) {
	if h == nil {
		return
	}
	c.handles[sel] = append(c.handles[sel], h)
}

// cancelScene cancels every handle owned by the scene and then asks the
// engine to drop any tween still touching its nodes.
func (c *Controller) cancelScene(name string) {
	all := timeline.Select(name, timeline.All)
	n := 0
	for sel, hs := range c.handles {
		if !all.Matches(sel) {
			continue
		}
		for _, h := range hs {
			h.Cancel()
			n++
		}
		delete(c.handles, sel)
	}
	c.engine.CancelGroup(all)
	c.gen++
	c.logger.Debug("cancelled scene animations", "scene", name, "handles", n)
}

// Handles returns the number of live handles kept for sel.
func (c *Controller) Handles(sel timeline.Selector) int {
	n := 0
	for s, hs := range c.handles {
		if sel.Matches(s) {
			for _, h := range hs {
				if !h.Done() {
					n++
				}
			}
		}
	}
	return n
}

func (c *Controller) setPhase(p Phase) {
	if p == c.phase {
		return
	}
	c.logger.Info("phase", "scene", c.scene, "from", c.phase, "to", p)
	c.phase = p
}
