package bloom

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bloom/garden"
	"github.com/phanxgames/bloom/layout"
	"github.com/phanxgames/bloom/stage"
	"github.com/phanxgames/bloom/timeline"
)

var (
	_ stage.AnimationEngine = (*Engine)(nil)
	_ stage.Renderer        = (*Engine)(nil)
	_ stage.Handle          = (*run)(nil)
	_ stage.Handle          = (*loopRun)(nil)
)

// EngineOptions configures an Engine.
type EngineOptions struct {
	// Logger receives mounts and schedules at debug level. Nil discards.
	Logger *log.Logger
	// Rand feeds loop jitter, particles and ambient motion. Nil uses the
	// shared source.
	Rand layout.Rand
}

// Engine mounts composed garden scenes under a Scene's root and animates
// them. It implements both stage.Renderer and stage.AnimationEngine and is
// driven by calling Update once per tick, after Scene.Update.
//
// Every operation on a scene that is not mounted is a no-op.
type Engine struct {
	scene  *Scene
	logger *log.Logger
	rng    layout.Rand

	mounts map[string]*mount
	runs   []*run
	loops  []*loopRun
	tweens []*tween

	// OnConfirm is asked to accept a confirm request coming from a button
	// click or the confirm key. When it returns true the buttons of every
	// mounted scene disable themselves.
	OnConfirm func() bool
}

// NewEngine creates an engine drawing into scene. It takes over
// scene.OnConfirm.
func NewEngine(scene *Scene, opts EngineOptions) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	rng := opts.Rand
	if rng == nil {
		rng = layout.Shared
	}
	e := &Engine{
		scene:  scene,
		logger: logger,
		rng:    rng,
		mounts: make(map[string]*mount),
	}
	scene.OnConfirm = e.confirm
	return e
}

// --- Renderer ---

// Mount builds the nodes of s and adds them to the scene. A scene mounted
// under the same name is replaced.
func (e *Engine) Mount(s *garden.Scene) {
	if s == nil {
		return
	}
	if _, ok := e.mounts[s.Name]; ok {
		e.Unmount(s.Name)
	}
	m := buildMount(s, e.rng, func(label string) {
		e.logger.Debug("button", "scene", s.Name, "label", label)
		e.confirm()
	})
	e.mounts[s.Name] = m
	e.scene.Root().AddChild(m.root)
	e.scene.debugCheckTree(m.root)
	e.logger.Debug("mount", "scene", s.Name, "nodes", m.size(), "groups", len(m.groups))
}

// Unmount stops everything animating the named scene and disposes its nodes.
func (e *Engine) Unmount(name string) {
	m, ok := e.mounts[name]
	if !ok {
		return
	}
	e.CancelGroup(timeline.Select(name, timeline.All))
	delete(e.mounts, name)
	m.root.Dispose()
	e.logger.Debug("unmount", "scene", name)
}

// Burst fires a one-shot particle effect on the named scene.
func (e *Engine) Burst(scene string, b stage.Burst) {
	m, ok := e.mounts[scene]
	if !ok {
		return
	}
	em, ok := m.bursts[b]
	if !ok || em.Emitter == nil {
		return
	}
	n := em.Emitter.Burst(burstCounts[b])
	e.logger.Debug("burst", "scene", scene, "kind", string(b), "particles", n)
}

// Mounted reports whether a scene is mounted.
func (e *Engine) Mounted(name string) bool {
	_, ok := e.mounts[name]
	return ok
}

// Members returns the live nodes a selector addresses, in composition order.
func (e *Engine) Members(sel timeline.Selector) []*Node {
	return e.resolve(sel, nil)
}

// Active returns the number of running tweens.
func (e *Engine) Active() int {
	n := 0
	for _, t := range e.tweens {
		if !t.group.Done {
			n++
		}
	}
	return n
}

// --- AnimationEngine ---

// Schedule starts tl on the engine clock. From values are applied to the
// current members right away; every member then starts at its staggered
// offset from whatever value it holds at that moment.
func (e *Engine) Schedule(tl *timeline.Timeline, onCue func(timeline.Cue)) stage.Handle {
	r := &run{
		engine: e,
		scene:  tl.Scene,
		name:   tl.Name,
		cues:   tl.SortedCues(),
		onCue:  onCue,
	}
	for _, en := range tl.Sorted() {
		for _, n := range e.resolve(en.Target, nil) {
			for _, p := range en.Props {
				if p.From != nil {
					setProp(n, p.Name, *p.From)
				}
			}
		}
		r.entries = append(r.entries, entryRun{entry: en})
	}
	e.runs = append(e.runs, r)
	e.logger.Debug("schedule", "scene", tl.Scene, "timeline", tl.Name, "entries", len(r.entries), "cues", len(r.cues))
	return r
}

// CancelGroup stops every tween on nodes matching sel and drops members of
// sel that have not started yet, whichever timeline or loop owns them.
func (e *Engine) CancelGroup(sel timeline.Selector) {
	scene := sel.Scene()
	stopped := 0
	for _, t := range e.tweens {
		if t.scene == scene && !t.group.Done && selects(sel, t.node) {
			e.stop(t)
			stopped++
		}
	}
	for _, r := range e.runs {
		if r.scene == scene && !r.Done() {
			r.excluded = append(r.excluded, sel)
		}
	}
	for _, l := range e.loops {
		if l.scene != scene {
			continue
		}
		for i := range l.members {
			mb := &l.members[i]
			if mb.node != nil && mb.tw == nil && selects(sel, mb.node) {
				mb.node = nil
			}
		}
	}
	if stopped > 0 {
		e.logger.Debug("cancel group", "selector", string(sel), "tweens", stopped)
	}
}

// TweenContinuous starts loop on every current member of its target group.
// Each member resolves its own duration, delay and targets.
func (e *Engine) TweenContinuous(loop timeline.Loop) stage.Handle {
	l := &loopRun{engine: e, loop: loop, scene: loop.Target.Scene()}
	for i, n := range e.resolve(loop.Target, nil) {
		inst := loop.Resolve(i, e.rng)
		l.members = append(l.members, loopMember{node: n, inst: inst, wait: inst.Delay})
	}
	e.loops = append(e.loops, l)
	return l
}

// --- Clock ---

// Update advances every tween, timeline and loop by dt seconds. Tweens
// started during this call are advanced by the part of dt past their start.
func (e *Engine) Update(dt float64) {
	for i, n := 0, len(e.tweens); i < n; i++ {
		t := e.tweens[i]
		if t.group.Done {
			continue
		}
		t.group.Update(float32(dt))
		if t.group.Done {
			e.release(t)
		}
	}
	for i, n := 0, len(e.runs); i < n; i++ {
		e.runs[i].advance(dt)
	}
	for i, n := 0, len(e.loops); i < n; i++ {
		e.loops[i].advance(dt)
	}

	e.tweens = slices.DeleteFunc(e.tweens, func(t *tween) bool { return t.group.Done })
	e.runs = slices.DeleteFunc(e.runs, func(r *run) bool { return r.Done() })
	e.loops = slices.DeleteFunc(e.loops, func(l *loopRun) bool { return l.Done() })
}

// confirm asks OnConfirm to accept a confirm request and disables the
// buttons when it does.
func (e *Engine) confirm() {
	if e.OnConfirm == nil || !e.OnConfirm() {
		return
	}
	for name, m := range e.mounts {
		for _, b := range m.buttons {
			if !b.Interactable {
				continue
			}
			b.Interactable = false
			e.add(&tween{group: TweenAlpha(b, 0.6, 0.2, ease.OutQuad), node: b, scene: name})
		}
	}
}

// --- Tweens ---

// tween is one TweenGroup on one node, owned by a timeline run, a loop, or
// nothing.
type tween struct {
	group    *TweenGroup
	node     *Node
	scene    string
	owner    *run
	released bool
}

func (e *Engine) add(t *tween) {
	if t.owner != nil {
		t.owner.live++
	}
	e.tweens = append(e.tweens, t)
}

// start creates a tween from the node's current values, advanced by elapsed.
func (e *Engine) start(n *Node, scene string, props []timeline.Resolved, dur float64, fn ease.TweenFunc, yoyo bool, owner *run, elapsed float64) *tween {
	g := NewTweenGroup(n, float32(dur), fn)
	g.Yoyo = yoyo
	for _, p := range props {
		addProp(g, n, p)
	}
	t := &tween{group: g, node: n, scene: scene, owner: owner}
	e.add(t)
	g.Update(float32(max(elapsed, 0)))
	if g.Done {
		e.release(t)
	}
	return t
}

func (e *Engine) stop(t *tween) {
	t.group.Stop()
	e.release(t)
}

// release settles a finished or stopped tween's owner count once.
func (e *Engine) release(t *tween) {
	if t.released {
		return
	}
	t.released = true
	if t.owner != nil {
		t.owner.live--
	}
}

// resolve returns the live members of sel, minus any matched by excluded.
func (e *Engine) resolve(sel timeline.Selector, excluded []timeline.Selector) []*Node {
	m, ok := e.mounts[sel.Scene()]
	if !ok {
		return nil
	}
	var nodes []*Node
	if sel.Group() == timeline.All {
		nodes = m.all()
	} else {
		nodes = m.groups[sel.Group()]
	}
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsDisposed() {
			continue
		}
		if slices.ContainsFunc(excluded, func(ex timeline.Selector) bool { return selects(ex, n) }) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// selects reports whether sel addresses n. Scene membership is checked by
// the caller.
func selects(sel timeline.Selector, n *Node) bool {
	g := sel.Group()
	return g == timeline.All || n.InGroup(g)
}

// addProp adds the fields behind a property to g. Relative targets are
// offsets from the value current now.
func addProp(g *TweenGroup, n *Node, p timeline.Resolved) {
	to := func(cur float64) float64 {
		if p.Relative {
			return cur + p.To
		}
		return p.To
	}
	switch p.Name {
	case timeline.PropX:
		g.Add(&n.X, to(n.X))
	case timeline.PropY:
		g.Add(&n.Y, to(n.Y))
	case timeline.PropAlpha:
		g.Add(&n.Alpha, to(n.Alpha))
	case timeline.PropScale:
		g.Add(&n.ScaleX, to(n.ScaleX))
		g.Add(&n.ScaleY, to(n.ScaleY))
	case timeline.PropScaleY:
		g.Add(&n.ScaleY, to(n.ScaleY))
	case timeline.PropRotation:
		g.Add(&n.Rotation, to(n.Rotation))
	}
}

// setProp writes a property value immediately.
func setProp(n *Node, name timeline.PropName, v float64) {
	switch name {
	case timeline.PropX:
		n.X = v
	case timeline.PropY:
		n.Y = v
	case timeline.PropAlpha:
		n.Alpha = v
	case timeline.PropScale:
		n.ScaleX, n.ScaleY = v, v
	case timeline.PropScaleY:
		n.ScaleY = v
	case timeline.PropRotation:
		n.Rotation = v
	}
	n.MarkDirty()
}

func resolved(props []timeline.Prop) []timeline.Resolved {
	out := make([]timeline.Resolved, len(props))
	for i, p := range props {
		out[i] = timeline.Resolved{Name: p.Name, To: p.To, Relative: p.Relative}
	}
	return out
}

// --- Timeline runs ---

type entryRun struct {
	entry    timeline.Entry
	resolved bool
	members  []*Node
	next     int
}

// run is one scheduled timeline. It is its own stage.Handle.
type run struct {
	engine *Engine
	scene  string
	name   string

	clock    float64
	entries  []entryRun
	cues     []timeline.Cue
	nextCue  int
	onCue    func(timeline.Cue)
	excluded []timeline.Selector

	live      int
	cancelled bool
	finished  bool
}

// Cancel stops the timeline and every tween it started.
func (r *run) Cancel() {
	if r.Done() {
		return
	}
	r.cancelled = true
	for _, t := range r.engine.tweens {
		if t.owner == r && !t.group.Done {
			r.engine.stop(t)
		}
	}
}

// Done reports whether the timeline finished or was cancelled.
func (r *run) Done() bool {
	return r.cancelled || r.finished
}

func (r *run) advance(dt float64) {
	if r.Done() {
		return
	}
	r.clock += dt
	e := r.engine

	for i := range r.entries {
		er := &r.entries[i]
		if !er.resolved {
			if r.clock < er.entry.At {
				continue
			}
			er.members = e.resolve(er.entry.Target, r.excluded)
			er.resolved = true
		}
		for er.next < len(er.members) {
			start := er.entry.Start(er.next)
			if r.clock < start {
				break
			}
			n := er.members[er.next]
			er.next++
			if n.IsDisposed() || slices.ContainsFunc(r.excluded, func(ex timeline.Selector) bool { return selects(ex, n) }) {
				continue
			}
			en := er.entry
			e.start(n, r.scene, resolved(en.Props), en.Duration, en.Ease.Func(), en.Repeat == timeline.RepeatYoyo, r, r.clock-start)
		}
	}

	for r.nextCue < len(r.cues) && r.clock >= r.cues[r.nextCue].At {
		cue := r.cues[r.nextCue]
		r.nextCue++
		if r.onCue != nil {
			r.onCue(cue)
		}
		if r.cancelled {
			return
		}
	}

	if r.live > 0 || r.nextCue < len(r.cues) {
		return
	}
	for i := range r.entries {
		if !r.entries[i].resolved || r.entries[i].next < len(r.entries[i].members) {
			return
		}
	}
	r.finished = true
	e.logger.Debug("timeline finished", "scene", r.scene, "timeline", r.name, "at", r.clock)
}

// --- Loops ---

type loopMember struct {
	node *Node
	inst timeline.Instance
	wait float64
	tw   *tween
}

// loopRun is one continuous loop over a group. It is its own stage.Handle.
type loopRun struct {
	engine    *Engine
	loop      timeline.Loop
	scene     string
	members   []loopMember
	cancelled bool
}

// Cancel stops every member where it is.
func (l *loopRun) Cancel() {
	if l.cancelled {
		return
	}
	l.cancelled = true
	for i := range l.members {
		if tw := l.members[i].tw; tw != nil && !tw.group.Done {
			l.engine.stop(tw)
		}
	}
}

// Done reports whether the loop was cancelled or has no member left to
// animate, which happens once its nodes are cancelled or disposed.
func (l *loopRun) Done() bool {
	if l.cancelled {
		return true
	}
	for _, mb := range l.members {
		if mb.node != nil && (mb.tw == nil || !mb.tw.group.Done) {
			return false
		}
	}
	return true
}

func (l *loopRun) advance(dt float64) {
	if l.Done() {
		return
	}
	for i := range l.members {
		mb := &l.members[i]
		if mb.node == nil || mb.tw != nil {
			continue
		}
		mb.wait -= dt
		if mb.wait > 0 {
			continue
		}
		if mb.node.IsDisposed() {
			mb.node = nil
			continue
		}
		mb.tw = l.engine.start(mb.node, l.scene, mb.inst.Props, mb.inst.Duration, l.loop.Ease.Func(), true, nil, -mb.wait)
	}
}
