package stage

import (
	"github.com/phanxgames/bloom/garden"
	"github.com/phanxgames/bloom/timeline"
)

// Handle is the cancellation token of one scheduled timeline or loop.
type Handle interface {
	// Cancel stops the animation where it is. Cancelling twice is a no-op.
	Cancel()
	// Done reports whether the animation finished or was cancelled.
	Done() bool
}

// AnimationEngine runs timeline data against a clock. Implementations resolve
// selectors against whatever is mounted when an entry starts; a selector with
// no nodes is skipped.
type AnimationEngine interface {
	// Schedule starts tl now. onCue is called once per cue, in time order,
	// from the engine's update loop.
	Schedule(tl *timeline.Timeline, onCue func(timeline.Cue)) Handle
	// CancelGroup stops every tween on nodes matching sel, including tweens
	// started by timelines whose handles were dropped.
	CancelGroup(sel timeline.Selector)
	// TweenContinuous starts loop on every node of its target group. It
	// repeats forever, reversing each time, until cancelled.
	TweenContinuous(loop timeline.Loop) Handle
}

// Burst names a one-shot particle effect.
type Burst string

const (
	BurstSparkle Burst = Burst(timeline.CueSparkleBurst)
	BurstHeart   Burst = Burst(timeline.CueHeartBurst)
)

// Renderer turns composed scenes into drawable nodes. Every method is a no-op
// when the named scene's container is not mounted.
type Renderer interface {
	Mount(s *garden.Scene)
	Unmount(name string)
	Burst(scene string, b Burst)
}
