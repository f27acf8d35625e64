package timeline

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/phanxgames/bloom/layout"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("timeline: invalid")

// Selector addresses a group of nodes as "<scene>/<group>". The group "*"
// matches every group of the scene.
type Selector string

// All is the group wildcard.
const All = "*"

// Select builds a selector for a scene group.
func Select(scene, group string) Selector {
	return Selector(scene + "/" + group)
}

// Scene returns the scene part of the selector.
func (s Selector) Scene() string {
	scene, _, _ := strings.Cut(string(s), "/")
	return scene
}

// Group returns the group part of the selector, or "" when it has none.
func (s Selector) Group() string {
	_, group, _ := strings.Cut(string(s), "/")
	return group
}

// Matches reports whether s addresses the group named by other. A wildcard
// group on either side matches any group of the same scene.
func (s Selector) Matches(other Selector) bool {
	if s.Scene() != other.Scene() {
		return false
	}
	return s.Group() == All || other.Group() == All || s.Group() == other.Group()
}

// PropName names an animatable node property.
type PropName string

const (
	PropX        PropName = "x"
	PropY        PropName = "y"
	PropAlpha    PropName = "alpha"
	PropScale    PropName = "scale"
	PropScaleY   PropName = "scaleY"
	PropRotation PropName = "rotation"
)

var propNames = []PropName{PropX, PropY, PropAlpha, PropScale, PropScaleY, PropRotation}

// Prop is one property transition. X and Y are pixel offsets from the node's
// rest position, rotation is in degrees.
type Prop struct {
	Name PropName `yaml:"name"`
	// From, when set, is applied to every target as soon as the entry is
	// scheduled, so targets hide before their staggered start.
	From *float64 `yaml:"from,omitempty"`
	To   float64  `yaml:"to"`
	// Relative adds To to the value current at start instead of replacing it.
	Relative bool `yaml:"relative,omitempty"`

	// Loop-only modifiers.
	Jitter     float64 `yaml:"jitter,omitempty"`     // To += U[-Jitter, Jitter]
	RandomSign bool    `yaml:"randomSign,omitempty"` // To = ±To, chosen per instance
	Alternate  bool    `yaml:"alternate,omitempty"`  // odd instances use -To
}

// From returns a pointer to v, for building Prop.From literals.
func From(v float64) *float64 { return &v }

// Repeat is an entry's repeat policy.
type Repeat string

const (
	RepeatNone Repeat = ""
	RepeatYoyo Repeat = "yoyo"
)

// Entry is one step of a timeline: the same property transition applied to
// every node of a group, each member starting Stagger seconds after the
// previous one.
type Entry struct {
	Target   Selector `yaml:"target"`
	Props    []Prop   `yaml:"props"`
	At       float64  `yaml:"at"`
	Duration float64  `yaml:"duration"`
	Ease     Ease     `yaml:"ease,omitempty"`
	Stagger  float64  `yaml:"stagger,omitempty"`
	Repeat   Repeat   `yaml:"repeat,omitempty"`
}

// Start returns the start time of the i-th member of the target group.
func (e Entry) Start(i int) float64 {
	return e.At + float64(i)*e.Stagger
}

// End returns the time the last of n members finishes.
func (e Entry) End(n int) float64 {
	return e.Start(max(n-1, 0)) + e.Duration
}

// Cue names.
const (
	CueSparkleBurst = "sparkle-burst"
	CueHeartBurst   = "heart-burst"
	CueIdle         = "idle"
	CueHidden       = "hidden"
	CueEntrance     = "entrance"
)

var cueNames = []string{CueSparkleBurst, CueHeartBurst, CueIdle, CueHidden, CueEntrance}

// Cue is a discrete event fired once when the timeline clock passes At.
type Cue struct {
	At   float64 `yaml:"at"`
	Name string  `yaml:"name"`
}

// Timeline is an ordered set of entries and cues for one scene. Offsets are
// seconds from the moment the timeline is scheduled.
type Timeline struct {
	Scene   string  `yaml:"scene"`
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
	Cues    []Cue   `yaml:"cues,omitempty"`
}

// Duration returns the latest entry end or cue time. Stagger is counted for a
// single member since group sizes are only known once a scene is mounted.
func (tl *Timeline) Duration() float64 {
	var d float64
	for _, e := range tl.Entries {
		d = max(d, e.At+e.Duration)
	}
	for _, c := range tl.Cues {
		d = max(d, c.At)
	}
	return d
}

// Sorted returns a copy of the entries ordered by start time. Entries starting
// together keep their authored order.
func (tl *Timeline) Sorted() []Entry {
	out := slices.Clone(tl.Entries)
	slices.SortStableFunc(out, func(a, b Entry) int { return cmp.Compare(a.At, b.At) })
	return out
}

// SortedCues returns a copy of the cues ordered by time.
func (tl *Timeline) SortedCues() []Cue {
	out := slices.Clone(tl.Cues)
	slices.SortStableFunc(out, func(a, b Cue) int { return cmp.Compare(a.At, b.At) })
	return out
}

// Validate checks every entry and cue. All problems are joined into one error
// that wraps ErrInvalid.
func (tl *Timeline) Validate() error {
	var errs []error
	if tl.Scene == "" {
		errs = append(errs, errors.New("scene is empty"))
	}
	for i, e := range tl.Entries {
		if e.Target.Scene() != tl.Scene {
			errs = append(errs, fmt.Errorf("entry %d: target %q is outside scene %q", i, e.Target, tl.Scene))
		}
		if e.Target.Group() == "" {
			errs = append(errs, fmt.Errorf("entry %d: target %q has no group", i, e.Target))
		}
		if e.At < 0 || e.Duration < 0 || e.Stagger < 0 {
			errs = append(errs, fmt.Errorf("entry %d: negative time", i))
		}
		if e.Repeat != RepeatNone && e.Repeat != RepeatYoyo {
			errs = append(errs, fmt.Errorf("entry %d: unknown repeat %q", i, e.Repeat))
		}
		errs = append(errs, checkProps(fmt.Sprintf("entry %d", i), e.Props, e.Ease)...)
	}
	for i, c := range tl.Cues {
		if c.At < 0 {
			errs = append(errs, fmt.Errorf("cue %d: negative time", i))
		}
		if !slices.Contains(cueNames, c.Name) {
			errs = append(errs, fmt.Errorf("cue %d: unknown name %q", i, c.Name))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalid, tl.Name, errors.Join(errs...))
}

func checkProps(where string, props []Prop, e Ease) []error {
	var errs []error
	if len(props) == 0 {
		errs = append(errs, fmt.Errorf("%s: no props", where))
	}
	for _, p := range props {
		if !slices.Contains(propNames, p.Name) {
			errs = append(errs, fmt.Errorf("%s: unknown prop %q", where, p.Name))
		}
		if p.Jitter < 0 {
			errs = append(errs, fmt.Errorf("%s: negative jitter on %q", where, p.Name))
		}
	}
	if !e.Known() {
		errs = append(errs, fmt.Errorf("%s: unknown ease %q", where, e))
	}
	return errs
}

// Loop is an idle transition that repeats forever, reversing on every
// completion. Each member of the target group gets its own duration and delay.
type Loop struct {
	Target Selector `yaml:"target"`
	Props  []Prop   `yaml:"props"`

	Duration       float64 `yaml:"duration"`
	DurationStep   float64 `yaml:"durationStep,omitempty"`   // added per member index
	DurationJitter float64 `yaml:"durationJitter,omitempty"` // U[0, DurationJitter] added per member

	Delay       float64 `yaml:"delay,omitempty"`
	DelayStep   float64 `yaml:"delayStep,omitempty"`
	DelayJitter float64 `yaml:"delayJitter,omitempty"`

	Ease Ease `yaml:"ease,omitempty"`
}

// Resolved is a loop prop with its per-member randomness applied.
type Resolved struct {
	Name     PropName
	To       float64
	Relative bool
}

// Instance is one member's view of a Loop.
type Instance struct {
	Duration float64
	Delay    float64
	Props    []Resolved
}

// Resolve computes the loop for member i of the target group, drawing jitter
// from rng (nil uses the shared source). Duration is never shorter than a
// frame at 60 TPS.
func (l Loop) Resolve(i int, rng layout.Rand) Instance {
	inst := Instance{
		Duration: l.Duration + float64(i)*l.DurationStep + layout.Range{Max: l.DurationJitter}.Draw(rng),
		Delay:    l.Delay + float64(i)*l.DelayStep + layout.Range{Max: l.DelayJitter}.Draw(rng),
		Props:    make([]Resolved, len(l.Props)),
	}
	inst.Duration = max(inst.Duration, 1.0/60)
	inst.Delay = max(inst.Delay, 0)
	for j, p := range l.Props {
		to := p.To
		if p.Jitter > 0 {
			to = layout.Jitter(rng, to, p.Jitter)
		}
		if p.RandomSign && layout.Pick(rng, 2) == 0 {
			to = -to
		}
		if p.Alternate && i%2 == 1 {
			to = -to
		}
		inst.Props[j] = Resolved{Name: p.Name, To: to, Relative: p.Relative}
	}
	return inst
}

// Validate checks the loop on its own.
func (l Loop) Validate() error {
	var errs []error
	if l.Target.Group() == "" {
		errs = append(errs, fmt.Errorf("target %q has no group", l.Target))
	}
	if l.Duration <= 0 {
		errs = append(errs, errors.New("duration must be positive"))
	}
	if l.DurationStep < 0 || l.DurationJitter < 0 || l.Delay < 0 || l.DelayStep < 0 || l.DelayJitter < 0 {
		errs = append(errs, errors.New("negative step or jitter"))
	}
	errs = append(errs, checkProps(string(l.Target), l.Props, l.Ease)...)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: loop %s: %w", ErrInvalid, l.Target, errors.Join(errs...))
}
