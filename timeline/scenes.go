package timeline

import (
	"fmt"

	"github.com/phanxgames/bloom/garden"
	"github.com/phanxgames/bloom/layout"
)

// Timeline names.
const (
	NameEntrance = "entrance"
	NameExit     = "exit"
	NameEnter    = "enter"
)

// Set bundles what a scene plays on its own: the entrance and the idle loops
// started by its idle cue.
type Set struct {
	Entrance Timeline `yaml:"entrance"`
	Idle     []Loop   `yaml:"idle"`
}

// ForScene returns the entrance and idle loops of a named scene.
func ForScene(name string) (Set, error) {
	switch name {
	case garden.Main:
		return Set{Entrance: MainEntrance(), Idle: MainIdle()}, nil
	case garden.Rose:
		return Set{Entrance: RoseEntrance(), Idle: RoseIdle()}, nil
	}
	return Set{}, fmt.Errorf("%w: %q", garden.ErrUnknownScene, name)
}

func set(name PropName, to float64) Prop { return Prop{Name: name, To: to} }

func fromTo(name PropName, from, to float64) Prop {
	return Prop{Name: name, From: From(from), To: to}
}

func add(name PropName, by float64) Prop {
	return Prop{Name: name, To: by, Relative: true}
}

func entry(sel Selector, at, dur float64, e Ease, stagger float64, props ...Prop) Entry {
	return Entry{Target: sel, Props: props, At: at, Duration: dur, Ease: e, Stagger: stagger}
}

// rise lifts a flower group from below while it fades in.
func rise(sel Selector, from, at, dur, stagger float64) Entry {
	return entry(sel, at, dur, Power2Out, stagger, fromTo(PropY, from, 0), fromTo(PropAlpha, 0, 1))
}

func glowIn(scene string) Entry {
	return entry(Select(scene, layout.KindGlow.String()), 0, 1.5, "", 0.2,
		fromTo(PropAlpha, 0, 1), set(PropScale, 1.2))
}

// shake is the three-step head flourish.
func shake(sel Selector, stagger float64) []Entry {
	return []Entry{
		entry(sel, 2.2, 0.2, Power2Out, stagger, set(PropRotation, 8)),
		entry(sel, 2.4, 0.15, "", stagger, set(PropRotation, -5)),
		entry(sel, 2.55, 0.3, ElasticOut, stagger, set(PropRotation, 0)),
	}
}

// bounce dips a group up by lift pixels, then settles it elastically.
func bounce(sel Selector, lift, at, up, settleAt, settle, stagger float64) []Entry {
	return []Entry{
		entry(sel, at, up, Power2Out, stagger, set(PropY, -lift)),
		entry(sel, settleAt, settle, ElasticOut, stagger, set(PropY, 0)),
	}
}

// messages reveals the three message lines; the confirm button follows the last.
func messages(scene string) []Entry {
	reveal := func(group string, at, dur float64, e Ease) Entry {
		return entry(Select(scene, group), at, dur, e, 0,
			fromTo(PropAlpha, 0, 1), fromTo(PropY, 30, 0), fromTo(PropScale, 0.8, 1))
	}
	out := []Entry{
		reveal(Message(1), 2.8, 1, ElasticOut),
		reveal(Message(2), 3.2, 1, ElasticOut),
		reveal(Message(3), 3.6, 0.8, BackOut),
	}
	if scene == garden.Main {
		out = append(out, reveal(GroupButton, 3.6, 0.8, BackOut))
	}
	return out
}

// MainEntrance is the layered reveal of the main garden.
func MainEntrance() Timeline {
	const s = garden.Main
	sel := func(k layout.Kind) Selector { return Select(s, k.String()) }
	head := func(k layout.Kind) Selector { return Select(s, Head(k)) }

	e := []Entry{
		glowIn(s),
		entry(sel(layout.KindGlow), 1.5, 0.5, Power2Out, 0, set(PropScale, 1)),
		rise(sel(layout.KindSunflower), 500, 0.2, 1.5, 0.2),
		rise(sel(layout.KindTulip), 400, 0.5, 1.3, 0.15),
		rise(sel(layout.KindRose), 350, 0.6, 1.2, 0.18),
		rise(sel(layout.KindGlowFlower), 300, 0.4, 1.4, 0.12),
		entry(sel(layout.KindFrontLeaf), 0.5, 1.2, ElasticOut, 0.05, fromTo(PropScaleY, 0, 1)),
	}
	e = append(e, bounce(sel(layout.KindSunflower), 20, 1.7, 0.3, 2, 0.5, 0.1)...)
	e = append(e, shake(head(layout.KindSunflower), 0.1)...)
	e = append(e, bounce(sel(layout.KindTulip), 10, 1.8, 0.25, 2.05, 0.4, 0.08)...)
	e = append(e, bounce(sel(layout.KindRose), 10, 1.8, 0.25, 2.05, 0.4, 0.08)...)
	e = append(e,
		entry(head(layout.KindGlowFlower), 1.8, 0.3, Power2Out, 0.1, set(PropScale, 1.15)),
		entry(head(layout.KindGlowFlower), 2.1, 0.4, ElasticOut, 0.1, set(PropScale, 1)),
		entry(Select(s, Petals(layout.KindGlowFlower)), 2.2, 0.4, "", 0.02,
			fromTo(PropAlpha, 0.3, 1), fromTo(PropScale, 0.8, 1)),
		entry(Select(s, Petals(layout.KindSunflower)), 2.4, 0.3, "", 0.01, fromTo(PropAlpha, 0.7, 1)),
	)
	e = append(e, messages(s)...)

	return Timeline{
		Scene:   s,
		Name:    NameEntrance,
		Entries: e,
		Cues: []Cue{
			{At: 1.8, Name: CueSparkleBurst},
			{At: 2.2, Name: CueSparkleBurst},
			{At: 2.6, Name: CueSparkleBurst},
			{At: 3.3, Name: CueHeartBurst},
			{At: 4.2, Name: CueIdle},
		},
	}
}

// RoseEntrance raises the rose garden the way the main garden raises its
// sunflowers.
func RoseEntrance() Timeline {
	const s = garden.Rose
	roses := Select(s, layout.KindRose.String())

	e := []Entry{
		glowIn(s),
		rise(roses, 500, 0.2, 1.5, 0.15),
	}
	e = append(e, bounce(roses, 20, 1.7, 0.3, 2, 0.5, 0.1)...)
	e = append(e, shake(Select(s, Head(layout.KindRose)), 0.08)...)
	e = append(e, messages(s)...)

	return Timeline{
		Scene:   s,
		Name:    NameEntrance,
		Entries: e,
		Cues:    []Cue{{At: 4, Name: CueIdle}},
	}
}

func sway(sel Selector, by, dur, durStep float64) Loop {
	return Loop{Target: sel, Props: []Prop{add(PropRotation, by)}, Duration: dur, DurationStep: durStep, Ease: SineInOut}
}

// ambientIdle is shared by both scenes: glow pulse, firefly flicker and drift,
// grass sway.
func ambientIdle(scene string) []Loop {
	sel := func(k layout.Kind) Selector { return Select(scene, k.String()) }
	return []Loop{
		{
			Target: sel(layout.KindGlow), Duration: 3, DelayStep: 0.4, Ease: SineInOut,
			Props: []Prop{set(PropAlpha, 0.6), set(PropScale, 1.15)},
		},
		{
			Target: sel(layout.KindFirefly), Duration: 1, DurationJitter: 1, DelayJitter: 3, Ease: SineInOut,
			Props: []Prop{set(PropAlpha, 0.9)},
		},
		{
			Target: sel(layout.KindFirefly), Duration: 4, DurationJitter: 4, DelayJitter: 3, Ease: SineInOut,
			Props: []Prop{{Name: PropX, Jitter: 50}, {Name: PropY, Jitter: 40}},
		},
		{
			Target: sel(layout.KindGrassBlade), Duration: 1.5, DurationJitter: 1.5, DelayJitter: 0.5, Ease: SineInOut,
			Props: []Prop{{Name: PropRotation, To: 8, Relative: true, RandomSign: true}},
		},
	}
}

// MainIdle returns the main garden's idle loops.
func MainIdle() []Loop {
	const s = garden.Main
	sel := func(k layout.Kind) Selector { return Select(s, k.String()) }
	head := func(k layout.Kind) Selector { return Select(s, Head(k)) }
	leaf := func(k layout.Kind) Selector { return Select(s, Leaves(k)) }

	tulip := sway(sel(layout.KindTulip), 6, 2, 0.2)
	tulip.DelayStep = 0.1
	rose := sway(sel(layout.KindRose), 5, 2.3, 0.2)
	rose.DelayStep = 0.15
	glowFlower := sway(sel(layout.KindGlowFlower), 5, 2.5, 0.3)
	glowFlower.DelayStep = 0.2

	loops := []Loop{
		sway(sel(layout.KindSunflower), 4, 2.5, 0.3),
		tulip,
		rose,
		glowFlower,
		{
			Target: head(layout.KindSunflower), Duration: 3, DurationStep: 0.3, Ease: SineInOut,
			Props: []Prop{set(PropRotation, 5)},
		},
		{
			Target: head(layout.KindTulip), Duration: 2.5, DurationStep: 0.2, Ease: SineInOut,
			Props: []Prop{set(PropRotation, 8), set(PropScaleY, 1.02)},
		},
		{
			Target: head(layout.KindRose), Duration: 3, DurationStep: 0.3, Ease: SineInOut,
			Props: []Prop{set(PropScale, 1.05), set(PropRotation, 3)},
		},
		{
			Target: head(layout.KindGlowFlower), Duration: 2, DurationStep: 0.3, Ease: SineInOut,
			Props: []Prop{set(PropScale, 1.05)},
		},
		{
			Target: leaf(layout.KindSunflower), Duration: 1.8, DurationJitter: 0.5, DelayStep: 0.05, Ease: SineInOut,
			Props: []Prop{{Name: PropRotation, To: -8, Relative: true, Alternate: true}},
		},
		{
			Target: leaf(layout.KindTulip), Duration: 2, DurationJitter: 0.5, Ease: SineInOut,
			Props: []Prop{add(PropRotation, -10)},
		},
		{
			Target: leaf(layout.KindRose), Duration: 2.2, DurationJitter: 0.5, Ease: SineInOut,
			Props: []Prop{add(PropRotation, 8), set(PropScale, 1.05)},
		},
		{
			Target: leaf(layout.KindGlowFlower), Duration: 1.5, DurationJitter: 0.5, DelayStep: 0.1, Ease: SineInOut,
			Props: []Prop{{Name: PropRotation, To: -10, Relative: true, Alternate: true}},
		},
		{
			Target: sel(layout.KindFrontLeaf), Duration: 2, DurationJitter: 1, DelayStep: 0.05, Ease: SineInOut,
			Props: []Prop{{Name: PropRotation, To: 8, Relative: true, RandomSign: true}},
		},
		{
			Target: sel(layout.KindLongGrass), Duration: 2, DurationJitter: 1.5, DelayJitter: 0.5, Ease: SineInOut,
			Props: []Prop{{Name: PropRotation, To: 12, Relative: true, RandomSign: true}},
		},
	}
	return append(loops, ambientIdle(s)...)
}

// RoseIdle returns the rose garden's idle loops.
func RoseIdle() []Loop {
	const s = garden.Rose
	loops := []Loop{
		sway(Select(s, layout.KindRose.String()), 4, 2.5, 0.3),
		{
			Target: Select(s, Head(layout.KindRose)), Duration: 3, DurationStep: 0.3, Ease: SineInOut,
			Props: []Prop{set(PropRotation, 5)},
		},
		{
			Target: Select(s, Leaves(layout.KindRose)), Duration: 1.8, DurationJitter: 0.5, DelayStep: 0.05, Ease: SineInOut,
			Props: []Prop{add(PropRotation, 8)},
		},
	}
	return append(loops, ambientIdle(s)...)
}

// flowerKinds lists the flower groups each scene drops on exit.
var flowerKinds = map[string][]layout.Kind{
	garden.Main: {layout.KindSunflower, layout.KindTulip, layout.KindRose, layout.KindGlowFlower},
	garden.Rose: {layout.KindRose},
}

// ExitTimeline fades a scene out: messages drift up, flowers drop and the
// container fades. The hidden cue fires once everything is invisible.
func ExitTimeline(scene string) Timeline {
	e := []Entry{
		entry(Select(scene, GroupMessage), 0, 0.5, "", 0.1, set(PropAlpha, 0), set(PropY, -30)),
		entry(Select(scene, GroupButton), 0, 0.5, "", 0, set(PropAlpha, 0)),
	}
	for _, k := range flowerKinds[scene] {
		e = append(e, entry(Select(scene, k.String()), 0, 0.7, Power2In, 0.05, add(PropY, 80), set(PropAlpha, 0)))
	}
	e = append(e, entry(Select(scene, GroupContainer), 0.4, 0.8, "", 0, set(PropAlpha, 0)))
	return Timeline{
		Scene:   scene,
		Name:    NameExit,
		Entries: e,
		Cues:    []Cue{{At: 1.2, Name: CueHidden}},
	}
}

// EnterTimeline fades a freshly mounted scene in and cues its entrance.
func EnterTimeline(scene string) Timeline {
	return Timeline{
		Scene:   scene,
		Name:    NameEnter,
		Entries: []Entry{entry(Select(scene, GroupContainer), 0, 0.5, "", 0, fromTo(PropAlpha, 0, 1))},
		Cues:    []Cue{{At: 0.5, Name: CueEntrance}},
	}
}
