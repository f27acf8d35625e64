package bloom

import (
	"fmt"
	"math"

	"github.com/phanxgames/bloom/garden"
	"github.com/phanxgames/bloom/layout"
	"github.com/phanxgames/bloom/stage"
	"github.com/phanxgames/bloom/timeline"
)

// Palette.
var (
	stemColor        = Hex("#3E8E41")
	leafColor        = Hex("#4CAF50")
	thornColor       = Hex("#2E5E2F")
	sunflowerPetal   = Hex("#F7C948")
	sunflowerInner   = Hex("#F4A924")
	sunflowerCenter  = Hex("#5D3A1A")
	glowFlowerPetal  = Hex("#FFF176")
	glowFlowerCenter = Hex("#FFEB3B")
	buttonColor      = Hex("#FF69B4")

	petalColors = map[string]Color{
		"red":    Hex("#E53935"),
		"pink":   Hex("#FF69B4"),
		"purple": Hex("#9C27B0"),
		"white":  Hex("#FFF5F7"),
	}

	pinkPalette = []Color{
		Hex("#FF69B4"), Hex("#FF1493"), Hex("#FFB6C1"),
		Hex("#FFC0CB"), Hex("#E91E63"), Hex("#F8BBD0"),
	}
	sparklePalette = []Color{Hex("#FFF176"), Hex("#F7C948"), ColorWhite}

	// butterflyWings holds wing and spot colors.
	butterflyWings = [][2]Color{
		{Hex("#FF69B4"), Hex("#FF1493")},
		{Hex("#FFB6C1"), Hex("#FF69B4")},
		{Hex("#FFC0CB"), Hex("#FFB6C1")},
	}
)

// messageStyle is the text and glow color of a scene's messages.
var messageStyle = map[string][2]Color{
	garden.Main: {Hex("#FFF8E1"), Color{R: 247.0 / 255, G: 201.0 / 255, B: 72.0 / 255, A: 0.35}},
	garden.Rose: {Hex("#FFE4EC"), Color{R: 1, G: 105.0 / 255, B: 180.0 / 255, A: 0.35}},
}

// buttonLabels are the confirm buttons of the main scene, left to right.
var buttonLabels = []string{"Yes", "Of course!"}

// burstCounts is the particle count of each one-shot effect.
var burstCounts = map[stage.Burst]int{
	stage.BurstSparkle: 12,
	stage.BurstHeart:   8,
}

// mount is the node tree of one mounted garden scene.
type mount struct {
	name    string
	root    *Node
	groups  map[string][]*Node
	bursts  map[stage.Burst]*Node
	buttons []*Node
}

// add registers n under every group, keeping insertion order.
func (m *mount) add(n *Node, groups ...string) {
	for _, g := range groups {
		n.AddGroup(g)
		m.groups[g] = append(m.groups[g], n)
	}
}

// all returns every grouped node of the scene in tree order.
func (m *mount) all() []*Node {
	var out []*Node
	m.root.Walk(func(n *Node) bool {
		if len(n.Groups) > 0 {
			out = append(out, n)
		}
		return true
	})
	return out
}

func (m *mount) size() int {
	n := 0
	m.root.Walk(func(*Node) bool { n++; return true })
	return n
}

// builder turns one composed scene into nodes.
type builder struct {
	m        *mount
	scene    string
	width    float64
	height   float64
	rng      layout.Rand
	onButton func(label string)
}

// buildMount creates the node tree of s. Each element sits on an anchor
// container at its home position, so the element's own X and Y are offsets
// from rest, and the anchors are painted in depth order.
func buildMount(s *garden.Scene, rng layout.Rand, onButton func(label string)) *mount {
	root := NewContainer(s.Name)
	root.Interactable = true
	m := &mount{
		name:   s.Name,
		root:   root,
		groups: make(map[string][]*Node),
		bursts: make(map[stage.Burst]*Node),
	}
	m.add(root, timeline.GroupContainer)

	b := &builder{
		m:        m,
		scene:    s.Name,
		width:    s.Viewport.Width,
		height:   s.Viewport.Height,
		rng:      rng,
		onButton: onButton,
	}
	for _, d := range s.Elements {
		b.element(d)
	}
	b.messages(s.Messages)
	if s.Name == garden.Main {
		b.buttons()
	}
	b.emitters()
	return m
}

// anchor places a container at percent position (x, y) of the viewport. A
// zero y roots the anchor on the ground line.
func (b *builder) anchor(name string, x, y float64, z int) *Node {
	a := NewContainer(name + "-anchor")
	py := b.height
	if y != 0 {
		py = y / 100 * b.height
	}
	a.SetPosition(x/100*b.width, py)
	a.ZIndex = z
	b.m.root.AddChild(a)
	return a
}

func (b *builder) element(d layout.Descriptor) {
	name := fmt.Sprintf("%s-%d", d.Kind, d.Index)
	var el *Node
	switch {
	case d.Flower != nil:
		el = b.flower(name, d.Kind, d.Flower)
	case d.Blade != nil:
		el = b.blade(name, d.Kind, d.Blade)
	case d.Mote != nil:
		el = b.mote(name, d.Kind, d.Mote)
	default:
		return
	}
	el.Rotation = d.Rotation
	b.anchor(name, d.X, d.Y, d.Z).AddChild(el)
	b.m.add(el, d.Group())
}

// --- Flowers ---

func (b *builder) flower(name string, kind layout.Kind, f *layout.Flower) *Node {
	el := NewContainer(name)

	stem := NewPolygon(name+"-stem", []Vec2{
		{-f.StemWidth / 2, 0}, {f.StemWidth / 2, 0},
		{f.StemWidth * 0.35, -f.StemHeight}, {-f.StemWidth * 0.35, -f.StemHeight},
	})
	stem.Color = stemColor
	el.AddChild(stem)

	for i, l := range f.Leaves {
		leaf := NewPolygon(fmt.Sprintf("%s-leaf-%d", name, i), LeafPoints(l.Width, l.Height))
		leaf.Color = leafColor
		leaf.SetPosition(float64(l.Side)*f.StemWidth/2, -l.Bottom)
		leaf.Rotation = l.Rotation
		el.AddChild(leaf)
		b.m.add(leaf, timeline.Leaves(kind))
	}
	for i, t := range f.Thorns {
		thorn := NewPolygon(fmt.Sprintf("%s-thorn-%d", name, i), []Vec2{{-2.5, 0}, {2.5, 0}, {0, -7}})
		thorn.Color = thornColor
		thorn.SetPosition(float64(t.Side)*f.StemWidth/2, -t.Bottom)
		thorn.Rotation = t.Rotation
		el.AddChild(thorn)
	}

	head := NewContainer(name + "-head")
	head.SetPosition(0, -f.StemHeight)
	head.ZIndex = 1
	el.AddChild(head)
	b.m.add(head, timeline.Head(kind))

	switch kind {
	case layout.KindSunflower:
		b.petals(head, name, kind, f, func(p layout.Petal) Color {
			if p.Ring == 0 {
				return sunflowerPetal
			}
			return sunflowerInner
		})
		b.center(head, name, f.CenterSize, sunflowerCenter)
	case layout.KindTulip:
		b.tulipPetals(head, name, kind, f)
	case layout.KindRose:
		base := flowerColor(f.Color, petalColors["red"])
		b.petals(head, name, kind, f, func(p layout.Petal) Color {
			return shade(base, 1-0.12*float64(len(layout.RosePetalsPerLayer)-1-p.Ring))
		})
		b.center(head, name, f.CenterSize, shade(base, 0.7))
	case layout.KindGlowFlower:
		halo := NewPolygon(name+"-halo", EllipsePoints(0, 0, f.HeadSize*0.7, f.HeadSize*0.7, defaultSegments))
		halo.Color = glowFlowerPetal.WithAlpha(0.25)
		halo.BlendMode = BlendAdd
		halo.ZIndex = -1
		head.AddChild(halo)
		b.petals(head, name, kind, f, func(layout.Petal) Color { return glowFlowerPetal })
		b.center(head, name, f.CenterSize, glowFlowerCenter)
	}
	return el
}

// petals rings petals around the head origin, each rotated to its angle.
func (b *builder) petals(head *Node, name string, kind layout.Kind, f *layout.Flower, color func(layout.Petal) Color) {
	for i, p := range f.Petals {
		n := NewPolygon(fmt.Sprintf("%s-petal-%d", name, i), PetalPoints(p.Width, p.Length))
		n.Color = color(p)
		sin, cos := math.Sincos(p.Angle * math.Pi / 180)
		n.SetPosition(p.Offset*sin, -p.Offset*cos)
		n.Rotation = p.Angle
		n.ZIndex = p.Z
		head.AddChild(n)
		b.m.add(n, timeline.Petals(kind))
	}
}

// tulipPetals fans the cup from the head base.
func (b *builder) tulipPetals(head *Node, name string, kind layout.Kind, f *layout.Flower) {
	base := flowerColor(f.Color, petalColors["red"])
	for i, p := range f.Petals {
		n := NewPolygon(fmt.Sprintf("%s-petal-%d", name, i), PetalPoints(p.Width, p.Length))
		n.Color = shade(base, 0.85+0.03*float64(p.Z))
		n.SetPosition(p.XOffset/100*f.HeadSize, -p.Bottom)
		n.Rotation = p.Angle
		n.ZIndex = p.Z
		head.AddChild(n)
		b.m.add(n, timeline.Petals(kind))
	}
}

func (b *builder) center(head *Node, name string, size float64, c Color) {
	if size <= 0 {
		return
	}
	n := NewPolygon(name+"-center", EllipsePoints(0, 0, size/2, size/2, defaultSegments))
	n.Color = c
	n.ZIndex = 100
	head.AddChild(n)
}

func flowerColor(name string, fallback Color) Color {
	if c, ok := petalColors[name]; ok {
		return c
	}
	return fallback
}

// shade scales the color's RGB by k.
func shade(c Color, k float64) Color {
	return Color{clamp01(c.R * k), clamp01(c.G * k), clamp01(c.B * k), c.A}
}

// --- Blades ---

func (b *builder) blade(name string, kind layout.Kind, bl *layout.Blade) *Node {
	var pts []Vec2
	var c Color
	switch kind {
	case layout.KindFrontLeaf:
		pts = LeafPoints(bl.Width, bl.Height)
		c = HSL(bl.Hue, 55, bl.Lightness, bl.Opacity)
	case layout.KindLongGrass:
		bend := bl.Width
		if bl.Flip {
			bend = -bend
		}
		pts = BladePoints(math.Max(3, bl.Width*0.25), bl.Height, bend)
		c = HSL(bl.Hue, 50, bl.Lightness, bl.Opacity)
	default:
		bend := bl.Height * 0.06
		if bl.Flip {
			bend = -bend
		}
		pts = BladePoints(bl.Width, bl.Height, bend)
		c = HSL(bl.Hue, 60, bl.Lightness, bl.Opacity)
	}
	n := NewPolygon(name, pts)
	n.Color = c
	return n
}

// --- Motes ---

func (b *builder) mote(name string, kind layout.Kind, mt *layout.Mote) *Node {
	switch kind {
	case layout.KindFirefly:
		return b.firefly(name, mt)
	case layout.KindFloatingHeart:
		n := NewPolygon(name, HeartPoints(mt.Size))
		n.Color = pinkPalette[mt.Palette%len(pinkPalette)].WithAlpha(mt.Opacity)
		n.Alpha = 0
		n.OnUpdate = floatUp(n, mt.Delay, mt.Duration, b.height+2*mt.Size)
		return n
	case layout.KindStar:
		n := NewPolygon(name, StarPoints(mt.Size, mt.Size*0.45, 4))
		n.Color = HSL(mt.Hue, 100, 85, mt.Opacity)
		n.BlendMode = BlendAdd
		n.OnUpdate = twinkle(n, mt.Delay, mt.Duration)
		return n
	case layout.KindButterfly:
		return b.butterfly(name, mt)
	case layout.KindGlow:
		n := NewContainer(name)
		c := HSL(mt.Hue, 100, 65, mt.Opacity)
		// Concentric additive discs stand in for a radial gradient.
		for i, k := range [...]float64{1, 0.75, 0.5, 0.3} {
			r := mt.Size / 2 * k
			disc := NewPolygon(fmt.Sprintf("%s-disc-%d", name, i), EllipsePoints(0, 0, r, r, 32))
			disc.Color = c.WithAlpha(mt.Opacity * 0.3)
			disc.BlendMode = BlendAdd
			n.AddChild(disc)
		}
		return n
	}
	return NewContainer(name)
}

func (b *builder) firefly(name string, mt *layout.Mote) *Node {
	c := HSL(mt.Hue, 100, 70, 1)
	if b.scene == garden.Rose {
		c = pinkPalette[mt.Palette%4]
	}
	n := NewContainer(name)
	n.Alpha = mt.Opacity

	halo := NewPolygon(name+"-halo", EllipsePoints(0, 0, mt.Size*2, mt.Size*2, 16))
	halo.Color = c.WithAlpha(0.35)
	halo.BlendMode = BlendAdd
	n.AddChild(halo)

	core := NewPolygon(name+"-core", EllipsePoints(0, 0, mt.Size/2, mt.Size/2, 12))
	core.Color = c
	n.AddChild(core)
	return n
}

func (b *builder) butterfly(name string, mt *layout.Mote) *Node {
	colors := butterflyWings[mt.Palette%len(butterflyWings)]
	s := mt.Size
	n := NewContainer(name)

	wings := [2]*Node{}
	for i, side := range [...]float64{-1, 1} {
		w := NewContainer(fmt.Sprintf("%s-wing-%d", name, i))
		upper := NewPolygon(w.Name+"-upper", EllipsePoints(side*s*0.3, -s*0.15, s*0.3, s*0.25, 16))
		upper.Color = colors[0]
		lower := NewPolygon(w.Name+"-lower", EllipsePoints(side*s*0.22, s*0.18, s*0.2, s*0.16, 12))
		lower.Color = colors[0]
		spot := NewPolygon(w.Name+"-spot", EllipsePoints(side*s*0.32, -s*0.15, s*0.08, s*0.08, 8))
		spot.Color = colors[1]
		w.AddChild(upper)
		w.AddChild(lower)
		w.AddChild(spot)
		n.AddChild(w)
		wings[i] = w
	}
	body := NewPolygon(name+"-body", EllipsePoints(0, 0, s*0.05, s*0.35, 10))
	body.Color = Hex("#4A2C2A")
	body.ZIndex = 1
	n.AddChild(body)

	n.OnUpdate = flutter(n, wings, b.rng.Float64()*2*math.Pi)
	return n
}

// --- Text and buttons ---

// textSize is the message font size for the viewport width.
func (b *builder) textSize() float64 {
	return math.Max(18, math.Min(34, b.width/22))
}

func (b *builder) messages(lines []string) {
	style := messageStyle[b.scene]
	size := b.textSize()
	for i, line := range lines {
		s := size
		if i == len(lines)-1 {
			s *= 1.15
		}
		n := NewText(fmt.Sprintf("message-%d", i+1), line, s)
		n.Label.Color = style[0]
		n.Label.Glow = style[1]
		b.anchor(n.Name, 50, 12+7.5*float64(i), layout.ZMessage).AddChild(n)
		b.m.add(n, timeline.GroupMessage, timeline.Message(i+1))
	}
}

func (b *builder) buttons() {
	size := b.textSize() * 0.8
	y := 12 + 7.5*float64(len(b.m.groups[timeline.GroupMessage])) + 4
	for i, text := range buttonLabels {
		label := NewText(fmt.Sprintf("button-%d-label", i+1), text, size)
		lw, lh := label.Label.Measure()
		w, h := lw+2*size, lh+size

		btn := NewPolygon(fmt.Sprintf("button-%d", i+1), RoundedRectPoints(w, h, h/2))
		btn.Color = buttonColor
		btn.HitShape = HitRect{X: -w / 2, Y: -h / 2, Width: w, Height: h}
		btn.Interactable = true
		btn.UserData = text
		btn.OnClick = func(ctx ClickContext) { b.onButton(ctx.UserData.(string)) }
		btn.AddChild(label)

		x := 50 + (float64(i)-float64(len(buttonLabels)-1)/2)*22
		a := b.anchor(btn.Name, x, y, layout.ZButton)
		a.Interactable = true
		a.AddChild(btn)
		b.m.add(btn, timeline.GroupButton)
		b.m.buttons = append(b.m.buttons, btn)
	}
}

// --- Bursts ---

// emitters adds the one-shot burst emitters above everything else. Spawn
// areas are fractions of the viewport.
func (b *builder) emitters() {
	w, h := b.width, b.height

	sparkle := NewParticleEmitter(b.scene+"-sparkle", EmitterConfig{
		MaxParticles: 48,
		Area:         Rect{X: 0.2 * w, Y: 0.3 * h, Width: 0.6 * w, Height: 0.4 * h},
		Lifetime:     Range{1.1, 1.3},
		Speed:        Range{20, 80},
		Angle:        Range{0, 2 * math.Pi},
		Spin:         Range{-360, 360},
		StartScale:   Range{1.5, 1.5},
		EndScale:     Range{0, 0},
		StartAlpha:   Range{1, 1},
		EndAlpha:     Range{0, 0},
		Colors:       sparklePalette,
		Shape:        StarPoints(6, 2.5, 4),
		BlendMode:    BlendAdd,
	})
	sparkle.Emitter.SetRand(b.rng)
	sparkle.ZIndex = layout.ZButton + 1
	b.m.root.AddChild(sparkle)
	b.m.bursts[stage.BurstSparkle] = sparkle

	hearts := NewParticleEmitter(b.scene+"-hearts", EmitterConfig{
		MaxParticles: 32,
		Area:         Rect{X: 0.35 * w, Y: 0.15 * h, Width: 0.3 * w, Height: 0.1 * h},
		Lifetime:     Range{2.5, 3.5},
		Speed:        Range{60, 100},
		Angle:        Range{-math.Pi/2 - 0.45, -math.Pi/2 + 0.45},
		Spin:         Range{-20, 20},
		StartScale:   Range{0.6, 1.4},
		EndScale:     Range{1.2, 1.2},
		StartAlpha:   Range{0.9, 0.9},
		EndAlpha:     Range{0, 0},
		Colors:       pinkPalette,
		Shape:        HeartPoints(10),
	})
	hearts.Emitter.SetRand(b.rng)
	hearts.ZIndex = layout.ZButton + 1
	b.m.root.AddChild(hearts)
	b.m.bursts[stage.BurstHeart] = hearts
}
