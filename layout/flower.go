package layout

import "math"

// FlowerParams are the authored base values of one flower, before scaling.
type FlowerParams struct {
	X          float64 `yaml:"x"`
	StemHeight float64 `yaml:"stemHeight"`
	HeadSize   float64 `yaml:"headSize"`
	PetalCount int     `yaml:"petalCount,omitempty"`
	InnerCount int     `yaml:"innerCount,omitempty"`
	Rotation   float64 `yaml:"rotation"`
	Z          int     `yaml:"z"`
	Color      string  `yaml:"color,omitempty"`
}

// Scaled returns p with stem height and head size multiplied by s.
func (p FlowerParams) Scaled(s Scale) FlowerParams {
	p.StemHeight = s.Of(p.StemHeight)
	p.HeadSize = s.Of(p.HeadSize)
	return p
}

const (
	// PetalJitter bounds the random offset, in degrees, of each outer
	// sunflower petal. Inner petals are never jittered.
	PetalJitter = 2.0

	defaultSunflowerPetals = 22
	defaultSunflowerInner  = 14
	defaultGlowPetals      = 5

	tulipPetals = 5
	leafTilt    = 35.0
)

// RosePetalsPerLayer is the petal count of each rose layer, innermost last.
var RosePetalsPerLayer = [3]int{5, 7, 9}

// LayoutFlower computes the descriptor of one flower. Stem height and head
// size are scaled by s; index is the flower's position in its catalog group
// and only affects sunflower leaf pairs. rng feeds the sunflower petal jitter.
// Non-flower kinds get a descriptor with no payload.
func LayoutFlower(kind Kind, p FlowerParams, index int, s Scale, rng Rand) Descriptor {
	p = p.Scaled(s)
	p.StemHeight = nonNeg(p.StemHeight)
	p.HeadSize = nonNeg(p.HeadSize)

	d := Descriptor{
		Kind:     kind,
		Index:    index,
		X:        p.X,
		Z:        p.Z,
		Rotation: p.Rotation,
	}
	switch kind {
	case KindSunflower:
		d.Flower = sunflower(p, index, rng)
	case KindTulip:
		d.Flower = tulip(p)
	case KindRose:
		d.Flower = rose(p)
	case KindGlowFlower:
		d.Flower = glowFlower(p)
	}
	return d
}

func positive(n, fallback int) int {
	if n > 0 {
		return n
	}
	return fallback
}

func sunflower(p FlowerParams, index int, rng Rand) *Flower {
	head, stem := p.HeadSize, p.StemHeight
	outer := positive(p.PetalCount, defaultSunflowerPetals)
	inner := positive(p.InnerCount, defaultSunflowerInner)

	f := &Flower{
		StemHeight: stem,
		StemWidth:  math.Max(6, head*0.08),
		HeadSize:   head,
		HeadHeight: head,
		CenterSize: head * 0.38,
		Color:      p.Color,
		Petals:     make([]Petal, 0, outer+inner),
	}

	step := 360 / float64(outer)
	for i := 0; i < outer; i++ {
		f.Petals = append(f.Petals, Petal{
			Ring:   0,
			Angle:  step*float64(i) + Jitter(rng, 0, PetalJitter),
			Width:  head * 0.14,
			Length: head * 0.42,
			Offset: head * 0.28,
		})
	}

	innerStep := 360 / float64(inner)
	for i := 0; i < inner; i++ {
		f.Petals = append(f.Petals, Petal{
			Ring:   1,
			Angle:  innerStep*float64(i) + 180/float64(outer),
			Width:  head * 0.12,
			Length: head * 0.35,
			Offset: head * 0.18,
			Z:      1,
		})
	}

	// The tallest flower of the catalog carries an extra pair.
	pairs := 2
	if index == 0 {
		pairs = 3
	}
	leafW, leafH := head*0.32, head*0.48
	gap := stem * 0.25
	for i := 0; i < pairs; i++ {
		bottom := stem*0.12 + float64(i)*gap
		f.Leaves = append(f.Leaves,
			Leaf{Side: SideLeft, Bottom: bottom, Width: leafW, Height: leafH, Rotation: -leafTilt},
			Leaf{Side: SideRight, Bottom: bottom + gap*0.45, Width: leafW, Height: leafH, Rotation: leafTilt},
		)
	}
	return f
}

func tulip(p FlowerParams) *Flower {
	head, stem := p.HeadSize, p.StemHeight
	f := &Flower{
		StemHeight: stem,
		StemWidth:  5,
		HeadSize:   head,
		HeadHeight: head * 1.3,
		Color:      p.Color,
		Petals:     make([]Petal, 0, tulipPetals),
	}
	for i := 0; i < tulipPetals; i++ {
		k := i - tulipPetals/2
		abs := k
		if abs < 0 {
			abs = -abs
		}
		f.Petals = append(f.Petals, Petal{
			Angle:   float64(k) * 15,
			Width:   head * 0.5,
			Length:  head * 1.1,
			XOffset: float64(k) * 12,
			Bottom:  float64(abs) * 2,
			Z:       tulipPetals - abs,
		})
	}
	f.Leaves = []Leaf{{
		Side:     SideLeft,
		Bottom:   stem * 0.1,
		Width:    head * 0.3,
		Height:   stem * 0.6,
		Rotation: -20,
	}}
	return f
}

func rose(p FlowerParams) *Flower {
	head, stem := p.HeadSize, p.StemHeight
	f := &Flower{
		StemHeight: stem,
		StemWidth:  4,
		HeadSize:   head,
		HeadHeight: head,
		CenterSize: head * 0.2,
		Color:      p.Color,
	}

	for layer, count := range RosePetalsPerLayer {
		shrink := 1 - float64(layer)*0.2
		size := head * 0.3 * shrink
		step := 360 / float64(count)
		for i := 0; i < count; i++ {
			f.Petals = append(f.Petals, Petal{
				Ring:   layer,
				Angle:  step*float64(i) + float64(layer)*20,
				Width:  size,
				Length: size * 1.3,
				Offset: head * 0.15 * shrink,
				Z:      layer + 1,
			})
		}
	}

	thorns := int(stem / 30)
	for i := 0; i < thorns; i++ {
		t := Thorn{Side: SideRight, Bottom: stem*0.15 + float64(i)*30, Rotation: 45}
		if i%2 == 0 {
			t.Side, t.Rotation = SideLeft, -45
		}
		f.Thorns = append(f.Thorns, t)
	}

	f.Leaves = []Leaf{
		{Side: SideLeft, Bottom: stem * 0.3, Width: head * 0.25, Height: head * 0.35, Rotation: -30},
		{Side: SideRight, Bottom: stem * 0.5, Width: head * 0.2, Height: head * 0.3, Rotation: 25},
	}
	return f
}

func glowFlower(p FlowerParams) *Flower {
	head, stem := p.HeadSize, p.StemHeight
	count := positive(p.PetalCount, defaultGlowPetals)
	f := &Flower{
		StemHeight: stem,
		StemWidth:  5,
		HeadSize:   head,
		HeadHeight: head,
		CenterSize: head * 0.3,
		Color:      p.Color,
		Petals:     make([]Petal, 0, count),
	}

	step := 360 / float64(count)
	for i := 0; i < count; i++ {
		f.Petals = append(f.Petals, Petal{
			Angle:  step * float64(i),
			Width:  head * 0.35,
			Length: head * 0.5,
			Offset: head * 0.15,
		})
	}

	leaves := int(stem / 40)
	size := head * 0.35
	for i := 0; i < leaves; i++ {
		l := Leaf{Side: SideRight, Bottom: stem*0.15 + float64(i)*stem*0.2, Width: size, Height: size * 1.4, Rotation: leafTilt}
		if i%2 == 0 {
			l.Side, l.Rotation = SideLeft, -leafTilt
		}
		f.Leaves = append(f.Leaves, l)
	}
	return f
}
