package layout

import "iter"

// AmbientSpec describes how one ambient kind is scattered over a scene. Every
// placement field is drawn uniformly from its range.
type AmbientSpec struct {
	Kind Kind `yaml:"kind"`
	// Counts holds the element count for the narrow, medium and wide density
	// buckets (see Bucket).
	Counts [3]int `yaml:"counts"`

	X        Range `yaml:"x"`
	Y        Range `yaml:"y"`
	Rotation Range `yaml:"rotation"`

	// Blade kinds.
	Height     Range   `yaml:"height"`
	Width      Range   `yaml:"width"`
	WidthRatio float64 `yaml:"widthRatio,omitempty"` // when set, width = height * WidthRatio
	Hue        Range   `yaml:"hue"`
	Lightness  Range   `yaml:"lightness"`
	Opacity    Range   `yaml:"opacity"`
	Flip       bool    `yaml:"flip,omitempty"` // randomly mirror half the blades

	// Mote kinds.
	Size     Range `yaml:"size"`
	Delay    Range `yaml:"delay"`
	Duration Range `yaml:"duration"`
	Palette  int   `yaml:"palette,omitempty"` // number of palette entries to pick from

	Z int `yaml:"z"`
}

// Count returns how many elements the spec produces for the viewport.
func (s AmbientSpec) Count(v Viewport) int {
	return s.Counts[Bucket(v.Width)]
}

// LayoutAmbient returns a lazy, finite sequence of ambient descriptors for the
// viewport. Each element is drawn from rng as the sequence is consumed, so
// ranging over the result twice yields two different scatterings.
func LayoutAmbient(spec AmbientSpec, v Viewport, rng Rand) iter.Seq[Descriptor] {
	n := spec.Count(v)
	return func(yield func(Descriptor) bool) {
		for i := 0; i < n; i++ {
			if !yield(spec.place(i, rng)) {
				return
			}
		}
	}
}

func (s AmbientSpec) place(i int, rng Rand) Descriptor {
	d := Descriptor{
		Kind:  s.Kind,
		Index: i,
		X:     s.X.Draw(rng),
		Y:     s.Y.Draw(rng),
		Z:     s.Z,
	}
	switch s.Kind {
	case KindGrassBlade, KindLongGrass, KindFrontLeaf:
		d.Rotation = s.Rotation.Draw(rng)
		h := nonNeg(s.Height.Draw(rng))
		w := nonNeg(s.Width.Draw(rng))
		if s.WidthRatio > 0 {
			w = h * s.WidthRatio
		}
		b := &Blade{
			Height:    h,
			Width:     w,
			Hue:       s.Hue.Draw(rng),
			Lightness: s.Lightness.Draw(rng),
			Opacity:   s.Opacity.Draw(rng),
		}
		if s.Flip {
			b.Flip = orShared(rng).Float64() > 0.5
		}
		d.Blade = b
	default:
		d.Rotation = s.Rotation.Draw(rng)
		d.Mote = &Mote{
			Size:     nonNeg(s.Size.Draw(rng)),
			Hue:      s.Hue.Draw(rng),
			Palette:  Pick(rng, s.Palette),
			Delay:    nonNeg(s.Delay.Draw(rng)),
			Duration: nonNeg(s.Duration.Draw(rng)),
			Opacity:  s.Opacity.Draw(rng),
		}
	}
	return d
}

// DefaultAmbient returns the main-garden scattering for kind. Kinds that are
// not ambient (flowers and front leaves) get a spec with zero counts.
func DefaultAmbient(kind Kind) AmbientSpec {
	switch kind {
	case KindGrassBlade:
		return AmbientSpec{
			Kind:      kind,
			Counts:    [3]int{25, 40, 60},
			X:         Range{0, 100},
			Rotation:  Range{-15, 15},
			Height:    Range{30, 110},
			Width:     Range{3, 5},
			Hue:       Range{80, 120},
			Lightness: Range{25, 45},
			Opacity:   Range{0.5, 1},
			Z:         ZGrass,
		}
	case KindLongGrass:
		return AmbientSpec{
			Kind:       kind,
			Counts:     [3]int{4, 8, 8},
			X:          Range{0, 100},
			Rotation:   Range{-25, 25},
			Height:     Range{50, 110},
			WidthRatio: 0.4,
			Hue:        Range{100, 120},
			Lightness:  Range{30, 45},
			Opacity:    Range{1, 1},
			Flip:       true,
			Z:          ZGrass,
		}
	case KindFirefly:
		return AmbientSpec{
			Kind:    kind,
			Counts:  [3]int{5, 10, 10},
			X:       Range{10, 90},
			Y:       Range{30, 80},
			Size:    Range{4, 6},
			Hue:     Range{50, 58},
			Opacity: Range{0.2, 0.2},
			Z:       ZFirefly,
		}
	case KindFloatingHeart:
		return AmbientSpec{
			Kind:     kind,
			Counts:   [3]int{10, 15, 15},
			X:        Range{0, 100},
			Y:        Range{100, 100},
			Size:     Range{12, 30},
			Delay:    Range{0, 8},
			Duration: Range{6, 10},
			Hue:      Range{330, 350},
			Opacity:  Range{0.7, 0.7},
			Palette:  6,
			Z:        ZHeart,
		}
	case KindStar:
		return AmbientSpec{
			Kind:     kind,
			Counts:   [3]int{10, 18, 18},
			X:        Range{0, 100},
			Y:        Range{0, 40},
			Size:     Range{2, 5},
			Delay:    Range{0, 2},
			Duration: Range{2, 2},
			Hue:      Range{50, 60},
			Opacity:  Range{0.8, 0.8},
			Z:        ZStar,
		}
	case KindButterfly:
		return AmbientSpec{
			Kind:    kind,
			Counts:  [3]int{2, 4, 4},
			X:       Range{20, 80},
			Y:       Range{30, 70},
			Size:    Range{15, 25},
			Hue:     Range{330, 350},
			Opacity: Range{1, 1},
			Palette: 3,
			Z:       ZButterfly,
		}
	case KindGlow:
		return AmbientSpec{
			Kind:    kind,
			Counts:  [3]int{3, 3, 3},
			X:       Range{20, 80},
			Y:       Range{20, 50},
			Size:    Range{160, 240},
			Hue:     Range{40, 50},
			Opacity: Range{0.35, 0.35},
			Z:       ZGlow,
		}
	}
	return AmbientSpec{Kind: kind}
}
