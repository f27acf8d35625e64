package garden

import (
	"errors"
	"fmt"
	"slices"

	"github.com/phanxgames/bloom/layout"
)

// ErrUnknownScene is returned by Compose for a name that is not in Names.
var ErrUnknownScene = errors.New("garden: unknown scene")

// Scene is the fully computed content of one named scene. It is rebuilt from
// scratch on every load, resize and transition; nothing is patched in place.
type Scene struct {
	Name     string              `yaml:"name"`
	Viewport layout.Viewport     `yaml:"viewport"`
	Scale    layout.Scale        `yaml:"scale"`
	Density  Density             `yaml:"density"`
	Elements []layout.Descriptor `yaml:"elements"`
	Messages []string            `yaml:"messages"`
}

// Compose builds the named scene for the viewport. messages may be nil, in
// which case DefaultMessages is used.
func Compose(name string, v layout.Viewport, rng layout.Rand, messages []string) (*Scene, error) {
	switch name {
	case Main:
		return ComposeMain(v, rng, messages), nil
	case Rose:
		return ComposeRose(v, rng, messages), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

func newScene(name string, v layout.Viewport, messages []string) *Scene {
	if messages == nil {
		messages = DefaultMessages()[name]
	}
	return &Scene{
		Name:     name,
		Viewport: v,
		Scale:    layout.DeriveScale(v),
		Density:  DensityFor(v),
		Messages: slices.Clone(messages),
	}
}

// ComposeMain builds the main garden: three sunflowers, four tulips, two
// roses, three glow flowers, two fans of front leaves and the ambient sets.
func ComposeMain(v layout.Viewport, rng layout.Rand, messages []string) *Scene {
	s := newScene(Main, v, messages)

	s.addAmbient(rng)
	for i, p := range MainSunflowers {
		s.add(layout.LayoutFlower(layout.KindSunflower, p, i, s.Scale, rng))
	}
	for i, p := range MainTulips {
		s.add(layout.LayoutFlower(layout.KindTulip, p, i, s.Scale, rng))
	}
	for i, p := range MainRoses {
		s.add(layout.LayoutFlower(layout.KindRose, p, i, s.Scale, rng))
	}
	glow := layout.Scale(s.Density.GlowFlowerSize)
	for i, p := range MainGlowFlowers {
		s.add(layout.LayoutFlower(layout.KindGlowFlower, p, i, glow, rng))
	}
	s.addFrontLeaves()
	return s
}

// ComposeRose builds the rose garden. Every catalog rose gets independent
// jitter on position, stem, head and tilt; its depth stays as authored.
func ComposeRose(v layout.Viewport, rng layout.Rand, messages []string) *Scene {
	s := newScene(Rose, v, messages)

	s.addAmbient(rng)
	size := s.Density.RoseGardenSize
	for i, base := range RoseGarden {
		p := layout.FlowerParams{
			X:          layout.Jitter(rng, base.X, RoseJitterX),
			StemHeight: layout.Jitter(rng, base.Stem*size, RoseJitterStem),
			HeadSize:   layout.Jitter(rng, base.Head*size, RoseJitterHead),
			Rotation:   layout.Jitter(rng, 0, RoseJitterRotation),
			Color:      RoseColors[i%len(RoseColors)],
			Z:          base.Z,
		}
		s.add(layout.LayoutFlower(layout.KindRose, p, i, 1, rng))
	}
	return s
}

func (s *Scene) add(d layout.Descriptor) {
	s.Elements = append(s.Elements, d)
}

func (s *Scene) addAmbient(rng layout.Rand) {
	for _, spec := range ambient(s.Name) {
		for d := range layout.LayoutAmbient(spec, s.Viewport, rng) {
			s.add(d)
		}
	}
}

// addFrontLeaves fans five leaves on each side. Left leaves lean from -30°
// toward the center; right leaves mirror them.
func (s *Scene) addFrontLeaves() {
	size := s.Density.FrontLeafSize
	n := 0
	for _, side := range []layout.Side{layout.SideLeft, layout.SideRight} {
		x := frontPlantInset
		if side == layout.SideRight {
			x = 100 - frontPlantInset
		}
		for i := 0; i < FrontLeavesPerSide; i++ {
			h := (50 + float64(i)*15) * size
			rot := -30 + float64(i)*12
			if side == layout.SideRight {
				rot = -rot
			}
			s.add(layout.Descriptor{
				Kind:     layout.KindFrontLeaf,
				Index:    n,
				X:        x,
				Z:        layout.ZFrontLeaf,
				Rotation: rot,
				Blade: &layout.Blade{
					Height:    h,
					Width:     h * 0.3,
					Hue:       110,
					Lightness: 35,
					Opacity:   0.7 + float64(i)*0.06,
					Side:      side,
				},
			})
			n++
		}
	}
}

// Of returns the scene's elements of one kind, in composition order.
func (s *Scene) Of(kind layout.Kind) []layout.Descriptor {
	var out []layout.Descriptor
	for _, d := range s.Elements {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Counts returns the number of elements per kind.
func (s *Scene) Counts() map[layout.Kind]int {
	out := make(map[layout.Kind]int)
	for _, d := range s.Elements {
		out[d.Kind]++
	}
	return out
}

// ZSet returns the distinct depth values of the scene, ascending.
func (s *Scene) ZSet() []int {
	var zs []int
	for _, d := range s.Elements {
		zs = append(zs, d.Z)
	}
	slices.Sort(zs)
	return slices.Compact(zs)
}

// PaintOrder returns element indices sorted back to front. Equal depths keep
// composition order.
func (s *Scene) PaintOrder() []int {
	idx := make([]int, len(s.Elements))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return s.Elements[a].Z - s.Elements[b].Z
	})
	return idx
}
