package garden

import "github.com/phanxgames/bloom/layout"

// Density is the width-bucketed table of ambient counts and group factors for
// one viewport. Each row of the table holds the narrow, medium and wide value.
type Density struct {
	Bucket int `yaml:"bucket"`

	Grass         int `yaml:"grass"`
	LongGrass     int `yaml:"longGrass"`
	Fireflies     int `yaml:"fireflies"`
	Hearts        int `yaml:"hearts"`
	RoseGrass     int `yaml:"roseGrass"`
	RoseFireflies int `yaml:"roseFireflies"`
	Stars         int `yaml:"stars"`
	Butterflies   int `yaml:"butterflies"`
	Glows         int `yaml:"glows"`

	GlowFlowerSize float64 `yaml:"glowFlowerSize"`
	FrontLeafSize  float64 `yaml:"frontLeafSize"`
	RoseGardenSize float64 `yaml:"roseGardenSize"`
}

var densityTable = [3]Density{
	{Bucket: 0, Grass: 25, LongGrass: 4, Fireflies: 5, Hearts: 10, RoseGrass: 15, RoseFireflies: 5, Stars: 10, Butterflies: 2, Glows: 3,
		GlowFlowerSize: 0.9, FrontLeafSize: 0.7, RoseGardenSize: 1.0},
	{Bucket: 1, Grass: 40, LongGrass: 8, Fireflies: 10, Hearts: 15, RoseGrass: 25, RoseFireflies: 8, Stars: 18, Butterflies: 4, Glows: 3,
		GlowFlowerSize: 1.1, FrontLeafSize: 1.0, RoseGardenSize: 1.2},
	{Bucket: 2, Grass: 60, LongGrass: 8, Fireflies: 10, Hearts: 15, RoseGrass: 25, RoseFireflies: 8, Stars: 18, Butterflies: 4, Glows: 3,
		GlowFlowerSize: 1.1, FrontLeafSize: 1.0, RoseGardenSize: 1.2},
}

// DensityFor returns the density row for the viewport width.
func DensityFor(v layout.Viewport) Density {
	return densityTable[layout.Bucket(v.Width)]
}

func counts(pick func(Density) int) [3]int {
	return [3]int{pick(densityTable[0]), pick(densityTable[1]), pick(densityTable[2])}
}

// ambient returns the ambient specs of a scene, in composition order.
func ambient(scene string) []layout.AmbientSpec {
	switch scene {
	case Main:
		grass := layout.DefaultAmbient(layout.KindGrassBlade)
		grass.Counts = counts(func(d Density) int { return d.Grass })
		long := layout.DefaultAmbient(layout.KindLongGrass)
		long.Counts = counts(func(d Density) int { return d.LongGrass })
		flies := layout.DefaultAmbient(layout.KindFirefly)
		flies.Counts = counts(func(d Density) int { return d.Fireflies })
		hearts := layout.DefaultAmbient(layout.KindFloatingHeart)
		hearts.Counts = counts(func(d Density) int { return d.Hearts })
		glows := layout.DefaultAmbient(layout.KindGlow)
		glows.Counts = counts(func(d Density) int { return d.Glows })
		return []layout.AmbientSpec{glows, hearts, grass, long, flies}

	case Rose:
		grass := layout.DefaultAmbient(layout.KindGrassBlade)
		grass.Counts = counts(func(d Density) int { return d.RoseGrass })
		grass.Height = layout.Range{Min: 25, Max: 85}
		grass.Rotation = layout.Range{Min: -12.5, Max: 12.5}
		grass.Hue = layout.Range{Min: 120, Max: 120}
		grass.Lightness = layout.Range{Min: 25, Max: 25}
		grass.Opacity = layout.Range{Min: 0.4, Max: 0.8}

		flies := layout.DefaultAmbient(layout.KindFirefly)
		flies.Counts = counts(func(d Density) int { return d.RoseFireflies })
		flies.Y = layout.Range{Min: 20, Max: 80}
		flies.Hue = layout.Range{Min: 330, Max: 350}
		flies.Palette = 4

		stars := layout.DefaultAmbient(layout.KindStar)
		stars.Counts = counts(func(d Density) int { return d.Stars })
		butterflies := layout.DefaultAmbient(layout.KindButterfly)
		butterflies.Counts = counts(func(d Density) int { return d.Butterflies })
		glows := layout.DefaultAmbient(layout.KindGlow)
		glows.Counts = counts(func(d Density) int { return d.Glows })
		glows.Hue = layout.Range{Min: 330, Max: 345}
		return []layout.AmbientSpec{glows, stars, grass, flies, butterflies}
	}
	return nil
}
