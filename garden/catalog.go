package garden

import "github.com/phanxgames/bloom/layout"

// Scene names.
const (
	Main = "main"
	Rose = "rose"
)

// Names lists the scenes in the order they are shown.
var Names = []string{Main, Rose}

// MainSunflowers are the three primary sunflowers, tallest in the middle.
var MainSunflowers = []layout.FlowerParams{
	{X: 50, StemHeight: 280, HeadSize: 110, PetalCount: 22, InnerCount: 14, Rotation: 0, Z: 5},
	{X: 22, StemHeight: 240, HeadSize: 95, PetalCount: 20, InnerCount: 12, Rotation: -6, Z: 4},
	{X: 78, StemHeight: 240, HeadSize: 95, PetalCount: 20, InnerCount: 12, Rotation: 6, Z: 4},
}

// MainTulips flank the sunflowers near the edges.
var MainTulips = []layout.FlowerParams{
	{X: 8, StemHeight: 120, HeadSize: 35, Color: "red", Rotation: -8, Z: 2},
	{X: 92, StemHeight: 130, HeadSize: 38, Color: "pink", Rotation: 8, Z: 2},
	{X: 15, StemHeight: 100, HeadSize: 30, Color: "purple", Rotation: -5, Z: 1},
	{X: 85, StemHeight: 95, HeadSize: 28, Color: "red", Rotation: 6, Z: 1},
}

// MainRoses are the two short roses between sunflowers.
var MainRoses = []layout.FlowerParams{
	{X: 25, StemHeight: 90, HeadSize: 40, Color: "red", Rotation: -3, Z: 2},
	{X: 75, StemHeight: 85, HeadSize: 38, Color: "white", Rotation: 4, Z: 2},
}

// MainGlowFlowers stand in front of the sunflowers. They are scaled by the
// density table's glow factor rather than the viewport scale.
var MainGlowFlowers = []layout.FlowerParams{
	{X: 50, StemHeight: 200, HeadSize: 70, Rotation: 0, Z: 15, PetalCount: 5},
	{X: 35, StemHeight: 160, HeadSize: 55, Rotation: -15, Z: 14, PetalCount: 5},
	{X: 65, StemHeight: 150, HeadSize: 50, Rotation: 12, Z: 14, PetalCount: 5},
}

// Front plant geometry: five curved leaves fan out on each side.
const (
	FrontLeavesPerSide = 5
	frontPlantInset    = 8.0
)

// RoseBase is one authored rose of the rose garden before jitter.
type RoseBase struct {
	X    float64 `yaml:"x"`
	Stem float64 `yaml:"stem"`
	Head float64 `yaml:"head"`
	Z    int     `yaml:"z"`
}

// RoseGarden is the rose-garden catalog: tall center roses first, then the
// medium ring, the sides and the gap fillers.
var RoseGarden = []RoseBase{
	{X: 50, Stem: 340, Head: 95, Z: 10},
	{X: 30, Stem: 310, Head: 85, Z: 9},
	{X: 70, Stem: 300, Head: 82, Z: 9},

	{X: 18, Stem: 260, Head: 72, Z: 8},
	{X: 82, Stem: 255, Head: 70, Z: 8},
	{X: 40, Stem: 280, Head: 75, Z: 7},
	{X: 60, Stem: 275, Head: 74, Z: 7},

	{X: 8, Stem: 200, Head: 60, Z: 6},
	{X: 92, Stem: 195, Head: 58, Z: 6},
	{X: 25, Stem: 230, Head: 65, Z: 5},
	{X: 75, Stem: 225, Head: 64, Z: 5},

	{X: 45, Stem: 250, Head: 68, Z: 6},
	{X: 55, Stem: 245, Head: 66, Z: 6},
	{X: 12, Stem: 180, Head: 55, Z: 4},
	{X: 88, Stem: 175, Head: 54, Z: 4},
}

// RoseColors cycles over the rose garden in catalog order.
var RoseColors = []string{"red", "pink", "white", "red", "pink"}

// Jitter bands applied to each rose-garden rose.
const (
	RoseJitterX        = 4.0
	RoseJitterStem     = 20.0
	RoseJitterHead     = 8.0
	RoseJitterRotation = 8.0
)

// DefaultMessages returns the greeting lines shown by each scene.
func DefaultMessages() map[string][]string {
	return map[string][]string{
		Main: {
			"Every day with you",
			"feels like sunshine",
			"Will you be my Valentine?",
		},
		Rose: {
			"You said yes!",
			"A garden of roses for you",
			"Forever yours",
		},
	}
}
