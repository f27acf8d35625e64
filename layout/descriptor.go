package layout

import "fmt"

// Kind identifies what a Descriptor draws.
type Kind uint8

const (
	KindSunflower Kind = iota
	KindTulip
	KindRose
	KindGlowFlower
	KindGrassBlade
	KindLongGrass
	KindFirefly
	KindFloatingHeart
	KindFrontLeaf
	KindStar
	KindButterfly
	KindGlow
)

var kindNames = [...]string{
	KindSunflower:     "sunflower",
	KindTulip:         "tulip",
	KindRose:          "rose",
	KindGlowFlower:    "glow-flower",
	KindGrassBlade:    "grass-blade",
	KindLongGrass:     "long-grass",
	KindFirefly:       "firefly",
	KindFloatingHeart: "floating-heart",
	KindFrontLeaf:     "front-leaf",
	KindStar:          "star",
	KindButterfly:     "butterfly",
	KindGlow:          "glow",
}

// Kinds lists every kind in declaration order.
var Kinds = []Kind{
	KindSunflower, KindTulip, KindRose, KindGlowFlower,
	KindGrassBlade, KindLongGrass, KindFirefly, KindFloatingHeart,
	KindFrontLeaf, KindStar, KindButterfly, KindGlow,
}

// String returns the kind's group name, e.g. "glow-flower".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("layout: unknown kind %q", b)
}

// IsFlower reports whether the kind carries a Flower payload.
func (k Kind) IsFlower() bool {
	switch k {
	case KindSunflower, KindTulip, KindRose, KindGlowFlower:
		return true
	}
	return false
}

// Depth constants. Front leaves sit above every flower, and every flower sits
// above the grass. Flowers take their depth from the catalog (1..15).
const (
	ZGlow      = -3
	ZStar      = -2
	ZHeart     = -1
	ZGrass     = 0
	ZFrontLeaf = 20
	ZButterfly = 22
	ZFirefly   = 25
	ZMessage   = 30
	ZButton    = 31
)

// Side is the side of a stem a leaf or thorn grows on.
type Side int8

const (
	SideLeft  Side = -1
	SideRight Side = 1
)

// Descriptor fully specifies the geometry of one visual element. Exactly one
// of Flower, Blade or Mote is set, depending on Kind.
type Descriptor struct {
	Kind     Kind    `yaml:"kind"`
	Index    int     `yaml:"index"`
	X        float64 `yaml:"x"`           // percent of container width
	Y        float64 `yaml:"y,omitempty"` // percent of container height from the top; 0 for ground-rooted
	Z        int     `yaml:"z"`
	Rotation float64 `yaml:"rotation"` // degrees, clockwise

	Flower *Flower `yaml:"flower,omitempty"`
	Blade  *Blade  `yaml:"blade,omitempty"`
	Mote   *Mote   `yaml:"mote,omitempty"`
}

// Flower is the payload for sunflowers, tulips, roses and glow flowers. All
// lengths are in pixels.
type Flower struct {
	StemHeight float64 `yaml:"stemHeight"`
	StemWidth  float64 `yaml:"stemWidth"`
	HeadSize   float64 `yaml:"headSize"`
	HeadHeight float64 `yaml:"headHeight"`
	CenterSize float64 `yaml:"centerSize"`
	Color      string  `yaml:"color,omitempty"`
	Petals     []Petal `yaml:"petals"`
	Leaves     []Leaf  `yaml:"leaves,omitempty"`
	Thorns     []Thorn `yaml:"thorns,omitempty"`
}

// Petal is one petal placed around the flower head center. Angle is measured
// clockwise from straight up; Offset pushes the petal base away from the
// center along that angle.
type Petal struct {
	Ring    int     `yaml:"ring"` // 0 = outer ring or first layer
	Angle   float64 `yaml:"angle"`
	Width   float64 `yaml:"width"`
	Length  float64 `yaml:"length"`
	Offset  float64 `yaml:"offset"`
	XOffset float64 `yaml:"xOffset,omitempty"` // percent of head width, tulips only
	Bottom  float64 `yaml:"bottom,omitempty"`  // lift in pixels, tulips only
	Z       int     `yaml:"z"`
}

// Leaf is attached to the stem at Bottom pixels above the ground.
type Leaf struct {
	Side     Side    `yaml:"side"`
	Bottom   float64 `yaml:"bottom"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Rotation float64 `yaml:"rotation"`
}

// Thorn is a rose stem thorn.
type Thorn struct {
	Side     Side    `yaml:"side"`
	Bottom   float64 `yaml:"bottom"`
	Rotation float64 `yaml:"rotation"`
}

// Blade is the payload for grass blades, long grass and front leaves.
type Blade struct {
	Height    float64 `yaml:"height"`
	Width     float64 `yaml:"width"`
	Hue       float64 `yaml:"hue"`
	Lightness float64 `yaml:"lightness"`
	Opacity   float64 `yaml:"opacity"`
	Flip      bool    `yaml:"flip,omitempty"`
	Side      Side    `yaml:"side,omitempty"`
}

// Mote is the payload for small floating or glowing things.
type Mote struct {
	Size     float64 `yaml:"size"`
	Hue      float64 `yaml:"hue"`
	Palette  int     `yaml:"palette"`
	Delay    float64 `yaml:"delay,omitempty"`
	Duration float64 `yaml:"duration,omitempty"`
	Opacity  float64 `yaml:"opacity"`
}

// Group returns the group name shared by every element of the descriptor's kind.
func (d Descriptor) Group() string {
	return d.Kind.String()
}

func nonNeg(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
