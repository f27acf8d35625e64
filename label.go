package bloom

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultLineSpacing is the line height as a multiple of the font size.
const DefaultLineSpacing = 1.25

var defaultFaceSource *text.GoTextFaceSource

// LoadFaceSource parses TrueType or OpenType data for use by labels.
func LoadFaceSource(ttfData []byte) (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return src, nil
}

// defaultSource returns the bundled Go Regular face, parsed on first use.
func defaultSource() *text.GoTextFaceSource {
	if defaultFaceSource == nil {
		src, err := LoadFaceSource(goregular.TTF)
		if err != nil {
			panic("bloom: bundled font: " + err.Error())
		}
		defaultFaceSource = src
	}
	return defaultFaceSource
}

// Label is the content of a text node. Lines are centered on the node origin.
type Label struct {
	Content string
	Color   Color
	// Glow, when its alpha is non-zero, is drawn additively behind the text.
	Glow Color

	face *text.GoTextFace
}

func newLabel(content string, size float64) *Label {
	return &Label{
		Content: content,
		Color:   ColorWhite,
		face:    &text.GoTextFace{Source: defaultSource(), Size: size},
	}
}

// SetSource switches the label to another font face source.
func (l *Label) SetSource(src *text.GoTextFaceSource) {
	if src != nil {
		l.face = &text.GoTextFace{Source: src, Size: l.face.Size}
	}
}

// Size returns the font size in pixels.
func (l *Label) Size() float64 {
	return l.face.Size
}

// SetSize changes the font size in pixels.
func (l *Label) SetSize(size float64) {
	l.face = &text.GoTextFace{Source: l.face.Source, Size: size}
}

func (l *Label) lineHeight() float64 {
	return l.face.Size * DefaultLineSpacing
}

// Measure returns the width and height of the rendered text.
func (l *Label) Measure() (width, height float64) {
	return text.Measure(l.Content, l.face, l.lineHeight())
}

// draw renders the label centered on the given world transform.
func (l *Label) draw(target *ebiten.Image, transform [6]float64, alpha float64) {
	if l.Content == "" || alpha <= 0 {
		return
	}
	var geo ebiten.GeoM
	geo.SetElement(0, 0, transform[0])
	geo.SetElement(1, 0, transform[1])
	geo.SetElement(0, 1, transform[2])
	geo.SetElement(1, 1, transform[3])
	geo.SetElement(0, 2, transform[4])
	geo.SetElement(1, 2, transform[5])

	op := &text.DrawOptions{}
	op.LayoutOptions = text.LayoutOptions{
		LineSpacing:    l.lineHeight(),
		PrimaryAlign:   text.AlignCenter,
		SecondaryAlign: text.AlignCenter,
	}

	if l.Glow.A > 0 {
		for _, d := range [...]Vec2{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
			op.GeoM.Reset()
			op.GeoM.Translate(d.X, d.Y)
			op.GeoM.Concat(geo)
			op.ColorScale.Reset()
			a := float32(l.Glow.A * alpha)
			op.ColorScale.Scale(float32(l.Glow.R)*a, float32(l.Glow.G)*a, float32(l.Glow.B)*a, a)
			op.Blend = ebiten.BlendLighter
			text.Draw(target, l.Content, l.face, op)
		}
	}

	op.GeoM = geo
	op.ColorScale.Reset()
	a := float32(l.Color.A * alpha)
	op.ColorScale.Scale(float32(l.Color.R)*a, float32(l.Color.G)*a, float32(l.Color.B)*a, a)
	op.Blend = ebiten.BlendSourceOver
	text.Draw(target, l.Content, l.face, op)
}
