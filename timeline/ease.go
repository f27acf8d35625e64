package timeline

import "github.com/tanema/gween/ease"

// Ease names an easing curve. The empty name is power1.out, the usual
// default for one-shot transitions.
type Ease string

const (
	Linear     Ease = "linear"
	Power1Out  Ease = "power1.out"
	Power2Out  Ease = "power2.out"
	Power2In   Ease = "power2.in"
	SineInOut  Ease = "sine.inOut"
	ElasticOut Ease = "elastic.out"
	BackOut    Ease = "back.out"
)

var easeFuncs = map[Ease]ease.TweenFunc{
	"":         ease.OutQuad,
	Linear:     ease.Linear,
	Power1Out:  ease.OutQuad,
	Power2Out:  ease.OutCubic,
	Power2In:   ease.InCubic,
	SineInOut:  ease.InOutSine,
	ElasticOut: ease.OutElastic,
	BackOut:    ease.OutBack,
}

// Known reports whether e has a curve.
func (e Ease) Known() bool {
	_, ok := easeFuncs[e]
	return ok
}

// Func returns the tween curve for e. Unknown names fall back to linear.
func (e Ease) Func() ease.TweenFunc {
	if fn, ok := easeFuncs[e]; ok {
		return fn
	}
	return ease.Linear
}
