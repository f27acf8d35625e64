package bloom

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSWidget creates a text node that displays the current FPS and TPS.
// The text refreshes every half second. Position it with SetPosition; its
// origin is the center of the text.
func NewFPSWidget() *Node {
	node := NewText("fps_widget", "FPS: --\nTPS: --", 12)
	node.ZIndex = 1 << 20 // draw on top
	node.Label.Color = Color{R: 1, G: 1, B: 1, A: 0.8}

	var elapsed float64
	node.OnUpdate = func(dt float64) {
		elapsed += dt
		if elapsed < 0.5 {
			return
		}
		elapsed = 0
		node.Label.Content = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	return node
}
