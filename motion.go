package bloom

import "math"

// Ambient motions run as node OnUpdate callbacks. They drive elements that
// no timeline targets, so they never fight a tween for a field.

// floatUp lifts n by travel pixels every period seconds, spinning once and
// fading in and out at the ends of each trip. Nothing shows until delay has
// passed.
func floatUp(n *Node, delay, period, travel float64) func(dt float64) {
	if period <= 0 {
		period = 10
	}
	t := -delay
	return func(dt float64) {
		t += dt
		if t < 0 {
			return
		}
		p := math.Mod(t, period) / period
		n.Y = -travel * p
		n.Rotation = 360 * p
		n.Alpha = edgeFade(p, 0.1)
		n.MarkDirty()
	}
}

// edgeFade ramps from 0 to 1 over the first edge of [0,1] and back to 0
// over the last.
func edgeFade(p, edge float64) float64 {
	return math.Min(1, math.Min(p/edge, (1-p)/edge))
}

// twinkle pulses n's alpha between 0.3 and 1 with the given period.
func twinkle(n *Node, delay, period float64) func(dt float64) {
	if period <= 0 {
		period = 3
	}
	t := -delay
	return func(dt float64) {
		t += dt
		if t < 0 {
			return
		}
		n.Alpha = 0.3 + 0.7*(0.5-0.5*math.Cos(2*math.Pi*t/period))
		n.MarkDirty()
	}
}

// flutter beats the wings and drifts the butterfly on a slow loop around its
// anchor. phase offsets the loop so butterflies do not move in step.
func flutter(n *Node, wings [2]*Node, phase float64) func(dt float64) {
	t := 0.0
	return func(dt float64) {
		t += dt
		beat := 0.3 + 0.7*math.Abs(math.Cos(4*math.Pi*t+phase))
		for _, w := range wings {
			w.ScaleX = beat
			w.MarkDirty()
		}
		n.X = 40 * math.Sin(0.5*t+phase)
		n.Y = 25 * math.Sin(0.8*t+2*phase)
		n.Rotation = 10 * math.Sin(0.5*t+phase+math.Pi/2)
		n.MarkDirty()
	}
}
