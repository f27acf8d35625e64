// Package layout computes the geometry of every element in a garden.
//
// Everything here is a pure function of a [Viewport], authored parameters and
// an optional [Rand]. Nothing draws: the result is a [Descriptor], a plain
// record that the rendering shell turns into nodes.
//
// # Scale
//
// [DeriveScale] maps the viewport to a single multiplier using fixed width
// breakpoints (360, 500, 768) and a height breakpoint (700).
//
// # Flowers
//
// [LayoutFlower] builds one flower with its petals, leaves and thorns:
//
//	d := layout.LayoutFlower(layout.KindSunflower, layout.FlowerParams{
//		X: 50, StemHeight: 280, HeadSize: 110, PetalCount: 22, InnerCount: 14, Z: 5,
//	}, 0, layout.DeriveScale(vp), rng)
//
// # Ambient elements
//
// [LayoutAmbient] yields grass, fireflies, hearts, stars, butterflies and glows
// lazily. The count comes from a width bucket and every placement field is a
// uniform draw:
//
//	for d := range layout.LayoutAmbient(layout.DefaultAmbient(layout.KindGrassBlade), vp, rng) {
//		// ...
//	}
package layout
