// Package bloom is an animated greeting garden for [Ebitengine].
//
// A garden opens on a main scene of sunflowers, tulips, roses and glowing
// flowers that rise out of the ground, followed by a short greeting and a
// pair of confirm buttons. Confirming fades the main scene out and grows a
// rose garden in its place.
//
// # Quick start
//
// [Run] opens a window and plays the garden until it is closed:
//
//	err := bloom.Run(bloom.RunConfig{
//		Title: "bloom", Width: 1024, Height: 768, Resizable: true,
//	})
//
// Headless callers build a [Garden] with [NewGarden] and advance it with
// [Garden.Step]. Input is injected through [Scene.InjectClick] and
// [Scene.InjectConfirm], and a [TestRunner] replays a YAML script of clicks,
// resizes and screenshots.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root] and inherit their parent's transform and alpha. Rotation is
// in degrees, clockwise. Flowers, grass and ambient motes are polygons
// built with [NewPolygon] from the point generators in shapes.go; messages
// are [NewText] labels; bursts are [NewParticleEmitter] nodes.
//
// # Animation
//
// The [Engine] mounts composed scenes from the garden package and runs the
// declarative timelines of the timeline package on top of [gween] tweens.
// The stage package decides what runs when: entrance, idle loops, the
// confirm transition and debounced rebuilds on resize.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package bloom
