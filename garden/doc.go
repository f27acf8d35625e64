// Package garden composes named scenes from hand-authored catalogs and the
// layout generators.
//
// Two scenes exist: [Main], the sunflower garden shown on load, and [Rose],
// the rose garden shown after the visitor confirms. [Compose] rebuilds either
// one from a viewport and a random source; the result lists every element in
// catalog order, which is also the paint order for equal depths.
package garden
