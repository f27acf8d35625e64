// Package timeline describes scene animation as data.
//
// A [Timeline] is a list of [Entry] values, each applying one property
// transition to every node of a group with a per-member stagger, plus
// [Cue] events fired at fixed offsets. Idle motion is a set of [Loop] values
// that repeat forever, reversing on completion, with per-member duration and
// delay drawn by [Loop.Resolve].
//
// Nothing here runs an animation. An engine reads the data, resolves
// [Selector] groups against mounted nodes and drives the clock. Timelines
// round-trip through YAML, so a scene's motion can be dumped, edited and
// loaded back.
package timeline
