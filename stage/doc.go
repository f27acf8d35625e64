// Package stage sequences scenes.
//
// A [Controller] composes scenes with package garden, hands them to a
// [Renderer] and drives their timelines through an [AnimationEngine]. It
// owns one cancellation [Handle] per scheduled timeline and idle loop, so a
// transition or a resize can stop everything the outgoing scene runs before
// its nodes go away.
//
// Resize signals are collapsed by a frame-driven [Debouncer]; the visible
// scene is rebuilt from scratch once the viewport has been still for the
// debounce interval.
package stage
