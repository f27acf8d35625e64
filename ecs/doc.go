// Package ecs republishes bloom interaction events into a [Donburi] world.
//
// [NewDonburiStore] turns each event into a typed Donburi event, and [Track]
// keeps a running tally of clicks and confirms on an entity of the world:
//
//	world := donburi.NewWorld()
//	scene.SetEntityStore(ecs.NewDonburiStore(world))
//	tally := ecs.Track(world)
//	// each tick:
//	ecs.InteractionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
