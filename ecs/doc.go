// Package ecs provides ECS adapters for grove.
//
// [NewDonburiSink] bridges input events that no node consumed into a
// [Donburi] world as typed events; subscribe to [InputEventType] in your
// ECS systems to receive them. [Track] links a node to an entity so
// systems can reach scene nodes through queries.
//
// Usage:
//
//	engine.SetEventSink(ecs.NewDonburiSink(world))
//	ecs.Track(world, hero.Node)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
