// Package ecs provides ECS adapters for draggable's drag events.
//
// The primary adapter is [NewDonburiStore], which bridges drag start, move
// and stop events into a [Donburi] world as typed events. Subscribe to
// [DragEventType] in your ECS systems to receive them.
//
// Usage:
//
//	engine, err := draggable.New(draggable.Options{
//		// ...
//		Store: ecs.NewDonburiStore(world),
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
