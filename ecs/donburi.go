// Package ecs provides ECS adapters for draggable.
package ecs

import (
	"github.com/phanxgames/draggable"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DragEventType is the Donburi event type for draggable drag events.
// Subscribe to this in your ECS systems to receive start, move and stop
// events.
var DragEventType = events.NewEventType[draggable.DragEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Drag events are published to DragEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) draggable.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event draggable.DragEvent) {
	DragEventType.Publish(s.world, event)
}
