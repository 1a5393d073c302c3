package ecs

import (
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InputEventType is the Donburi event type for grove input events that no
// node consumed. Subscribe to it in ECS systems and drain it with
// ProcessEvents.
var InputEventType = events.NewEventType[grove.InputEvent]()

// NodeRef is the component linking an entity to a grove node.
var NodeRef = donburi.NewComponentType[NodeData]()

// NodeData is the payload of NodeRef.
type NodeData struct {
	Node *grove.Node
}

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
func NewDonburiSink(world donburi.World) grove.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitInput(ev grove.InputEvent) {
	InputEventType.Publish(s.world, ev)
}

// Track creates an entity holding a NodeRef to n. The entity is removed
// from the world when n is disposed; any OnDispose hook already set on n
// still runs first.
func Track(world donburi.World, n *grove.Node) donburi.Entity {
	entity := world.Create(NodeRef)
	NodeRef.Set(world.Entry(entity), &NodeData{Node: n})

	prev := n.OnDispose
	n.OnDispose = func() {
		if prev != nil {
			prev()
		}
		if world.Valid(entity) {
			world.Remove(entity)
		}
	}
	return entity
}

// NodeOf returns the node tracked by entity, or nil.
func NodeOf(world donburi.World, entity donburi.Entity) *grove.Node {
	if !world.Valid(entity) {
		return nil
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(NodeRef) {
		return nil
	}
	return NodeRef.Get(entry).Node
}
