package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/bloom"
)

// InteractionEventType is the Donburi event type for bloom interaction events.
var InteractionEventType = events.NewEventType[bloom.InteractionEvent]()

// Tally counts the interactions seen by a world.
type Tally struct {
	// Clicks counts clicks per node name.
	Clicks   map[string]int
	Confirms int
	// Last is the most recent event.
	Last bloom.InteractionEvent
}

// TallyComponent holds the Tally created by Track.
var TallyComponent = donburi.NewComponentType[Tally]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world. Events
// are queued on InteractionEventType and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) bloom.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event bloom.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// Track creates an entity carrying a Tally and subscribes it to
// InteractionEventType. The tally only moves when the world's events are
// processed.
func Track(world donburi.World) *donburi.Entry {
	entry := world.Entry(world.Create(TallyComponent))
	TallyComponent.Set(entry, &Tally{Clicks: make(map[string]int)})

	InteractionEventType.Subscribe(world, func(w donburi.World, e bloom.InteractionEvent) {
		if !entry.Valid() {
			return
		}
		t := TallyComponent.Get(entry)
		switch e.Type {
		case bloom.EventClick:
			t.Clicks[e.Name]++
		case bloom.EventConfirm:
			t.Confirms++
		}
		t.Last = e
	})
	return entry
}
