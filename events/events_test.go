package events_test

import (
	"testing"

	"ebiten-points/events"
)

func TestEmitReachesSubscribers(t *testing.T) {
	d := events.NewDispatcher()

	var got []int
	d.Subscribe(events.EventSpawnRequested, func(e events.Event) {
		got = append(got, e.(events.SpawnRequested).Count)
	})

	d.Emit(events.SpawnRequested{Count: 1})
	d.Emit(events.SpawnRequested{Count: 100})

	if len(got) != 2 || got[0] != 1 || got[1] != 100 {
		t.Errorf("handler saw %v, want [1 100]", got)
	}
}

func TestEmitOnlyMatchingType(t *testing.T) {
	d := events.NewDispatcher()

	spawns, despawns := 0, 0
	d.Subscribe(events.EventSpawnRequested, func(events.Event) { spawns++ })
	d.Subscribe(events.EventDespawnRequested, func(events.Event) { despawns++ })

	d.Emit(events.DespawnRequested{Count: 3})

	if spawns != 0 || despawns != 1 {
		t.Errorf("spawn handler=%d despawn handler=%d, want 0 and 1", spawns, despawns)
	}
}

func TestMultipleHandlersRunInOrder(t *testing.T) {
	d := events.NewDispatcher()

	var order []string
	d.Subscribe(events.EventResetRequested, func(events.Event) { order = append(order, "first") })
	d.Subscribe(events.EventResetRequested, func(events.Event) { order = append(order, "second") })

	d.Emit(events.ResetRequested{})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("handlers ran as %v", order)
	}
}

func TestEmitWithoutSubscribersIsSafe(t *testing.T) {
	d := events.NewDispatcher()
	d.Emit(events.HelpToggled{}) // must not panic
}
