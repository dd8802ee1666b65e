// Package events carries the discrete commands the input layer emits
// toward the simulation. Handlers only stage intent; the game's tick is
// where state actually changes.
package events

// EventType identifies different kinds of commands.
type EventType string

const (
	EventSpawnRequested      EventType = "spawn_requested"
	EventDespawnRequested    EventType = "despawn_requested"
	EventSamplingModeToggled EventType = "sampling_mode_toggled"
	EventSpawnModeToggled    EventType = "spawn_mode_toggled"
	EventResetRequested      EventType = "reset_requested"
	EventHelpToggled         EventType = "help_toggled"
	EventSpawnRejected       EventType = "spawn_rejected"
)

// Event is implemented by every command.
type Event interface {
	Type() EventType
}

// SpawnRequested asks for Count new points.
type SpawnRequested struct {
	Count int
}

func (SpawnRequested) Type() EventType { return EventSpawnRequested }

// DespawnRequested asks for Count points to be removed.
type DespawnRequested struct {
	Count int
}

func (DespawnRequested) Type() EventType { return EventDespawnRequested }

// SamplingModeToggled flips between interior and boundary sampling.
type SamplingModeToggled struct{}

func (SamplingModeToggled) Type() EventType { return EventSamplingModeToggled }

// SpawnModeToggled flips between manual and automatic spawning.
type SpawnModeToggled struct{}

func (SpawnModeToggled) Type() EventType { return EventSpawnModeToggled }

// ResetRequested erases every point and pending request.
type ResetRequested struct{}

func (ResetRequested) Type() EventType { return EventResetRequested }

// HelpToggled shows or hides the on-screen help text.
type HelpToggled struct{}

func (HelpToggled) Type() EventType { return EventHelpToggled }

// SpawnRejected reports spawn requests the queue refused, so the UI can
// show a busy signal instead of losing them silently.
type SpawnRejected struct {
	Count int
}

func (SpawnRejected) Type() EventType { return EventSpawnRejected }

// Handler processes one event.
type Handler func(Event)

// Dispatcher routes events to subscribed handlers, synchronously and in
// subscription order.
type Dispatcher struct {
	subscribers map[EventType][]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		subscribers: make(map[EventType][]Handler),
	}
}

// Subscribe registers a handler for one event type.
func (d *Dispatcher) Subscribe(eventType EventType, handler Handler) {
	d.subscribers[eventType] = append(d.subscribers[eventType], handler)
}

// Emit delivers the event to every handler subscribed to its type.
func (d *Dispatcher) Emit(event Event) {
	for _, handler := range d.subscribers[event.Type()] {
		handler(event)
	}
}
