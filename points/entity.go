// Package points implements the bounded lifecycle of the demo's sample
// points: a capped queue of spawn requests, a population counter, the
// spawn/live/despawn state machine, and the animation clock that drives
// points in and out of existence.
package points

import "ebiten-points/sample"

// EntityID uniquely identifies a point for the lifetime of a run. IDs
// are handed out monotonically, so ascending ID order is creation order.
type EntityID uint64

// State is the lifecycle phase of a point.
type State int

const (
	// StateSpawning covers a point whose appearance animation is still
	// running.
	StateSpawning State = iota
	// StateLive covers a fully materialized point.
	StateLive
	// StateDespawning covers a point whose removal animation is running.
	StateDespawning
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateLive:
		return "live"
	case StateDespawning:
		return "despawning"
	}
	return "unknown"
}

// SpawnPayload describes where a point should appear. The controller
// treats it as opaque and hands it through to the visual service.
type SpawnPayload struct {
	Position sample.Vec3
	Shape    sample.Shape
	// Boundary marks points sampled from a shape's surface rather than
	// its volume; the renderer colors the two groups differently.
	Boundary bool
}

// PointEntity is one tracked point. Records are owned exclusively by the
// Controller; everything else refers to points by ID only.
type PointEntity struct {
	ID       EntityID
	State    State
	Progress float64
	Payload  SpawnPayload

	handle VisualHandle
}
