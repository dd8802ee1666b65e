package points

// VisualHandle is an opaque reference to a point's on-screen
// representation, owned by the visual service.
type VisualHandle any

// VisualService is the rendering boundary. The controller calls Create
// when a point starts spawning, SetProgress whenever its visible
// fraction changes, and Destroy when its removal animation finishes.
//
// The fraction passed to SetProgress is the visible share of the point:
// it climbs 0→1 while spawning and falls 1→0 while despawning, so the
// service can scale the representation directly without tracking phase.
type VisualService interface {
	Create(id EntityID, payload SpawnPayload) VisualHandle
	SetProgress(handle VisualHandle, fraction float64)
	Destroy(handle VisualHandle)
}
