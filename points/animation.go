package points

// Progress is one per-entity animation update reported by Advance.
type Progress struct {
	ID    EntityID
	Value float64
	// Done is set on the single update that reaches full progress; the
	// track is dropped afterwards so completion is never re-reported.
	Done bool
}

type track struct {
	progress float64
	duration float64
}

// AnimationDriver advances per-entity progress fractions linearly from
// 0 to 1. It owns no entities and deletes nothing; it only reports, in
// registration order, so a given dt always produces the same updates.
type AnimationDriver struct {
	order  []EntityID
	tracks map[EntityID]*track
}

// NewAnimationDriver creates an empty driver.
func NewAnimationDriver() *AnimationDriver {
	return &AnimationDriver{
		tracks: make(map[EntityID]*track),
	}
}

// Register starts (or restarts) a track at zero progress. The entity
// reaches full progress after duration seconds of Advance calls; a
// non-positive duration completes on the next Advance.
func (d *AnimationDriver) Register(id EntityID, duration float64) {
	if _, exists := d.tracks[id]; !exists {
		d.order = append(d.order, id)
	}
	d.tracks[id] = &track{duration: duration}
}

// Unregister drops a track without reporting completion.
func (d *AnimationDriver) Unregister(id EntityID) {
	if _, exists := d.tracks[id]; !exists {
		return
	}
	delete(d.tracks, id)
	d.compact()
}

// Advance moves every active track forward by dt seconds and returns the
// resulting updates in registration order. Progress never decreases and
// is clamped to 1; tracks that finish are removed from the active set.
func (d *AnimationDriver) Advance(dt float64) []Progress {
	if len(d.order) == 0 {
		return nil
	}
	updates := make([]Progress, 0, len(d.order))
	finished := false
	for _, id := range d.order {
		t, ok := d.tracks[id]
		if !ok {
			continue
		}
		if t.duration <= 0 {
			t.progress = 1
		} else if dt > 0 {
			t.progress += dt / t.duration
			if t.progress > 1 {
				t.progress = 1
			}
		}
		done := t.progress >= 1
		updates = append(updates, Progress{ID: id, Value: t.progress, Done: done})
		if done {
			delete(d.tracks, id)
			finished = true
		}
	}
	if finished {
		d.compact()
	}
	return updates
}

// IsComplete reports whether the entity has no active track. Entities
// whose animation already finished (and ones never registered) are
// complete.
func (d *AnimationDriver) IsComplete(id EntityID) bool {
	_, active := d.tracks[id]
	return !active
}

// Active returns the number of running tracks.
func (d *AnimationDriver) Active() int {
	return len(d.tracks)
}

func (d *AnimationDriver) compact() {
	kept := d.order[:0]
	for _, id := range d.order {
		if _, ok := d.tracks[id]; ok {
			kept = append(kept, id)
		}
	}
	d.order = kept
}
