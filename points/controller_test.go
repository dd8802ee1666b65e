package points_test

import (
	"errors"
	"testing"

	"ebiten-points/points"
)

// recordingVisual is a VisualService that remembers every call, in order.
type recordingVisual struct {
	created   []points.EntityID
	progress  map[points.EntityID][]float64
	destroyed []points.EntityID
}

func newRecordingVisual() *recordingVisual {
	return &recordingVisual{progress: make(map[points.EntityID][]float64)}
}

func (v *recordingVisual) Create(id points.EntityID, _ points.SpawnPayload) points.VisualHandle {
	v.created = append(v.created, id)
	return id
}

func (v *recordingVisual) SetProgress(handle points.VisualHandle, fraction float64) {
	id := handle.(points.EntityID)
	v.progress[id] = append(v.progress[id], fraction)
}

func (v *recordingVisual) Destroy(handle points.VisualHandle) {
	v.destroyed = append(v.destroyed, handle.(points.EntityID))
}

func testConfig() points.Config {
	return points.Config{
		QueueCapacity:    16,
		MaxLive:          8,
		AnimationSeconds: 1.0,
	}
}

func newTestController(cfg points.Config) (*points.Controller, *recordingVisual) {
	visual := newRecordingVisual()
	return points.NewController(cfg, visual, nil), visual
}

func checkInvariant(t *testing.T, c *points.Controller) {
	t.Helper()
	if c.Population() != len(c.Entities()) {
		t.Fatalf("counter %d != registry size %d", c.Population(), len(c.Entities()))
	}
}

func TestSpawnLifecycleEndToEnd(t *testing.T) {
	c, visual := newTestController(testConfig())

	if err := c.RequestSpawn(payloadAt(1)); err != nil {
		t.Fatal(err)
	}
	if c.Population() != 0 {
		t.Fatal("staging a spawn must not create the entity")
	}

	s := c.Tick(4, 1.0)
	if s.Spawned != 1 || s.Matured != 1 {
		t.Fatalf("summary after spawn tick: %+v", s)
	}
	if c.Population() != 1 {
		t.Fatalf("population = %d, want 1", c.Population())
	}
	ents := c.Entities()
	if len(ents) != 1 || ents[0].State != points.StateLive {
		t.Fatalf("entity should be live, got %+v", ents)
	}
	if len(visual.created) != 1 {
		t.Fatalf("Create called %d times, want 1", len(visual.created))
	}
	prog := visual.progress[visual.created[0]]
	if len(prog) == 0 || prog[len(prog)-1] != 1.0 {
		t.Fatalf("final SetProgress = %v, want a trailing 1.0", prog)
	}

	c.RequestDespawn(1)
	s = c.Tick(4, 1.0)
	if s.DespawnsStarted != 1 || s.Removed != 1 || s.Shortfall != 0 {
		t.Fatalf("summary after despawn tick: %+v", s)
	}
	if c.Population() != 0 || len(c.Entities()) != 0 {
		t.Fatalf("population = %d, registry = %d after removal", c.Population(), len(c.Entities()))
	}
	if len(visual.destroyed) != 1 {
		t.Fatalf("Destroy called %d times, want 1", len(visual.destroyed))
	}
}

func TestCounterCountsEveryPhase(t *testing.T) {
	c, _ := newTestController(testConfig())
	for i := 0; i < 3; i++ {
		c.RequestSpawn(payloadAt(float64(i)))
	}

	// Half-way through the spawn animation: still counted.
	c.Tick(8, 0.5)
	if c.Population() != 3 {
		t.Fatalf("spawning entities not counted: %d", c.Population())
	}
	checkInvariant(t, c)

	c.Tick(8, 0.5) // mature
	c.RequestDespawn(3)
	c.Tick(8, 0.5) // half-way through despawn: still counted
	if c.Population() != 3 {
		t.Fatalf("despawning entities not counted: %d", c.Population())
	}
	checkInvariant(t, c)

	c.Tick(8, 0.5)
	if c.Population() != 0 {
		t.Fatalf("population = %d after removals, want 0", c.Population())
	}
	checkInvariant(t, c)
}

func TestDespawnSelectsOldestFirst(t *testing.T) {
	c, _ := newTestController(testConfig())

	// Stagger creation so ages differ: one entity per tick.
	for i := 0; i < 3; i++ {
		c.RequestSpawn(payloadAt(float64(i)))
		c.Tick(1, 1.0)
	}
	ents := c.Entities()
	if len(ents) != 3 {
		t.Fatalf("expected 3 live entities, got %d", len(ents))
	}
	first, second, third := ents[0].ID, ents[1].ID, ents[2].ID

	c.RequestDespawn(2)
	s := c.Tick(0, 0.1)
	if s.DespawnsStarted != 2 {
		t.Fatalf("started %d despawns, want 2", s.DespawnsStarted)
	}
	byID := map[points.EntityID]points.State{}
	for _, e := range c.Entities() {
		byID[e.ID] = e.State
	}
	if byID[first] != points.StateDespawning || byID[second] != points.StateDespawning {
		t.Errorf("oldest two should despawn, states: %v", byID)
	}
	if byID[third] != points.StateLive {
		t.Errorf("youngest entity should stay live, got %v", byID[third])
	}
}

func TestDespawnShortfallReported(t *testing.T) {
	c, _ := newTestController(testConfig())
	c.RequestSpawn(payloadAt(0))
	c.Tick(1, 1.0) // one live entity

	c.RequestDespawn(5)
	s := c.Tick(0, 1.0)
	if s.DespawnsRequested != 5 || s.DespawnsStarted != 1 || s.Shortfall != 4 {
		t.Fatalf("shortfall summary: %+v", s)
	}
	if s.Removed != 1 {
		t.Fatalf("the one available entity should be removed, summary: %+v", s)
	}

	// The unmet demand does not linger into later ticks.
	s = c.Tick(0, 1.0)
	if s.DespawnsRequested != 0 || s.Shortfall != 0 {
		t.Fatalf("stale despawn demand carried over: %+v", s)
	}
}

func TestSpawningEntitiesAreNotPreempted(t *testing.T) {
	c, _ := newTestController(testConfig())
	c.RequestSpawn(payloadAt(0))
	c.Tick(1, 0.25) // still spawning

	c.RequestDespawn(1)
	s := c.Tick(0, 0.25)
	if s.DespawnsStarted != 0 || s.Shortfall != 1 {
		t.Fatalf("a spawning entity was selected for despawn: %+v", s)
	}
	if got := c.Entities()[0].State; got != points.StateSpawning {
		t.Fatalf("entity state = %v, want still spawning", got)
	}

	// Once matured it becomes eligible for a fresh request.
	c.Tick(0, 1.0)
	c.RequestDespawn(1)
	s = c.Tick(0, 0.1)
	if s.DespawnsStarted != 1 {
		t.Fatalf("matured entity not selectable: %+v", s)
	}
}

func TestMaxLiveBoundsDrain(t *testing.T) {
	cfg := testConfig()
	cfg.MaxLive = 2
	c, _ := newTestController(cfg)

	for i := 0; i < 5; i++ {
		if err := c.RequestSpawn(payloadAt(float64(i))); err != nil {
			t.Fatal(err)
		}
	}
	s := c.Tick(10, 0.1)
	if s.Spawned != 2 {
		t.Fatalf("spawned %d, want the cap of 2", s.Spawned)
	}
	if c.Queued() != 3 {
		t.Fatalf("queued = %d, want the 3 undrained requests", c.Queued())
	}

	// No headroom, nothing drains.
	s = c.Tick(10, 0.1)
	if s.Spawned != 0 {
		t.Fatalf("spawned %d with zero headroom", s.Spawned)
	}

	// Removing entities frees headroom for the backlog.
	c.Tick(0, 1.0)
	c.RequestDespawn(2)
	c.Tick(0, 1.0)
	s = c.Tick(10, 0.1)
	if s.Spawned != 2 {
		t.Fatalf("spawned %d after freeing headroom, want 2", s.Spawned)
	}
	checkInvariant(t, c)
}

func TestMaxSpawnsPerTickBoundsDrain(t *testing.T) {
	c, _ := newTestController(testConfig())
	for i := 0; i < 6; i++ {
		c.RequestSpawn(payloadAt(float64(i)))
	}
	s := c.Tick(2, 0.1)
	if s.Spawned != 2 || c.Queued() != 4 {
		t.Fatalf("per-tick budget ignored: %+v queued=%d", s, c.Queued())
	}
}

func TestRequestSpawnSurfacesQueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.QueueCapacity = 1
	c, _ := newTestController(cfg)

	if err := c.RequestSpawn(payloadAt(0)); err != nil {
		t.Fatal(err)
	}
	err := c.RequestSpawn(payloadAt(1))
	if !errors.Is(err, points.ErrQueueFull) {
		t.Fatalf("second request returned %v, want ErrQueueFull", err)
	}
	if c.Queued() != 1 {
		t.Fatalf("rejected request changed the queue, len = %d", c.Queued())
	}
}

func TestResetClearsEverything(t *testing.T) {
	c, visual := newTestController(testConfig())
	for i := 0; i < 4; i++ {
		c.RequestSpawn(payloadAt(float64(i)))
	}
	c.Tick(2, 0.3) // two spawning, two still queued
	c.RequestDespawn(1)

	c.Reset()
	if c.Population() != 0 || len(c.Entities()) != 0 || c.Queued() != 0 {
		t.Fatalf("reset left state behind: pop=%d reg=%d queued=%d",
			c.Population(), len(c.Entities()), c.Queued())
	}
	if len(visual.destroyed) != 2 {
		t.Fatalf("reset destroyed %d visuals, want 2", len(visual.destroyed))
	}

	// A fresh run works after reset and sees no stale despawn demand.
	c.RequestSpawn(payloadAt(9))
	s := c.Tick(4, 1.0)
	if s.Spawned != 1 || s.DespawnsRequested != 0 {
		t.Fatalf("post-reset tick: %+v", s)
	}
	checkInvariant(t, c)
}

func TestInvariantHoldsAcrossMixedTicks(t *testing.T) {
	cfg := testConfig()
	cfg.MaxLive = 5
	c, _ := newTestController(cfg)

	steps := []struct {
		spawns   int
		despawns int
		dt       float64
	}{
		{spawns: 3, dt: 0.4},
		{spawns: 2, despawns: 1, dt: 0.4},
		{despawns: 2, dt: 0.4},
		{spawns: 4, dt: 1.2},
		{despawns: 10, dt: 0.7},
		{dt: 2.0},
	}
	for i, step := range steps {
		for j := 0; j < step.spawns; j++ {
			if err := c.RequestSpawn(payloadAt(float64(i*10 + j))); err != nil && !errors.Is(err, points.ErrQueueFull) {
				t.Fatalf("step %d: %v", i, err)
			}
		}
		if step.despawns > 0 {
			c.RequestDespawn(step.despawns)
		}
		s := c.Tick(3, step.dt)
		checkInvariant(t, c)
		if s.Population > cfg.MaxLive {
			t.Fatalf("step %d: population %d exceeds cap %d", i, s.Population, cfg.MaxLive)
		}
	}
}
