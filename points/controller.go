package points

import "go.uber.org/zap"

// Config bounds the controller.
type Config struct {
	// QueueCapacity limits pending spawn requests.
	QueueCapacity int
	// MaxLive caps the population across all phases; the queue is never
	// drained past it.
	MaxLive int
	// AnimationSeconds is the duration of both the appearance and the
	// removal animation.
	AnimationSeconds float64
}

// TickSummary reports what one Tick did. It carries counts rather than
// errors: a despawn shortfall is a reported partial result, not a
// failure.
type TickSummary struct {
	Spawned           int // entities created from the queue this tick
	Matured           int // entities that finished spawning and went live
	DespawnsRequested int // staged despawn demand resolved this tick
	DespawnsStarted   int // live entities moved to despawning
	Shortfall         int // despawn demand that found no live entity
	Removed           int // entities whose removal completed
	Population        int // counter value after the tick
	Queued            int // spawn requests still pending after the tick
}

// Controller owns the point registry and is the only place lifecycle
// state changes. RequestSpawn and RequestDespawn merely stage intent;
// Tick is the single mutating entry point, so a frame that stages from
// an input phase and then ticks never races with itself.
type Controller struct {
	cfg      Config
	log      *zap.Logger
	queue    *SpawnQueue
	counter  *PopulationCounter
	animator *AnimationDriver
	visual   VisualService

	// entities holds records in creation order; byID indexes them.
	entities []*PointEntity
	byID     map[EntityID]*PointEntity
	nextID   EntityID

	pendingDespawn int
}

// NewController wires the controller to its visual service. A nil
// logger is replaced with a no-op one.
func NewController(cfg Config, visual VisualService, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		cfg:      cfg,
		log:      log,
		queue:    NewSpawnQueue(cfg.QueueCapacity),
		counter:  &PopulationCounter{},
		animator: NewAnimationDriver(),
		visual:   visual,
		byID:     make(map[EntityID]*PointEntity),
		nextID:   1,
	}
}

// RequestSpawn stages one creation. It only enqueues; the entity is
// created when a later Tick drains the request. ErrQueueFull is
// returned to the caller, who must surface or explicitly discard it.
func (c *Controller) RequestSpawn(payload SpawnPayload) error {
	if err := c.queue.Enqueue(payload); err != nil {
		return err
	}
	return nil
}

// RequestDespawn stages a demand to remove n live entities. The demand
// is resolved by the next Tick and does not carry over: whatever cannot
// be met then is reported as that tick's shortfall.
func (c *Controller) RequestDespawn(n int) {
	if n <= 0 {
		return
	}
	c.pendingDespawn += n
}

// Population returns the number of entities with a visual
// representation, in any phase.
func (c *Controller) Population() int {
	return c.counter.Value()
}

// Queued returns the number of pending spawn requests.
func (c *Controller) Queued() int {
	return c.queue.Len()
}

// Entities returns the registry in creation order. The slice is shared;
// callers must not mutate it.
func (c *Controller) Entities() []*PointEntity {
	return c.entities
}

// Tick runs one frame: drain staged spawns, resolve staged despawns,
// advance animations, and finalize completed transitions. maxSpawns
// bounds this tick's queue drain; dt is elapsed seconds from the clock.
func (c *Controller) Tick(maxSpawns int, dt float64) TickSummary {
	var s TickSummary

	c.drainSpawns(maxSpawns, &s)
	c.resolveDespawns(&s)
	c.applyAnimations(dt, &s)

	s.Population = c.counter.Value()
	s.Queued = c.queue.Len()

	if s.Population != len(c.entities) {
		c.log.DPanic("population counter desynchronized",
			zap.Int("counter", s.Population),
			zap.Int("registry", len(c.entities)))
	}
	return s
}

// Reset removes every entity and pending request, returning the
// controller to its initial state. Visual representations are destroyed
// immediately, without a removal animation.
func (c *Controller) Reset() {
	for _, e := range c.entities {
		c.visual.Destroy(e.handle)
		c.animator.Unregister(e.ID)
		if err := c.counter.Decrement(); err != nil {
			c.log.DPanic("population counter desynchronized on reset",
				zap.Uint64("entity", uint64(e.ID)), zap.Error(err))
		}
	}
	c.entities = c.entities[:0]
	clear(c.byID)
	c.queue.Drain(c.queue.Len())
	c.pendingDespawn = 0
}

// drainSpawns consumes queued requests up to both the per-tick budget
// and the remaining population headroom, creating a spawning entity for
// each.
func (c *Controller) drainSpawns(maxSpawns int, s *TickSummary) {
	budget := maxSpawns
	if room := c.cfg.MaxLive - c.counter.Value(); room < budget {
		budget = room
	}
	for _, req := range c.queue.Drain(budget) {
		e := &PointEntity{
			ID:      c.nextID,
			State:   StateSpawning,
			Payload: req.Payload,
		}
		c.nextID++
		c.entities = append(c.entities, e)
		c.byID[e.ID] = e
		c.counter.Increment()
		e.handle = c.visual.Create(e.ID, e.Payload)
		c.animator.Register(e.ID, c.cfg.AnimationSeconds)
		s.Spawned++
	}
}

// resolveDespawns selects oldest-created-first among live entities. The
// registry is in creation order with monotonic IDs, so a front-to-back
// scan is the deterministic order. Spawning entities are never
// selected; they must mature before a later request can claim them.
func (c *Controller) resolveDespawns(s *TickSummary) {
	n := c.pendingDespawn
	c.pendingDespawn = 0
	if n == 0 {
		return
	}
	s.DespawnsRequested = n
	for _, e := range c.entities {
		if s.DespawnsStarted == n {
			break
		}
		if e.State != StateLive {
			continue
		}
		e.State = StateDespawning
		e.Progress = 0
		c.animator.Register(e.ID, c.cfg.AnimationSeconds)
		s.DespawnsStarted++
	}
	s.Shortfall = n - s.DespawnsStarted
	if s.Shortfall > 0 {
		c.log.Debug("despawn shortfall",
			zap.Int("requested", n),
			zap.Int("started", s.DespawnsStarted))
	}
}

// applyAnimations advances every active track and finalizes the
// transitions the completions trigger.
func (c *Controller) applyAnimations(dt float64, s *TickSummary) {
	for _, u := range c.animator.Advance(dt) {
		e, ok := c.byID[u.ID]
		if !ok {
			continue
		}
		e.Progress = u.Value
		switch e.State {
		case StateSpawning:
			c.visual.SetProgress(e.handle, u.Value)
			if u.Done {
				e.State = StateLive
				s.Matured++
			}
		case StateDespawning:
			c.visual.SetProgress(e.handle, 1-u.Value)
			if u.Done {
				c.visual.Destroy(e.handle)
				if err := c.counter.Decrement(); err != nil {
					c.log.DPanic("population counter desynchronized on removal",
						zap.Uint64("entity", uint64(u.ID)), zap.Error(err))
				}
				c.removeEntity(u.ID)
				s.Removed++
			}
		}
	}
}

func (c *Controller) removeEntity(id EntityID) {
	delete(c.byID, id)
	for i, e := range c.entities {
		if e.ID == id {
			c.entities = append(c.entities[:i], c.entities[i+1:]...)
			return
		}
	}
}
