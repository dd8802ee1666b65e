package main

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"ebiten-points/config"
	"ebiten-points/data"
	"ebiten-points/events"
	"ebiten-points/points"
	"ebiten-points/render"
	"ebiten-points/sample"
)

// SpawnMode selects between user-driven and continuous spawning.
type SpawnMode int

const (
	SpawnManual SpawnMode = iota
	SpawnAutomatic
)

func (m SpawnMode) Toggle() SpawnMode {
	if m == SpawnManual {
		return SpawnAutomatic
	}
	return SpawnManual
}

func (m SpawnMode) String() string {
	if m == SpawnAutomatic {
		return "automatic"
	}
	return "manual"
}

// Game implements ebiten.Game. Each frame it decodes input into command
// events, stages the resulting requests, runs one controller tick and
// hands the outcome to the renderer.
type Game struct {
	cfg        *config.Config
	log        *zap.Logger
	scene      *data.Scene
	rng        *rand.Rand
	dispatcher *events.Dispatcher
	controller *points.Controller
	renderer   *render.Renderer

	samplingMode sample.SamplingMode
	spawnMode    SpawnMode

	mouseDown      bool
	mouseX, mouseY int
	rejected       int
}

// NewGame wires the controller, renderer and command dispatch together.
func NewGame(cfg *config.Config, scene *data.Scene, log *zap.Logger) *Game {
	renderer := render.NewRenderer(scene, cfg.Screen.Width, cfg.Screen.Height)
	controller := points.NewController(points.Config{
		QueueCapacity:    cfg.Points.QueueCapacity,
		MaxLive:          cfg.Points.MaxPoints,
		AnimationSeconds: cfg.Points.AnimationSeconds,
	}, renderer, log)

	g := &Game{
		cfg:          cfg,
		log:          log,
		scene:        scene,
		rng:          sample.NewSource(cfg.Points.Seed),
		dispatcher:   events.NewDispatcher(),
		controller:   controller,
		renderer:     renderer,
		samplingMode: sample.SampleInterior,
		spawnMode:    SpawnAutomatic,
	}
	g.subscribe()
	return g
}

// subscribe registers the command handlers. Handlers only stage intent;
// the tick at the end of Update applies it.
func (g *Game) subscribe() {
	g.dispatcher.Subscribe(events.EventSpawnRequested, func(e events.Event) {
		g.stageSpawns(e.(events.SpawnRequested).Count)
	})
	g.dispatcher.Subscribe(events.EventDespawnRequested, func(e events.Event) {
		g.controller.RequestDespawn(e.(events.DespawnRequested).Count)
	})
	g.dispatcher.Subscribe(events.EventSamplingModeToggled, func(events.Event) {
		g.samplingMode = g.samplingMode.Toggle()
	})
	g.dispatcher.Subscribe(events.EventSpawnModeToggled, func(events.Event) {
		g.spawnMode = g.spawnMode.Toggle()
	})
	g.dispatcher.Subscribe(events.EventResetRequested, func(events.Event) {
		g.controller.Reset()
	})
	g.dispatcher.Subscribe(events.EventHelpToggled, func(events.Event) {
		g.renderer.ToggleHelp()
	})
	g.dispatcher.Subscribe(events.EventSpawnRejected, func(e events.Event) {
		g.rejected += e.(events.SpawnRejected).Count
		g.renderer.FlashBusy()
	})
}

// stageSpawns enqueues count spawn requests with freshly sampled
// payloads. Requests the queue refuses are reported as a rejection
// event rather than dropped silently.
func (g *Game) stageSpawns(count int) {
	for i := 0; i < count; i++ {
		if err := g.controller.RequestSpawn(g.newPayload()); err != nil {
			if errors.Is(err, points.ErrQueueFull) {
				g.dispatcher.Emit(events.SpawnRejected{Count: count - i})
				return
			}
			g.log.Error("stage spawn", zap.Error(err))
			return
		}
	}
}

// newPayload samples a random position in (or on) a random scene shape.
func (g *Game) newPayload() points.SpawnPayload {
	placement := g.scene.Choose(g.rng)
	return points.SpawnPayload{
		Position: placement.Shape.Sample(g.samplingMode, g.rng).Add(placement.Offset),
		Shape:    placement.Shape,
		Boundary: g.samplingMode == sample.SampleBoundary,
	}
}

// Update runs one frame: input, automatic staging, the controller tick,
// then per-frame visual state.
func (g *Game) Update() error {
	g.handleInput()

	if g.spawnMode == SpawnAutomatic {
		g.dispatcher.Emit(events.SpawnRequested{Count: g.cfg.Points.PointsPerFrame})
		// At the cap the field keeps churning: the oldest points make
		// room for the newly staged ones.
		if g.controller.Population() >= g.cfg.Points.MaxPoints {
			g.dispatcher.Emit(events.DespawnRequested{Count: g.cfg.Points.PointsPerFrame})
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	summary := g.controller.Tick(g.cfg.Points.MaxSpawnsPerTick, dt)
	if g.rejected > 0 {
		g.log.Warn("spawn queue full",
			zap.Int("rejected", g.rejected),
			zap.Int("queued", summary.Queued))
		g.rejected = 0
	}

	g.renderer.Update(summary.Population, g.cfg.Points.MaxPoints, g.statusLine(summary))
	return nil
}

func (g *Game) statusLine(s points.TickSummary) string {
	return fmt.Sprintf("points: %d/%d  queued: %d  sampling: %s  spawning: %s",
		s.Population, g.cfg.Points.MaxPoints, s.Queued, g.samplingMode, g.spawnMode)
}

// handleInput translates raw input into command events and camera
// motion.
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.dispatcher.Emit(events.SpawnRequested{Count: 1})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.dispatcher.Emit(events.SpawnRequested{Count: 100})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.dispatcher.Emit(events.DespawnRequested{Count: g.cfg.Points.DespawnBatch})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.dispatcher.Emit(events.SamplingModeToggled{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.dispatcher.Emit(events.SpawnModeToggled{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.dispatcher.Emit(events.ResetRequested{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.dispatcher.Emit(events.HelpToggled{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.renderer.StepTarget(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.renderer.StepTarget(1)
	}

	rig := g.renderer.Rig()
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		rig.Zoom(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		rig.Zoom(1)
	}
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		rig.Zoom(wheelY)
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.mouseDown {
			rig.Rotate(float64(x-g.mouseX), float64(y-g.mouseY))
		}
		g.mouseDown = true
	} else {
		g.mouseDown = false
	}
	g.mouseX, g.mouseY = x, y
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

// Layout implements ebiten.Game's Layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Screen.Width, g.cfg.Screen.Height
}
