// Package render draws the point field. It implements the controller's
// visual service: the controller decides what exists, this package
// decides what that looks like on screen.
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-points/data"
	"ebiten-points/points"
	"ebiten-points/sample"
)

var (
	skyColor      = color.RGBA{5, 15, 38, 255}
	interiorColor = color.RGBA{218, 255, 3, 255}
	boundaryColor = color.RGBA{20, 51, 230, 255}
	outlineColor  = color.RGBA{51, 26, 153, 90}
	busyColor     = color.RGBA{255, 80, 80, 255}
)

const (
	pointWorldRadius = 0.03
	busyFlashTicks   = 45
	glowEase         = 0.04
)

// pointVisual is the on-screen record behind one VisualHandle.
type pointVisual struct {
	position sample.Vec3
	boundary bool
	// fraction is the visible share of the point, 0 hidden to 1 fully
	// grown.
	fraction float64
}

// Renderer projects the scene and the live point field onto the screen.
type Renderer struct {
	scene  *data.Scene
	rig    *Rig
	width  int
	height int

	visuals map[*pointVisual]struct{}

	showHelp   bool
	busyTicks  int
	glow       float64
	statusLine string
}

// NewRenderer builds the renderer for a fixed logical screen size.
func NewRenderer(scene *data.Scene, width, height int) *Renderer {
	return &Renderer{
		scene:   scene,
		rig:     NewRig(),
		width:   width,
		height:  height,
		visuals: make(map[*pointVisual]struct{}),
	}
}

// Rig exposes the orbit camera for input handling.
func (r *Renderer) Rig() *Rig {
	return r.rig
}

// Create implements points.VisualService.
func (r *Renderer) Create(_ points.EntityID, payload points.SpawnPayload) points.VisualHandle {
	v := &pointVisual{
		position: payload.Position,
		boundary: payload.Boundary,
	}
	r.visuals[v] = struct{}{}
	return v
}

// SetProgress implements points.VisualService.
func (r *Renderer) SetProgress(handle points.VisualHandle, fraction float64) {
	handle.(*pointVisual).fraction = fraction
}

// Destroy implements points.VisualService.
func (r *Renderer) Destroy(handle points.VisualHandle) {
	delete(r.visuals, handle.(*pointVisual))
}

// ToggleHelp shows or hides the control reference.
func (r *Renderer) ToggleHelp() {
	r.showHelp = !r.showHelp
}

// FlashBusy shows the queue-full signal for a short while.
func (r *Renderer) FlashBusy() {
	r.busyTicks = busyFlashTicks
}

// StepTarget moves the camera target to the neighbouring shape in the
// given direction (-1 left, +1 right).
func (r *Renderer) StepTarget(dir int) {
	idx := r.scene.NearestIndex(r.rig.Target) + dir
	if idx < 0 || idx >= len(r.scene.Placements) {
		return
	}
	r.rig.Target = r.scene.Placements[idx].Offset
}

// Update advances per-frame visual state: the firefly glow eases toward
// a level set by how full the field is, and the busy flash runs down.
func (r *Renderer) Update(population, maxPoints int, status string) {
	saturation := 0.0
	if maxPoints > 0 {
		saturation = float64(population) / float64(maxPoints)
		if saturation > 1 {
			saturation = 1
		}
	}
	r.glow += (saturation - r.glow) * glowEase
	if r.busyTicks > 0 {
		r.busyTicks--
	}
	r.statusLine = status
}

// Draw renders the sky, shape outlines, points and HUD onto screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	v := r.rig.view(r.width, r.height)

	r.drawOutlines(screen, v)
	r.drawPoints(screen, v)
	r.drawHUD(screen)
}

func (r *Renderer) drawOutlines(screen *ebiten.Image, v view) {
	for _, placement := range r.scene.Placements {
		for _, edge := range placement.Shape.Wireframe() {
			x0, y0, _, ok0 := v.project(edge.A.Add(placement.Offset))
			x1, y1, _, ok1 := v.project(edge.B.Add(placement.Offset))
			if !ok0 || !ok1 {
				continue
			}
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1),
				1, outlineColor, true)
		}
	}
}

func (r *Renderer) drawPoints(screen *ebiten.Image, v view) {
	// The glow dims a sparse field and brightens a full one, standing
	// in for the original's population-driven firefly lights.
	brightness := 0.55 + 0.45*r.glow
	interior := scaleColor(interiorColor, brightness)
	boundary := scaleColor(boundaryColor, brightness)

	for visual := range r.visuals {
		if visual.fraction <= 0 {
			continue
		}
		x, y, depth, ok := v.project(visual.position)
		if !ok {
			continue
		}
		radius := v.focal * pointWorldRadius * visual.fraction / depth
		if radius < 0.5 {
			radius = 0.5
		}
		clr := interior
		if visual.boundary {
			clr = boundary
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius), clr, true)
	}
}

const helpText = `Controls:
S: add one point   D: add 100 points
X: remove a batch of points
M: toggle interior/boundary sampling
A: toggle automatic spawning
R: erase all points
Left mouse drag: rotate camera
Wheel / +/-: zoom
Left/Right: look at neighbouring shape
Tab: toggle this help`

func (r *Renderer) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  %s", ebiten.ActualFPS(), r.statusLine))
	if r.busyTicks > 0 {
		msg := "QUEUE FULL - spawn requests rejected"
		ebitenutil.DebugPrintAt(screen, msg, r.width/2-len(msg)*3, 24)
		vector.StrokeRect(screen, 2, 2, float32(r.width-4), float32(r.height-4), 2, busyColor, false)
	}
	if r.showHelp {
		ebitenutil.DebugPrintAt(screen, helpText, 12, 40)
	}
}

func scaleColor(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		s := float64(v) * f
		if s > 255 {
			s = 255
		}
		return uint8(s)
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}
