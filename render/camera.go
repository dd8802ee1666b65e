package render

import (
	"math"

	"ebiten-points/sample"
)

// Camera distance limits keep every shape in frame without clipping
// through the one being inspected.
const (
	MinCameraDistance = 1.0
	MaxCameraDistance = 12.0

	pitchLimit = math.Pi / 2.01
)

// Rig is the orbit camera: yaw/pitch around a target at a zoomable
// distance.
type Rig struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	Target   sample.Vec3
}

// NewRig returns the rig at its start-of-run vantage point.
func NewRig() *Rig {
	return &Rig{
		Yaw:      0.56,
		Pitch:    0.45,
		Distance: 8.0,
	}
}

// Rotate pans the camera by a mouse drag, in pixels.
func (r *Rig) Rotate(dx, dy float64) {
	r.Yaw += dx / 90.0
	r.Pitch += dy / 90.0
	if r.Pitch > pitchLimit {
		r.Pitch = pitchLimit
	}
	if r.Pitch < -pitchLimit {
		r.Pitch = -pitchLimit
	}
}

// Zoom moves the camera along its view axis; positive steps zoom in.
func (r *Rig) Zoom(steps float64) {
	r.Distance -= steps / 15.0 * MaxCameraDistance
	if r.Distance < MinCameraDistance {
		r.Distance = MinCameraDistance
	}
	if r.Distance > MaxCameraDistance {
		r.Distance = MaxCameraDistance
	}
}

// Position returns the camera's world position for the current rig
// state.
func (r *Rig) Position() sample.Vec3 {
	cp := math.Cos(r.Pitch)
	return r.Target.Add(sample.Vec3{
		X: r.Distance * cp * math.Sin(r.Yaw),
		Y: r.Distance * math.Sin(r.Pitch),
		Z: r.Distance * cp * math.Cos(r.Yaw),
	})
}

// view is the camera basis used to project world points to the screen.
type view struct {
	position sample.Vec3
	right    sample.Vec3
	up       sample.Vec3
	forward  sample.Vec3
	focal    float64
	cx, cy   float64
}

const (
	fieldOfView = math.Pi / 4
	nearPlane   = 0.1
)

func (r *Rig) view(width, height int) view {
	pos := r.Position()
	forward := r.Target.Sub(pos).Normalize()
	right := forward.Cross(sample.Vec3{Y: 1}).Normalize()
	if right == (sample.Vec3{}) {
		// Looking straight along the vertical axis; any horizontal
		// right vector works.
		right = sample.Vec3{X: 1}
	}
	up := right.Cross(forward)
	return view{
		position: pos,
		right:    right,
		up:       up,
		forward:  forward,
		focal:    float64(height) / 2 / math.Tan(fieldOfView/2),
		cx:       float64(width) / 2,
		cy:       float64(height) / 2,
	}
}

// project maps a world point to screen coordinates and its depth. ok is
// false behind the near plane.
func (v view) project(p sample.Vec3) (x, y, depth float64, ok bool) {
	d := p.Sub(v.position)
	depth = d.Dot(v.forward)
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	x = v.cx + v.focal*d.Dot(v.right)/depth
	y = v.cy - v.focal*d.Dot(v.up)/depth
	return x, y, depth, true
}
