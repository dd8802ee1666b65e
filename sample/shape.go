// Package sample provides the primitive shapes the demo scatters points
// over and uniform random sampling of their interiors and boundaries.
package sample

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// Primitive dimensions shared by all shapes.
const (
	smallSize = 0.5
	bigSize   = 1.0
)

// SamplingMode selects whether points are drawn from a shape's volume or
// from its surface.
type SamplingMode int

const (
	SampleInterior SamplingMode = iota
	SampleBoundary
)

// Toggle returns the other mode.
func (m SamplingMode) Toggle() SamplingMode {
	if m == SampleInterior {
		return SampleBoundary
	}
	return SampleInterior
}

func (m SamplingMode) String() string {
	if m == SampleBoundary {
		return "boundary"
	}
	return "interior"
}

// Shape is one of the sampleable primitives.
type Shape int

const (
	Cuboid Shape = iota
	Sphere
	Capsule
	Cylinder
	Tetrahedron
	Triangle
)

// AllShapes returns every primitive in display order.
func AllShapes() []Shape {
	return []Shape{Cuboid, Sphere, Capsule, Cylinder, Tetrahedron, Triangle}
}

func (s Shape) String() string {
	switch s {
	case Cuboid:
		return "cuboid"
	case Sphere:
		return "sphere"
	case Capsule:
		return "capsule"
	case Cylinder:
		return "cylinder"
	case Tetrahedron:
		return "tetrahedron"
	case Triangle:
		return "triangle"
	}
	return "unknown"
}

// ShapeByName maps a scene-file name back to a Shape.
func ShapeByName(name string) (Shape, bool) {
	for _, s := range AllShapes() {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// NewSource builds the deterministic generator used for all sampling.
// ChaCha8 matches the generator the demo has always seeded.
func NewSource(seed uint64) *rand.Rand {
	var key [32]byte
	for i := 0; i < len(key); i += 8 {
		binary.LittleEndian.PutUint64(key[i:], seed+uint64(i))
	}
	return rand.New(rand.NewChaCha8(key))
}

// Sample returns a random point inside or on the shape, per mode.
func (s Shape) Sample(mode SamplingMode, rng *rand.Rand) Vec3 {
	if mode == SampleBoundary {
		return s.SampleBoundary(rng)
	}
	return s.SampleInterior(rng)
}

// SampleInterior returns a point uniformly distributed over the shape's
// volume (area, for the flat triangle).
func (s Shape) SampleInterior(rng *rand.Rand) Vec3 {
	switch s {
	case Cuboid:
		return cuboidInterior(rng)
	case Sphere:
		return sphereInterior(rng)
	case Capsule:
		return capsuleInterior(rng)
	case Cylinder:
		return cylinderInterior(rng)
	case Tetrahedron:
		return tetrahedronInterior(rng)
	case Triangle:
		return triangleInterior(rng)
	}
	return Vec3{}
}

// SampleBoundary returns a point uniformly distributed over the shape's
// surface (edges, for the flat triangle).
func (s Shape) SampleBoundary(rng *rand.Rand) Vec3 {
	switch s {
	case Cuboid:
		return cuboidBoundary(rng)
	case Sphere:
		return sphereBoundary(rng)
	case Capsule:
		return capsuleBoundary(rng)
	case Cylinder:
		return cylinderBoundary(rng)
	case Tetrahedron:
		return tetrahedronBoundary(rng)
	case Triangle:
		return triangleBoundary(rng)
	}
	return Vec3{}
}

// Contains reports whether p lies inside the shape (within eps of the
// surface for the flat triangle). Used by tests and the renderer's
// highlight pass.
func (s Shape) Contains(p Vec3, eps float64) bool {
	switch s {
	case Cuboid:
		h := cuboidHalf()
		return math.Abs(p.X) <= h.X+eps && math.Abs(p.Y) <= h.Y+eps && math.Abs(p.Z) <= h.Z+eps
	case Sphere:
		return p.Length() <= sphereRadius+eps
	case Capsule:
		y := clamp(p.Y, -capsuleHalfLen, capsuleHalfLen)
		return p.Distance(Vec3{Y: y}) <= capsuleRadius+eps
	case Cylinder:
		if math.Abs(p.Y) > cylinderHalfH+eps {
			return false
		}
		return math.Hypot(p.X, p.Z) <= cylinderRadius+eps
	case Tetrahedron:
		return pointInTetrahedron(p, tetrahedronVertices(), eps)
	case Triangle:
		a, b, c := triangleVertices()
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		if math.Abs(p.Sub(a).Dot(n)) > eps {
			return false
		}
		return pointInTriangle(p, a, b, c, eps)
	}
	return false
}

// --- cuboid ---

func cuboidHalf() Vec3 {
	return Vec3{smallSize / 2, bigSize / 2, smallSize / 2}
}

func cuboidInterior(rng *rand.Rand) Vec3 {
	h := cuboidHalf()
	return Vec3{
		uniform(rng, -h.X, h.X),
		uniform(rng, -h.Y, h.Y),
		uniform(rng, -h.Z, h.Z),
	}
}

func cuboidBoundary(rng *rand.Rand) Vec3 {
	h := cuboidHalf()
	// Face pair picked proportionally to area.
	ax := h.Y * h.Z // x-normal faces
	ay := h.X * h.Z
	az := h.X * h.Y
	pick := uniform(rng, 0, ax+ay+az)
	sign := 1.0
	if rng.IntN(2) == 0 {
		sign = -1.0
	}
	switch {
	case pick < ax:
		return Vec3{sign * h.X, uniform(rng, -h.Y, h.Y), uniform(rng, -h.Z, h.Z)}
	case pick < ax+ay:
		return Vec3{uniform(rng, -h.X, h.X), sign * h.Y, uniform(rng, -h.Z, h.Z)}
	default:
		return Vec3{uniform(rng, -h.X, h.X), uniform(rng, -h.Y, h.Y), sign * h.Z}
	}
}

// --- sphere ---

const sphereRadius = 1.5 * smallSize

func unitDirection(rng *rand.Rand) Vec3 {
	z := uniform(rng, -1, 1)
	phi := uniform(rng, 0, 2*math.Pi)
	r := math.Sqrt(1 - z*z)
	return Vec3{r * math.Cos(phi), z, r * math.Sin(phi)}
}

func sphereInterior(rng *rand.Rand) Vec3 {
	r := sphereRadius * math.Cbrt(rng.Float64())
	return unitDirection(rng).Scale(r)
}

func sphereBoundary(rng *rand.Rand) Vec3 {
	return unitDirection(rng).Scale(sphereRadius)
}

// --- capsule ---

const (
	capsuleRadius  = smallSize
	capsuleHalfLen = bigSize
)

func capsuleInterior(rng *rand.Rand) Vec3 {
	r := capsuleRadius
	cylVol := math.Pi * r * r * 2 * capsuleHalfLen
	capVol := 4.0 / 3.0 * math.Pi * r * r * r
	if uniform(rng, 0, cylVol+capVol) < cylVol {
		x, z := discPoint(rng, r)
		return Vec3{x, uniform(rng, -capsuleHalfLen, capsuleHalfLen), z}
	}
	// Hemispherical end caps: a uniform ball point pushed out to the
	// cap on its own side.
	p := unitDirection(rng).Scale(r * math.Cbrt(rng.Float64()))
	if p.Y >= 0 {
		p.Y += capsuleHalfLen
	} else {
		p.Y -= capsuleHalfLen
	}
	return p
}

func capsuleBoundary(rng *rand.Rand) Vec3 {
	r := capsuleRadius
	sideArea := 2 * math.Pi * r * 2 * capsuleHalfLen
	capArea := 4 * math.Pi * r * r
	if uniform(rng, 0, sideArea+capArea) < sideArea {
		phi := uniform(rng, 0, 2*math.Pi)
		return Vec3{r * math.Cos(phi), uniform(rng, -capsuleHalfLen, capsuleHalfLen), r * math.Sin(phi)}
	}
	p := unitDirection(rng).Scale(r)
	if p.Y >= 0 {
		p.Y += capsuleHalfLen
	} else {
		p.Y -= capsuleHalfLen
	}
	return p
}

// --- cylinder ---

const (
	cylinderRadius = smallSize
	cylinderHalfH  = smallSize
)

func cylinderInterior(rng *rand.Rand) Vec3 {
	x, z := discPoint(rng, cylinderRadius)
	return Vec3{x, uniform(rng, -cylinderHalfH, cylinderHalfH), z}
}

func cylinderBoundary(rng *rand.Rand) Vec3 {
	r := cylinderRadius
	sideArea := 2 * math.Pi * r * 2 * cylinderHalfH
	capArea := 2 * math.Pi * r * r // both end discs
	if uniform(rng, 0, sideArea+capArea) < sideArea {
		phi := uniform(rng, 0, 2*math.Pi)
		return Vec3{r * math.Cos(phi), uniform(rng, -cylinderHalfH, cylinderHalfH), r * math.Sin(phi)}
	}
	x, z := discPoint(rng, r)
	y := cylinderHalfH
	if rng.IntN(2) == 0 {
		y = -y
	}
	return Vec3{x, y, z}
}

// --- tetrahedron ---

func tetrahedronVertices() [4]Vec3 {
	return [4]Vec3{
		{-bigSize, -bigSize * 0.67, bigSize * 0.5},
		{bigSize, -bigSize * 0.67, bigSize * 0.5},
		{0, -bigSize * 0.67, -bigSize * 1.17},
		{0, bigSize, 0},
	}
}

func tetrahedronInterior(rng *rand.Rand) Vec3 {
	v := tetrahedronVertices()
	// Sorted uniforms give uniform barycentric weights over the simplex.
	s, t, u := rng.Float64(), rng.Float64(), rng.Float64()
	if s > t {
		s, t = t, s
	}
	if t > u {
		t, u = u, t
	}
	if s > t {
		s, t = t, s
	}
	w := [4]float64{s, t - s, u - t, 1 - u}
	p := Vec3{}
	for i := range v {
		p = p.Add(v[i].Scale(w[i]))
	}
	return p
}

func tetrahedronBoundary(rng *rand.Rand) Vec3 {
	v := tetrahedronVertices()
	faces := [4][3]Vec3{
		{v[0], v[1], v[2]},
		{v[0], v[1], v[3]},
		{v[0], v[2], v[3]},
		{v[1], v[2], v[3]},
	}
	var areas [4]float64
	total := 0.0
	for i, f := range faces {
		areas[i] = triangleArea(f[0], f[1], f[2])
		total += areas[i]
	}
	pick := uniform(rng, 0, total)
	for i, f := range faces {
		if pick < areas[i] || i == len(faces)-1 {
			return trianglePoint(rng, f[0], f[1], f[2])
		}
		pick -= areas[i]
	}
	return Vec3{}
}

// --- triangle ---

func triangleVertices() (Vec3, Vec3, Vec3) {
	return Vec3{bigSize, -bigSize * 0.5, 0},
		Vec3{0, bigSize, 0},
		Vec3{-bigSize, -bigSize * 0.5, 0}
}

func triangleInterior(rng *rand.Rand) Vec3 {
	a, b, c := triangleVertices()
	return trianglePoint(rng, a, b, c)
}

func triangleBoundary(rng *rand.Rand) Vec3 {
	a, b, c := triangleVertices()
	edges := [3][2]Vec3{{a, b}, {b, c}, {c, a}}
	var lens [3]float64
	total := 0.0
	for i, e := range edges {
		lens[i] = e[0].Distance(e[1])
		total += lens[i]
	}
	pick := uniform(rng, 0, total)
	for i, e := range edges {
		if pick < lens[i] || i == len(edges)-1 {
			return e[0].Add(e[1].Sub(e[0]).Scale(rng.Float64()))
		}
		pick -= lens[i]
	}
	return Vec3{}
}

// --- shared helpers ---

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

func discPoint(rng *rand.Rand, radius float64) (x, z float64) {
	r := radius * math.Sqrt(rng.Float64())
	phi := uniform(rng, 0, 2*math.Pi)
	return r * math.Cos(phi), r * math.Sin(phi)
}

func trianglePoint(rng *rand.Rand, a, b, c Vec3) Vec3 {
	u, v := rng.Float64(), rng.Float64()
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	return a.Add(b.Sub(a).Scale(u)).Add(c.Sub(a).Scale(v))
}

func triangleArea(a, b, c Vec3) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a)).Length()
}

func pointInTriangle(p, a, b, c Vec3, eps float64) bool {
	// Barycentric coordinates relative to vertex a.
	v0 := c.Sub(a)
	v1 := b.Sub(a)
	v2 := p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return false
	}
	u := (d11*d20 - d01*d21) / denom
	v := (d00*d21 - d01*d20) / denom
	return u >= -eps && v >= -eps && u+v <= 1+eps
}

func pointInTetrahedron(p Vec3, v [4]Vec3, eps float64) bool {
	// The point is inside when it sits on the inner side of all four
	// face planes.
	faces := [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
	opposite := [4]int{3, 2, 1, 0}
	for i, f := range faces {
		a, b, c := v[f[0]], v[f[1]], v[f[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		inner := v[opposite[i]].Sub(a).Dot(n)
		if inner < 0 {
			n = n.Scale(-1)
		}
		if p.Sub(a).Dot(n) < -eps {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
