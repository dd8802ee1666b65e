package sample

import "math"

// Edge is a world-space line segment of a shape's outline.
type Edge struct {
	A, B Vec3
}

const ringSegments = 24

// Wireframe returns the outline segments the renderer strokes for the
// shape, centered on the origin.
func (s Shape) Wireframe() []Edge {
	switch s {
	case Cuboid:
		return boxEdges(cuboidHalf())
	case Sphere:
		return sphereEdges()
	case Capsule:
		return capsuleEdges()
	case Cylinder:
		return cylinderEdges()
	case Tetrahedron:
		v := tetrahedronVertices()
		return []Edge{
			{v[0], v[1]}, {v[0], v[2]}, {v[0], v[3]},
			{v[1], v[2]}, {v[1], v[3]}, {v[2], v[3]},
		}
	case Triangle:
		a, b, c := triangleVertices()
		return []Edge{{a, b}, {b, c}, {c, a}}
	}
	return nil
}

func boxEdges(h Vec3) []Edge {
	var corners [8]Vec3
	for i := range corners {
		sx, sy, sz := 1.0, 1.0, 1.0
		if i&1 != 0 {
			sx = -1
		}
		if i&2 != 0 {
			sy = -1
		}
		if i&4 != 0 {
			sz = -1
		}
		corners[i] = Vec3{sx * h.X, sy * h.Y, sz * h.Z}
	}
	pairs := [12][2]int{
		{0, 1}, {2, 3}, {4, 5}, {6, 7},
		{0, 2}, {1, 3}, {4, 6}, {5, 7},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	edges := make([]Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = Edge{corners[p[0]], corners[p[1]]}
	}
	return edges
}

// ring builds a horizontal circle of radius r at height y.
func ring(r, y float64) []Edge {
	edges := make([]Edge, 0, ringSegments)
	for i := 0; i < ringSegments; i++ {
		a0 := 2 * math.Pi * float64(i) / ringSegments
		a1 := 2 * math.Pi * float64(i+1) / ringSegments
		edges = append(edges, Edge{
			Vec3{r * math.Cos(a0), y, r * math.Sin(a0)},
			Vec3{r * math.Cos(a1), y, r * math.Sin(a1)},
		})
	}
	return edges
}

// verticalArc sweeps a half circle in the XZ-rotated vertical plane.
func verticalArc(r, yOffset, planeAngle, from, to float64) []Edge {
	edges := make([]Edge, 0, ringSegments/2)
	cos, sin := math.Cos(planeAngle), math.Sin(planeAngle)
	point := func(a float64) Vec3 {
		x := r * math.Cos(a)
		return Vec3{x * cos, yOffset + r*math.Sin(a), x * sin}
	}
	steps := ringSegments / 2
	for i := 0; i < steps; i++ {
		a0 := from + (to-from)*float64(i)/float64(steps)
		a1 := from + (to-from)*float64(i+1)/float64(steps)
		edges = append(edges, Edge{point(a0), point(a1)})
	}
	return edges
}

func sphereEdges() []Edge {
	edges := ring(sphereRadius, 0)
	edges = append(edges, verticalArc(sphereRadius, 0, 0, 0, 2*math.Pi)...)
	edges = append(edges, verticalArc(sphereRadius, 0, math.Pi/2, 0, 2*math.Pi)...)
	return edges
}

func capsuleEdges() []Edge {
	edges := ring(capsuleRadius, capsuleHalfLen)
	edges = append(edges, ring(capsuleRadius, -capsuleHalfLen)...)
	for _, angle := range []float64{0, math.Pi / 2} {
		edges = append(edges, verticalArc(capsuleRadius, capsuleHalfLen, angle, 0, math.Pi)...)
		edges = append(edges, verticalArc(capsuleRadius, -capsuleHalfLen, angle, math.Pi, 2*math.Pi)...)
	}
	// Side lines connecting the two rings.
	for _, angle := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		x, z := capsuleRadius*math.Cos(angle), capsuleRadius*math.Sin(angle)
		edges = append(edges, Edge{
			Vec3{x, capsuleHalfLen, z},
			Vec3{x, -capsuleHalfLen, z},
		})
	}
	return edges
}

func cylinderEdges() []Edge {
	edges := ring(cylinderRadius, cylinderHalfH)
	edges = append(edges, ring(cylinderRadius, -cylinderHalfH)...)
	for _, angle := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		x, z := cylinderRadius*math.Cos(angle), cylinderRadius*math.Sin(angle)
		edges = append(edges, Edge{
			Vec3{x, cylinderHalfH, z},
			Vec3{x, -cylinderHalfH, z},
		})
	}
	return edges
}
