// Package data defines the scene: which shapes are on display and where
// they sit. Scenes can be loaded from a YAML file or fall back to the
// built-in row of all primitives.
package data

import (
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"ebiten-points/sample"
)

// DefaultSpacing is the gap between neighbouring shapes.
const DefaultSpacing = 2.0

// sceneFile is the on-disk YAML form.
type sceneFile struct {
	Spacing float64  `yaml:"spacing"`
	Shapes  []string `yaml:"shapes"`
}

// Placement is one shape positioned in the world.
type Placement struct {
	Shape  sample.Shape
	Offset sample.Vec3
}

// Scene is an ordered row of shape placements.
type Scene struct {
	Placements []Placement
}

// DefaultScene lays out every primitive in a centered row.
func DefaultScene() *Scene {
	return newScene(sample.AllShapes(), DefaultSpacing)
}

// LoadScene reads a YAML scene definition. Unknown shape names and
// empty scenes are errors; a zero spacing takes the default.
func LoadScene(path string) (*Scene, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	var file sceneFile
	if err := yaml.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if len(file.Shapes) == 0 {
		return nil, fmt.Errorf("scene %s: no shapes", path)
	}
	shapes := make([]sample.Shape, 0, len(file.Shapes))
	for _, name := range file.Shapes {
		shape, ok := sample.ShapeByName(name)
		if !ok {
			return nil, fmt.Errorf("scene %s: unknown shape %q", path, name)
		}
		shapes = append(shapes, shape)
	}
	spacing := file.Spacing
	if spacing == 0 {
		spacing = DefaultSpacing
	}
	return newScene(shapes, spacing), nil
}

func newScene(shapes []sample.Shape, spacing float64) *Scene {
	placements := make([]Placement, len(shapes))
	n := float64(len(shapes))
	for i, shape := range shapes {
		placements[i] = Placement{
			Shape:  shape,
			Offset: sample.Vec3{X: (float64(i) - n/2) * spacing},
		}
	}
	return &Scene{Placements: placements}
}

// Choose picks a random placement.
func (s *Scene) Choose(rng *rand.Rand) Placement {
	return s.Placements[rng.IntN(len(s.Placements))]
}

// NearestIndex returns the placement closest to target, used to step the
// camera between neighbouring shapes.
func (s *Scene) NearestIndex(target sample.Vec3) int {
	nearest := 0
	best := s.Placements[0].Offset.Distance(target)
	for i, p := range s.Placements[1:] {
		if d := p.Offset.Distance(target); d < best {
			nearest = i + 1
			best = d
		}
	}
	return nearest
}
