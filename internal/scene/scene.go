// Package scene builds sets of bodies from YAML scene files or at random.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/object"
	"github.com/tomz197/rigid2d/internal/shape"
)

var (
	// ErrUnknownShape is returned for a shape kind the loader does not know.
	ErrUnknownShape = errors.New("scene: unknown shape kind")
	// ErrTooManyBodies is returned when a scene exceeds the configured body limit.
	ErrTooManyBodies = errors.New("scene: too many bodies")
)

// Shape kinds accepted in scene files.
const (
	ShapeCircle  = "circle"
	ShapePolygon = "polygon"
	ShapeRect    = "rect"
	ShapeRegular = "regular"
)

// ShapeSpec describes a body's shape. Which fields apply depends on Kind.
type ShapeSpec struct {
	Kind     string         `yaml:"kind"`
	Radius   float64        `yaml:"radius,omitempty"`   // circle, regular
	Sides    int            `yaml:"sides,omitempty"`    // regular
	Width    float64        `yaml:"width,omitempty"`    // rect
	Height   float64        `yaml:"height,omitempty"`   // rect
	Vertices []geom.Vector2 `yaml:"vertices,omitempty"` // polygon, any order
	// Center moves polygon vertices so the barycenter sits on the body origin.
	Center bool `yaml:"center,omitempty"`
}

// BodySpec describes one body in a scene.
type BodySpec struct {
	Name            string       `yaml:"name,omitempty"`
	Shape           ShapeSpec    `yaml:"shape"`
	Density         float64      `yaml:"density"`
	Position        geom.Vector2 `yaml:"position"`
	Orientation     float64      `yaml:"orientation,omitempty"`
	Velocity        geom.Vector2 `yaml:"velocity,omitempty"`
	AngularVelocity float64      `yaml:"angular_velocity,omitempty"`
	HighPriority    bool         `yaml:"high_priority,omitempty"`
}

// Scene is the top-level document of a scene file.
type Scene struct {
	Bodies []BodySpec `yaml:"bodies"`
}

// Load reads a scene file from disk.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// LoadYAML decodes a scene document.
func LoadYAML(r io.Reader) (*Scene, error) {
	var s Scene
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	return &s, nil
}

// Build creates the bodies described by the scene.
func (s *Scene) Build(cfg config.Config) ([]*object.Body, error) {
	if len(s.Bodies) > cfg.MaxBodies {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyBodies, len(s.Bodies), cfg.MaxBodies)
	}
	bodies := make([]*object.Body, 0, len(s.Bodies))
	for i, spec := range s.Bodies {
		b, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("scene: body %d %q: %w", i, spec.Name, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// Build creates the body described by spec.
func (spec BodySpec) Build() (*object.Body, error) {
	s, err := spec.Shape.Build()
	if err != nil {
		return nil, err
	}
	density := spec.Density
	if density == 0 {
		density = 1
	}
	b, err := object.NewBody(s, density)
	if err != nil {
		return nil, err
	}
	b.Position = spec.Position
	b.Orientation = spec.Orientation
	b.LinearVelocity = spec.Velocity
	b.AngularVelocity = spec.AngularVelocity
	b.HighPriority = spec.HighPriority
	return b, nil
}

// Build creates the shape described by spec.
func (spec ShapeSpec) Build() (shape.Shape, error) {
	switch spec.Kind {
	case ShapeCircle:
		return shape.NewCircle(spec.Radius)
	case ShapeRect:
		return shape.NewRect(spec.Width, spec.Height)
	case ShapeRegular:
		return shape.NewRegular(spec.Sides, spec.Radius)
	case ShapePolygon:
		p, err := shape.NewPolygon(spec.Vertices)
		if err != nil {
			return nil, err
		}
		if spec.Center {
			p.Translate(p.Barycenter().Neg())
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, spec.Kind)
	}
}
