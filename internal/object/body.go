// Package object defines the rigid bodies moved by the simulation.
package object

import (
	"errors"

	"github.com/google/uuid"

	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/shape"
)

// ErrInvalidDensity is returned when a body is created with a non-positive density.
var ErrInvalidDensity = errors.New("object: density must be positive")

// Body couples a convex shape with rigid-body state.
// Shape geometry stays in body-local space; Space() places it in the world.
type Body struct {
	ID      uuid.UUID
	Shape   shape.Shape
	Density float64
	Mass    float64
	Inertia float64 // mass * boundingRadius² / 2

	Position        geom.Vector2
	Orientation     float64 // radians
	LinearVelocity  geom.Vector2
	AngularVelocity float64 // radians per tick

	// HighPriority bodies are not displaced by push-vector separation.
	HighPriority bool
}

// NewBody creates a body at the origin, at rest.
func NewBody(s shape.Shape, density float64) (*Body, error) {
	if !(density > 0) {
		return nil, ErrInvalidDensity
	}
	mass := s.Area() * density
	r := s.BoundingRadius()
	return &Body{
		ID:      uuid.New(),
		Shape:   s,
		Density: density,
		Mass:    mass,
		Inertia: mass * r * r / 2,
	}, nil
}

// Space returns the body's coordinate frame.
func (b *Body) Space() geom.Space {
	return geom.Space{Position: b.Position, Angle: b.Orientation}
}

// SetHighPriority marks the body as immovable during push separation.
func (b *Body) SetHighPriority() {
	b.HighPriority = true
}

// BoundingRect returns the world-space bounding rectangle.
func (b *Body) BoundingRect(pad shape.Padding) shape.Rect {
	return b.Shape.BoundingRect(b.Space(), pad)
}

// LocalToWorld maps a body-local point into the world.
func (b *Body) LocalToWorld(p geom.Vector2) geom.Vector2 {
	return b.Space().Transform(p)
}

// WorldToLocal maps a world point into body-local coordinates.
func (b *Body) WorldToLocal(p geom.Vector2) geom.Vector2 {
	return b.Space().Inverse(p)
}

// Center returns the world-space barycenter.
func (b *Body) Center() geom.Vector2 {
	return b.LocalToWorld(b.Shape.Barycenter())
}

// Vertices returns the world-space polygon vertices, or nil for a circle.
func (b *Body) Vertices() []geom.Vector2 {
	p, ok := b.Shape.(*shape.Polygon)
	if !ok {
		return nil
	}
	return p.TransformedVertices(b.Space())
}

// Offset returns the world-oriented offset of a world point from the body origin.
// It equals the body-local point rotated by the current orientation.
func (b *Body) Offset(world geom.Vector2) geom.Vector2 {
	return world.Sub(b.Position)
}

// PointVelocity returns the velocity of the material point at the given
// world-oriented offset: v + ω × r.
func (b *Body) PointVelocity(offset geom.Vector2) geom.Vector2 {
	return b.LinearVelocity.Add(offset.Perp().Scale(b.AngularVelocity))
}

// Project returns the world-space shadow of the body on axis.
func (b *Body) Project(axis geom.Vector2) (shape.Interval, error) {
	u, err := axis.Normalize()
	if err != nil {
		return shape.Interval{}, err
	}
	iv, err := b.Shape.Project(u.Rotate(-b.Orientation))
	if err != nil {
		return shape.Interval{}, err
	}
	return iv.Offset(u.Dot(b.Position)), nil
}

// WorldAxes returns the shape's separating axes rotated into world orientation.
func (b *Body) WorldAxes() []geom.Vector2 {
	local := b.Shape.Axes()
	out := make([]geom.Vector2, len(local))
	for i, a := range local {
		out[i] = a.Rotate(b.Orientation)
	}
	return out
}

// ApplyImpulse changes linear and angular velocity for an impulse of magnitude j
// along normal, applied at the world-oriented offset.
func (b *Body) ApplyImpulse(j float64, offset, normal geom.Vector2) {
	impulse := normal.Scale(j)
	b.LinearVelocity = b.LinearVelocity.Add(impulse.Div(b.Mass))
	b.AngularVelocity += offset.Cross(impulse) / b.Inertia
}

// Momentum returns mass * linear velocity.
func (b *Body) Momentum() geom.Vector2 {
	return b.LinearVelocity.Scale(b.Mass)
}
