package shape

import (
	"math"

	"github.com/tomz197/rigid2d/internal/geom"
)

// Circle is centered on its local origin.
type Circle struct {
	radius float64
}

var _ Shape = (*Circle)(nil)

// NewCircle creates a circle with the given radius.
func NewCircle(radius float64) (*Circle, error) {
	if !(radius > 0) {
		return nil, ErrInvalidRadius
	}
	return &Circle{radius: radius}, nil
}

func (c *Circle) sealed() {}

func (c *Circle) Kind() Kind { return KindCircle }

// Radius returns the circle radius.
func (c *Circle) Radius() float64 { return c.radius }

// Area returns πr².
func (c *Circle) Area() float64 { return math.Pi * c.radius * c.radius }

// Centroid is the local origin.
func (c *Circle) Centroid() geom.Vector2 { return geom.Vector2{} }

func (c *Circle) Barycenter() geom.Vector2 { return geom.Vector2{} }

func (c *Circle) BoundingRadius() float64 { return c.radius }

// BoundingRect is center ± radius. Circles carry no padding.
func (c *Circle) BoundingRect(sp geom.Space, _ Padding) Rect {
	center := sp.Transform(geom.Vector2{})
	return Rect{
		MinX: center.X - c.radius,
		MinY: center.Y - c.radius,
		MaxX: center.X + c.radius,
		MaxY: center.Y + c.radius,
	}
}

// Project is [-r, r] along any unit axis. A zero axis is rejected.
func (c *Circle) Project(axis geom.Vector2) (Interval, error) {
	if axis.IsZero() {
		return Interval{}, geom.ErrZeroVector
	}
	return Interval{Min: -c.radius, Max: c.radius}, nil
}

// Axes returns a placeholder axis. The real separating axis for a circle is the
// line between centers, which only the pair knows.
func (c *Circle) Axes() []geom.Vector2 {
	return []geom.Vector2{{X: 1, Y: 0}}
}

func (c *Circle) ContainsPoint(p geom.Vector2) (bool, error) {
	return p.Len() < c.radius, nil
}

// Normal points from the center towards p.
func (c *Circle) Normal(p geom.Vector2) (geom.Vector2, error) {
	return p.Normalize()
}
