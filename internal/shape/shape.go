// Package shape implements the convex geometry used by bodies: circles and polygons.
//
// Geometry is stored in shape-local coordinates. Callers pass a geom.Space to place
// it in the world.
package shape

import (
	"errors"
	"math"

	"github.com/tomz197/rigid2d/internal/geom"
)

var (
	ErrTooFewVertices     = errors.New("shape: polygon needs at least 3 distinct vertices")
	ErrCollinear          = errors.New("shape: polygon vertices are collinear")
	ErrDegenerateTriangle = errors.New("shape: degenerate triangle")
	ErrInvalidRadius      = errors.New("shape: radius must be positive")
)

// Kind identifies a shape variant.
type Kind int

const (
	KindCircle Kind = iota
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is the capability set shared by Circle and Polygon.
// The set of implementations is closed to this package.
type Shape interface {
	Kind() Kind
	Area() float64
	Barycenter() geom.Vector2
	BoundingRadius() float64
	// BoundingRect returns the world-space axis-aligned box of the shape placed by sp.
	BoundingRect(sp geom.Space, pad Padding) Rect
	// Project returns the shadow of the shape-local geometry on axis.
	// The axis is normalized first.
	Project(axis geom.Vector2) (Interval, error)
	// Axes returns the shape-local candidate separating axes.
	Axes() []geom.Vector2
	ContainsPoint(p geom.Vector2) (bool, error)
	// Normal returns the outward surface normal nearest to the local point p.
	Normal(p geom.Vector2) (geom.Vector2, error)

	sealed()
}

// Interval is a 1D shadow [Min, Max].
type Interval struct {
	Min, Max float64
}

// Overlaps reports whether the closed intervals intersect.
func (i Interval) Overlaps(o Interval) bool {
	return i.Min <= o.Max && o.Min <= i.Max
}

// Depth returns the length of the intersection, negative when the intervals are apart.
func (i Interval) Depth(o Interval) float64 {
	return math.Min(i.Max, o.Max) - math.Max(i.Min, o.Min)
}

// Offset shifts both ends by d.
func (i Interval) Offset(d float64) Interval {
	return Interval{Min: i.Min + d, Max: i.Max + d}
}

// Width returns Max - Min.
func (i Interval) Width() float64 {
	return i.Max - i.Min
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Overlaps reports whether two rectangles intersect on both axes.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX &&
		r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Padding is the slack applied to polygon bounding rectangles:
// Lower is subtracted from the minimum corner, Upper added to the maximum corner.
type Padding struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

func (p Padding) apply(r Rect) Rect {
	return Rect{
		MinX: r.MinX - p.Lower,
		MinY: r.MinY - p.Lower,
		MaxX: r.MaxX + p.Upper,
		MaxY: r.MaxY + p.Upper,
	}
}
