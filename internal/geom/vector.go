// Package geom provides 2D vector math and coordinate frames.
package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroVector is returned when a direction is requested from a zero-length vector.
var ErrZeroVector = errors.New("geom: zero-length vector")

// Vector2 is a 2D vector. All operations return new values.
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V is shorthand for Vector2{X: x, Y: y}.
func V(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Div returns v / s. Dividing by zero yields infinities, callers guard the divisor.
func (v Vector2) Div(s float64) Vector2 {
	return Vector2{X: v.X / s, Y: v.Y / s}
}

// Neg returns -v.
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Dot returns the scalar product.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the wedge product v.X*o.Y - o.X*v.Y.
// Positive when o lies counter-clockwise of v.
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - o.X*v.Y
}

// Len returns the magnitude.
func (v Vector2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSq returns the squared magnitude.
// Use this when comparing lengths to avoid the sqrt cost.
func (v Vector2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector pointing along v.
func (v Vector2) Normalize() (Vector2, error) {
	l := v.Len()
	if l == 0 {
		return Vector2{}, ErrZeroVector
	}
	return v.Div(l), nil
}

// Rotate returns v rotated counter-clockwise by theta radians.
func (v Vector2) Rotate(theta float64) Vector2 {
	sin, cos := math.Sincos(theta)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Perp returns v rotated by 90 degrees counter-clockwise.
func (v Vector2) Perp() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

// Less orders by Y only. It is a tie-break key, not a total order.
func (v Vector2) Less(o Vector2) bool {
	return v.Y < o.Y
}

// Greater orders by Y only.
func (v Vector2) Greater(o Vector2) bool {
	return v.Y > o.Y
}

// Equal reports exact component equality.
func (v Vector2) Equal(o Vector2) bool {
	return v.X == o.X && v.Y == o.Y
}

// IsZero reports whether both components are zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vector2) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared returns the squared distance between two points.
func DistanceSquared(a, b Vector2) float64 {
	return b.Sub(a).LenSq()
}
