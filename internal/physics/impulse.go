package physics

import (
	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/object"
)

// Impulse is a resolved single-point collision response.
type Impulse struct {
	Magnitude float64
	Point     geom.Vector2
	Normal    geom.Vector2 // from B towards A
	OffsetA   geom.Vector2 // contact offset from A's origin, world oriented
	OffsetB   geom.Vector2
	// RelativeVelocity is A's point velocity relative to B's along Normal,
	// before the impulse. Negative means approaching.
	RelativeVelocity float64
}

// ComputeImpulse returns the impulse resolving contact c with restitution e.
// It reports false when the bodies are already separating at the contact.
// Both bodies' current velocities are read before either is changed.
func ComputeImpulse(a, b *object.Body, c Contact, e float64) (Impulse, bool) {
	n := c.Normal
	ra := a.Offset(c.Point)
	rb := b.Offset(c.Point)

	rel := a.PointVelocity(ra).Sub(b.PointVelocity(rb)).Dot(n)
	if rel >= 0 {
		return Impulse{}, false
	}

	raN := ra.Cross(n)
	rbN := rb.Cross(n)
	k := 1/a.Mass + 1/b.Mass + raN*raN/a.Inertia + rbN*rbN/b.Inertia
	j := -(1 + e) * rel / k

	return Impulse{
		Magnitude:        j,
		Point:            c.Point,
		Normal:           n,
		OffsetA:          ra,
		OffsetB:          rb,
		RelativeVelocity: rel,
	}, true
}

// ApplyImpulse pushes A along the normal and B against it.
func ApplyImpulse(a, b *object.Body, imp Impulse) {
	a.ApplyImpulse(imp.Magnitude, imp.OffsetA, imp.Normal)
	b.ApplyImpulse(-imp.Magnitude, imp.OffsetB, imp.Normal)
}
