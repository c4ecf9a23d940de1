package physics

import (
	"math"

	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/object"
	"github.com/tomz197/rigid2d/internal/shape"
)

// Push is the minimum translation separating two overlapping bodies.
// Vector is the displacement for A; B takes the opposite.
type Push struct {
	Vector geom.Vector2
	Axis   geom.Vector2 // unit
	Depth  float64      // unscaled overlap along Axis
}

// MinimumPushVector runs the separating axis test over both bodies' world axes.
// It reports false as soon as an axis separates the bodies. Otherwise it returns
// the smallest signed displacement of A that separates them, scaled by scale.
// Neither body is modified.
func MinimumPushVector(a, b *object.Body, scale float64) (Push, bool, error) {
	axes, err := separatingAxes(a, b)
	if err != nil {
		return Push{}, false, err
	}

	best := Push{Depth: math.Inf(1)}
	var sign float64
	for _, axis := range axes {
		ia, err := a.Project(axis)
		if err != nil {
			return Push{}, false, err
		}
		ib, err := b.Project(axis)
		if err != nil {
			return Push{}, false, err
		}
		if !ia.Overlaps(ib) {
			return Push{}, false, nil
		}

		// Moving A forward along the axis clears B's max; backward clears B's min.
		forward := ib.Max - ia.Min
		backward := ia.Max - ib.Min
		depth, s := forward, 1.0
		if backward < forward {
			depth, s = backward, -1.0
		}
		if depth < best.Depth {
			best.Depth = depth
			best.Axis = axis
			sign = s
		}
	}

	best.Vector = best.Axis.Scale(sign * best.Depth * scale)
	return best, true, nil
}

// separatingAxes collects the candidate axes for a pair: every polygon edge
// normal in world orientation, plus the center line for circles.
func separatingAxes(a, b *object.Body) ([]geom.Vector2, error) {
	var axes []geom.Vector2
	for _, body := range []*object.Body{a, b} {
		if body.Shape.Kind() == shape.KindPolygon {
			axes = append(axes, body.WorldAxes()...)
		}
	}

	_, aCircle := a.Shape.(*shape.Circle)
	_, bCircle := b.Shape.(*shape.Circle)

	var line geom.Vector2
	switch {
	case aCircle && bCircle:
		line = b.Position.Sub(a.Position)
	case aCircle:
		line = nearestVertex(b, a.Position).Sub(a.Position)
	case bCircle:
		line = nearestVertex(a, b.Position).Sub(b.Position)
	default:
		return axes, nil
	}

	u, err := line.Normalize()
	if err != nil {
		// Concentric circles or a circle centered on a vertex: any axis will do.
		u = AxisX
	}
	return append(axes, u), nil
}

func nearestVertex(b *object.Body, p geom.Vector2) geom.Vector2 {
	var best geom.Vector2
	bestD := math.Inf(1)
	for _, v := range b.Vertices() {
		if d := geom.DistanceSquared(v, p); d < bestD {
			bestD = d
			best = v
		}
	}
	return best
}

// ApplyPush moves the bodies apart. A high-priority body stays put and the other
// takes the whole displacement; otherwise each moves half.
func ApplyPush(a, b *object.Body, p Push) {
	switch {
	case a.HighPriority && !b.HighPriority:
		b.Position = b.Position.Sub(p.Vector)
	case b.HighPriority && !a.HighPriority:
		a.Position = a.Position.Add(p.Vector)
	default:
		half := p.Vector.Scale(0.5)
		a.Position = a.Position.Add(half)
		b.Position = b.Position.Sub(half)
	}
}
