package physics

import (
	"math"

	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/object"
	"github.com/tomz197/rigid2d/internal/shape"
)

// Contact is a world-space touching point. Normal is a unit vector pointing
// from B towards A.
type Contact struct {
	Point  geom.Vector2 `json:"point"`
	Normal geom.Vector2 `json:"normal"`
}

// CheckVertexVertex reports a contact when v1 and v2 are strictly closer than tol.
// The normal points from v2 towards v1. Coincident vertices have no direction
// and are not reported.
func CheckVertexVertex(v1, v2 geom.Vector2, tol float64) (geom.Vector2, bool) {
	d := v1.Sub(v2)
	if d.Len() >= tol {
		return geom.Vector2{}, false
	}
	n, err := d.Normalize()
	if err != nil {
		return geom.Vector2{}, false
	}
	return n, true
}

// CheckVertexEdge reports a contact when vertex lies within tol of the line
// through the edge and its projection falls strictly inside the segment.
// The normal is the edge direction rotated by 90 degrees counter-clockwise,
// which for a counter-clockwise polygon points into that polygon.
func CheckVertexEdge(vertex, edgeStart, edgeEnd geom.Vector2, tol float64) (geom.Vector2, bool) {
	edge := edgeEnd.Sub(edgeStart)
	u, err := edge.Normalize()
	if err != nil {
		return geom.Vector2{}, false
	}
	p := vertex.Sub(edgeStart)
	along := p.Dot(u)
	if math.Abs(p.Cross(u)) < tol && along > 0 && along < edge.Len() {
		return u.Perp(), true
	}
	return geom.Vector2{}, false
}

// Manifold collects every contact between a and b. Only the first contact is
// used for resolution, but all of them are returned.
func Manifold(a, b *object.Body, tol float64) ([]Contact, error) {
	ac, aCircle := a.Shape.(*shape.Circle)
	bc, bCircle := b.Shape.(*shape.Circle)

	switch {
	case aCircle && bCircle:
		return circleCircle(a, b, ac, bc, tol)
	case aCircle:
		return circlePolygon(a, b, ac, tol, 1)
	case bCircle:
		return circlePolygon(b, a, bc, tol, -1)
	default:
		return polyPoly(a, b, tol), nil
	}
}

func polyPoly(a, b *object.Body, tol float64) []Contact {
	va := a.Vertices()
	vb := b.Vertices()
	var contacts []Contact

	for _, v1 := range va {
		for _, v2 := range vb {
			if n, ok := CheckVertexVertex(v1, v2, tol); ok {
				contacts = append(contacts, Contact{Point: v1, Normal: n})
			}
		}
	}

	for i := range va {
		e1, e2 := va[i], va[(i+1)%len(va)]
		for _, v := range vb {
			if n, ok := CheckVertexEdge(v, e1, e2, tol); ok {
				contacts = append(contacts, Contact{Point: v, Normal: n})
			}
		}
	}

	// B's edge normals point into B, flip them so they point towards A.
	for i := range vb {
		e1, e2 := vb[i], vb[(i+1)%len(vb)]
		for _, v := range va {
			if n, ok := CheckVertexEdge(v, e1, e2, tol); ok {
				contacts = append(contacts, Contact{Point: v, Normal: n.Neg()})
			}
		}
	}
	return contacts
}

func circleCircle(a, b *object.Body, ac, bc *shape.Circle, tol float64) ([]Contact, error) {
	d := a.Position.Sub(b.Position)
	gap := d.Len() - ac.Radius() - bc.Radius()
	if gap >= tol {
		return nil, nil
	}
	n, err := d.Normalize()
	if err != nil {
		return nil, err
	}
	return []Contact{{Point: b.Position.Add(n.Scale(bc.Radius())), Normal: n}}, nil
}

// circlePolygon finds the contact between circle body c and polygon body p.
// sign is 1 when the circle is A and -1 when it is B.
func circlePolygon(c, p *object.Body, cs *shape.Circle, tol, sign float64) ([]Contact, error) {
	poly := p.Shape.(*shape.Polygon)
	center := p.WorldToLocal(c.Position)

	inside, err := poly.ContainsPoint(center)
	if err != nil {
		return nil, err
	}
	closest, edgeNormal := poly.ClosestPoint(center)

	// Normal from the polygon towards the circle, in polygon-local space.
	n := edgeNormal
	if !inside {
		gap := geom.Distance(center, closest) - cs.Radius()
		if gap >= tol {
			return nil, nil
		}
		if dir, err := center.Sub(closest).Normalize(); err == nil {
			n = dir
		}
	}

	return []Contact{{
		Point:  p.LocalToWorld(closest),
		Normal: n.Rotate(p.Orientation).Scale(sign),
	}}, nil
}
