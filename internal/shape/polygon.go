package shape

import (
	"math"
	"slices"

	"github.com/tomz197/rigid2d/internal/geom"
)

// Polygon is a convex polygon. Vertices run counter-clockwise starting from the
// topmost (maximum Y) vertex.
type Polygon struct {
	vertices []geom.Vector2

	area           float64
	centroid       geom.Vector2
	barycenter     geom.Vector2
	boundingRadius float64
	axes           []geom.Vector2
	triangles      []*Polygon
}

var _ Shape = (*Polygon)(nil)

// NewPolygon builds the convex hull of vertices. The input may be in any order
// and may contain interior or duplicate points.
func NewPolygon(vertices []geom.Vector2) (*Polygon, error) {
	hull, err := convexHull(vertices)
	if err != nil {
		return nil, err
	}
	p := &Polygon{vertices: hull}
	p.derive()
	return p, nil
}

// NewRect is a convenience for an axis-aligned w×h box centered on the origin.
func NewRect(w, h float64) (*Polygon, error) {
	hw, hh := w/2, h/2
	return NewPolygon([]geom.Vector2{
		{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh},
	})
}

// NewRegular creates a regular n-gon with the given circumradius.
func NewRegular(n int, radius float64) (*Polygon, error) {
	if n < 3 {
		return nil, ErrTooFewVertices
	}
	vs := make([]geom.Vector2, n)
	for i := range vs {
		vs[i] = geom.V(radius, 0).Rotate(2 * math.Pi * float64(i) / float64(n))
	}
	return NewPolygon(vs)
}

// convexHull walks the hull gift-wrapping style: from the current vertex it picks
// the candidate that leaves every other point on its left (non-negative wedge
// product), preferring the farthest candidate among collinear ones.
func convexHull(input []geom.Vector2) ([]geom.Vector2, error) {
	points := make([]geom.Vector2, 0, len(input))
	for _, v := range input {
		if !slices.ContainsFunc(points, v.Equal) {
			points = append(points, v)
		}
	}
	if len(points) < 3 {
		return nil, ErrTooFewVertices
	}
	if collinear(points) {
		return nil, ErrCollinear
	}

	// Topmost vertex, ties broken by the larger X so the start is always a corner.
	start := 0
	for i, v := range points {
		top := points[start]
		if v.Greater(top) || (v.Y == top.Y && v.X > top.X) {
			start = i
		}
	}

	hull := []geom.Vector2{points[start]}
	cur := start
	for {
		next := -1
		for i, p := range points {
			if i == cur {
				continue
			}
			if next < 0 {
				next = i
				continue
			}
			origin := points[cur]
			c := points[next].Sub(origin).Cross(p.Sub(origin))
			if c < 0 || (c == 0 && geom.DistanceSquared(origin, p) > geom.DistanceSquared(origin, points[next])) {
				next = i
			}
		}
		if next == start {
			break
		}
		hull = append(hull, points[next])
		cur = next
		if len(hull) > len(points) {
			// Only reachable through floating point inconsistency on near-collinear input.
			return nil, ErrCollinear
		}
	}
	if len(hull) < 3 {
		return nil, ErrCollinear
	}
	return hull, nil
}

func collinear(points []geom.Vector2) bool {
	a, b := points[0], points[1]
	for _, p := range points[2:] {
		if b.Sub(a).Cross(p.Sub(a)) != 0 {
			return false
		}
	}
	return true
}

// fromHull wraps vertices that are already a counter-clockwise convex hull.
func fromHull(vertices []geom.Vector2) *Polygon {
	p := &Polygon{vertices: vertices}
	p.derive()
	return p
}

func (p *Polygon) derive() {
	p.area = p.calcArea()
	p.centroid = p.calcCentroid()
	p.triangles = p.triangulate()
	p.barycenter = p.calcBarycenter()
	p.boundingRadius = p.calcBoundingRadius()
	p.axes = p.calcAxes()
}

// triangulate fans out from vertex 0. A triangle is its own triangulation.
func (p *Polygon) triangulate() []*Polygon {
	n := len(p.vertices)
	if n <= 3 {
		return []*Polygon{p}
	}
	tris := make([]*Polygon, 0, n-2)
	for i := 0; i < n-2; i++ {
		tris = append(tris, fromHull([]geom.Vector2{p.vertices[0], p.vertices[i+1], p.vertices[i+2]}))
	}
	return tris
}

// calcArea is the shoelace sum, positive for counter-clockwise winding.
func (p *Polygon) calcArea() float64 {
	var sum float64
	n := len(p.vertices)
	for i := range n {
		sum += p.vertices[i].Cross(p.vertices[(i+1)%n])
	}
	return sum / 2
}

func (p *Polygon) calcCentroid() geom.Vector2 {
	var sum geom.Vector2
	for _, v := range p.vertices {
		sum = sum.Add(v)
	}
	return sum.Div(float64(len(p.vertices)))
}

// calcBarycenter weights each fan triangle's barycenter by its area.
func (p *Polygon) calcBarycenter() geom.Vector2 {
	if len(p.vertices) == 3 {
		return p.centroid
	}
	var sum geom.Vector2
	for _, t := range p.triangles {
		sum = sum.Add(t.barycenter.Scale(t.area))
	}
	return sum.Div(p.area)
}

func (p *Polygon) calcBoundingRadius() float64 {
	var r float64
	for _, v := range p.vertices {
		r = math.Max(r, geom.Distance(v, p.barycenter))
	}
	return r
}

// calcAxes returns one outward unit normal per edge.
func (p *Polygon) calcAxes() []geom.Vector2 {
	n := len(p.vertices)
	axes := make([]geom.Vector2, n)
	for i := range n {
		edge := p.vertices[(i+1)%n].Sub(p.vertices[i])
		u := edge.Div(edge.Len())
		axes[i] = geom.Vector2{X: u.Y, Y: -u.X}
	}
	return axes
}

func (p *Polygon) sealed() {}

func (p *Polygon) Kind() Kind { return KindPolygon }

// Order returns the vertex count.
func (p *Polygon) Order() int { return len(p.vertices) }

func (p *Polygon) Area() float64 { return p.area }

// Centroid is the plain vertex average.
func (p *Polygon) Centroid() geom.Vector2 { return p.centroid }

// Barycenter is the area-weighted centroid.
func (p *Polygon) Barycenter() geom.Vector2 { return p.barycenter }

// BoundingRadius is the largest vertex distance from the barycenter.
func (p *Polygon) BoundingRadius() float64 { return p.boundingRadius }

// Vertices returns a copy of the local hull vertices.
func (p *Polygon) Vertices() []geom.Vector2 {
	return slices.Clone(p.vertices)
}

// Triangles returns the fan triangulation.
func (p *Polygon) Triangles() []*Polygon {
	return p.triangles
}

// Axes returns the outward edge normals.
func (p *Polygon) Axes() []geom.Vector2 {
	return p.axes
}

// TransformedVertices places the vertices through the given chain of spaces.
func (p *Polygon) TransformedVertices(spaces ...geom.Space) []geom.Vector2 {
	out := make([]geom.Vector2, len(p.vertices))
	for i, v := range p.vertices {
		out[i] = geom.Transform(v, spaces...)
	}
	return out
}

// BoundingRect transforms every vertex and takes per-axis extremes, padded.
func (p *Polygon) BoundingRect(sp geom.Space, pad Padding) Rect {
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, v := range p.vertices {
		w := sp.Transform(v)
		r.MinX = math.Min(r.MinX, w.X)
		r.MinY = math.Min(r.MinY, w.Y)
		r.MaxX = math.Max(r.MaxX, w.X)
		r.MaxY = math.Max(r.MaxY, w.Y)
	}
	return pad.apply(r)
}

// BoundingRectRadius is a rotation-independent box from the bounding radius.
// Looser than BoundingRect but needs no per-vertex transform.
func (p *Polygon) BoundingRectRadius(sp geom.Space, pad Padding) Rect {
	c := sp.Transform(p.barycenter)
	return pad.apply(Rect{
		MinX: c.X - p.boundingRadius,
		MinY: c.Y - p.boundingRadius,
		MaxX: c.X + p.boundingRadius,
		MaxY: c.Y + p.boundingRadius,
	})
}

// Project returns the min and max of every vertex dotted with the normalized axis.
func (p *Polygon) Project(axis geom.Vector2) (Interval, error) {
	u, err := axis.Normalize()
	if err != nil {
		return Interval{}, err
	}
	first := u.Dot(p.vertices[0])
	iv := Interval{Min: first, Max: first}
	for _, v := range p.vertices[1:] {
		d := u.Dot(v)
		iv.Min = math.Min(iv.Min, d)
		iv.Max = math.Max(iv.Max, d)
	}
	return iv, nil
}

// ContainsPoint uses barycentric coordinates for triangles and
// tests each fan triangle otherwise.
func (p *Polygon) ContainsPoint(pt geom.Vector2) (bool, error) {
	if len(p.vertices) == 3 {
		return triangleContains(p.vertices[0], p.vertices[1], p.vertices[2], pt)
	}
	for _, t := range p.triangles {
		ok, err := t.ContainsPoint(pt)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func triangleContains(a, b, c, pt geom.Vector2) (bool, error) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := pt.Sub(a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d02 := v0.Dot(v2)
	d12 := v1.Dot(v2)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return false, ErrDegenerateTriangle
	}
	u := (d11*d02 - d01*d12) / denom
	v := (d00*d12 - d01*d02) / denom
	return u >= 0 && v >= 0 && u+v <= 1, nil
}

// Normal returns the outward normal of the edge closest to pt.
func (p *Polygon) Normal(pt geom.Vector2) (geom.Vector2, error) {
	n := len(p.vertices)
	best := math.Inf(1)
	var normal geom.Vector2
	for i := range n {
		d := segmentDistanceSq(pt, p.vertices[i], p.vertices[(i+1)%n])
		if d < best {
			best = d
			normal = p.axes[i]
		}
	}
	return normal, nil
}

// ClosestPoint returns the point on the polygon boundary nearest to pt, and the
// outward normal of the edge it lies on.
func (p *Polygon) ClosestPoint(pt geom.Vector2) (geom.Vector2, geom.Vector2) {
	n := len(p.vertices)
	best := math.Inf(1)
	var closest, normal geom.Vector2
	for i := range n {
		q := closestOnSegment(pt, p.vertices[i], p.vertices[(i+1)%n])
		if d := geom.DistanceSquared(pt, q); d < best {
			best = d
			closest = q
			normal = p.axes[i]
		}
	}
	return closest, normal
}

// Translate shifts the local geometry by d and re-derives cached values.
func (p *Polygon) Translate(d geom.Vector2) {
	for i := range p.vertices {
		p.vertices[i] = p.vertices[i].Add(d)
	}
	p.derive()
}

func closestOnSegment(pt, a, b geom.Vector2) geom.Vector2 {
	ab := b.Sub(a)
	t := pt.Sub(a).Dot(ab) / ab.LenSq()
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t))
}

func segmentDistanceSq(pt, a, b geom.Vector2) float64 {
	return geom.DistanceSquared(pt, closestOnSegment(pt, a, b))
}
