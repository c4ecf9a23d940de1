package scene

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/object"
	"github.com/tomz197/rigid2d/internal/shape"
)

// Random body generation parameters.
const (
	randomHullPoints = 10
	randomHullExtent = 50 // vertices fall in [-extent, extent] on each axis
	randomMaxSpeed   = 2.0
	randomMaxSpin    = 0.02
	maxHullAttempts  = 8
)

// RandomPolygon wraps randomHullPoints integer points in a hull centered on its
// barycenter. Retries when the points happen to be collinear.
func RandomPolygon(rng *rand.Rand) (*shape.Polygon, error) {
	var err error
	for range maxHullAttempts {
		pts := make([]geom.Vector2, randomHullPoints)
		for i := range pts {
			pts[i] = geom.V(
				float64(rng.IntN(2*randomHullExtent+1)-randomHullExtent),
				float64(rng.IntN(2*randomHullExtent+1)-randomHullExtent),
			)
		}
		var p *shape.Polygon
		p, err = shape.NewPolygon(pts)
		if err == nil {
			p.Translate(p.Barycenter().Neg())
			return p, nil
		}
		if !errors.Is(err, shape.ErrCollinear) && !errors.Is(err, shape.ErrTooFewVertices) {
			return nil, err
		}
	}
	return nil, err
}

// RandomBody creates a body with a random shape placed inside world, moving
// slowly in a random direction. Roughly one in three bodies is a circle.
func RandomBody(rng *rand.Rand, world config.World) (*object.Body, error) {
	var s shape.Shape
	if rng.IntN(3) == 0 {
		c, err := shape.NewCircle(10 + rng.Float64()*20)
		if err != nil {
			return nil, err
		}
		s = c
	} else {
		p, err := RandomPolygon(rng)
		if err != nil {
			return nil, err
		}
		s = p
	}

	b, err := object.NewBody(s, 1)
	if err != nil {
		return nil, err
	}
	b.Position = geom.V(rng.Float64()*world.Width, rng.Float64()*world.Height)
	b.Orientation = rng.Float64() * 2 * math.Pi
	b.LinearVelocity = geom.V(rng.Float64()*2-1, rng.Float64()*2-1).Scale(randomMaxSpeed)
	b.AngularVelocity = (rng.Float64()*2 - 1) * randomMaxSpin
	return b, nil
}

// Random creates n random bodies inside the configured world.
func Random(rng *rand.Rand, n int, cfg config.Config) ([]*object.Body, error) {
	if n > cfg.MaxBodies {
		return nil, ErrTooManyBodies
	}
	bodies := make([]*object.Body, 0, n)
	for range n {
		b, err := RandomBody(rng, cfg.World)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}
