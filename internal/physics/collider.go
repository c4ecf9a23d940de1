// Package physics implements collision detection and response: an incremental
// sweep-and-prune broad-phase, a separating axis narrow-phase with contact
// generation, and single-point impulse resolution.
package physics

import (
	"go.uber.org/zap"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/logging"
	"github.com/tomz197/rigid2d/internal/object"
)

// Collision describes one resolved pair for a tick.
type Collision struct {
	Pair     Pair
	Push     Push
	Contacts []Contact
	// Impulse is nil when there was no contact or the bodies were already separating.
	Impulse *Impulse
}

// ContactReporter receives every collision after it has been applied.
// Debug drawing subscribes here instead of being called from inside the solver.
type ContactReporter interface {
	ReportCollision(c Collision)
}

// ReporterFunc adapts a function to ContactReporter.
type ReporterFunc func(Collision)

func (f ReporterFunc) ReportCollision(c Collision) { f(c) }

// Collider runs the collision pipeline for one set of bodies.
// It is not safe for concurrent use; one goroutine owns a Collider and its bodies.
type Collider struct {
	cfg       config.Config
	sweep     *SweepAndPrune
	logger    *zap.Logger
	reporters []ContactReporter
	colliding []Pair
}

// Option configures a Collider.
type Option func(*Collider)

// WithLogger sets the logger for the collider and its broad-phase.
func WithLogger(l *zap.Logger) Option {
	return func(c *Collider) {
		c.logger = l
	}
}

// WithReporter subscribes r to collision reports.
func WithReporter(r ContactReporter) Option {
	return func(c *Collider) {
		c.reporters = append(c.reporters, r)
	}
}

// NewCollider creates a collider over bodies using the tuning in cfg.
func NewCollider(bodies []*object.Body, cfg config.Config, opts ...Option) (*Collider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Collider{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	sweep, err := NewSweepAndPrune(bodies, cfg, WithSweepLogger(c.logger.Named("sweep")))
	if err != nil {
		return nil, err
	}
	c.sweep = sweep
	return c, nil
}

// Add starts tracking another body.
func (c *Collider) Add(b *object.Body) error {
	return c.sweep.Add(b)
}

// Bodies returns the tracked bodies.
func (c *Collider) Bodies() []*object.Body {
	return c.sweep.Bodies()
}

// Colliding returns the pairs that collided during the last Step.
func (c *Collider) Colliding() []Pair {
	return c.colliding
}

// Step runs broad-phase, narrow-phase and resolution for the current body state.
// Call it once per tick after the bodies have been moved.
//
// A pair whose geometry is degenerate is logged and skipped. An overlap
// bookkeeping failure aborts the tick with ErrOverlapDesync when strict
// overlaps are configured.
func (c *Collider) Step() ([]Collision, error) {
	pairs, err := c.sweep.Update()
	if err != nil {
		return nil, err
	}

	c.colliding = c.colliding[:0]
	collisions := make([]Collision, 0, len(pairs))
	for _, p := range pairs {
		col, ok, err := c.resolve(p)
		if err != nil {
			c.logger.Warn("skipping degenerate pair",
				logging.Body("a", p.A.ID),
				logging.Body("b", p.B.ID),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			continue
		}
		c.colliding = append(c.colliding, p)
		collisions = append(collisions, col)
		for _, r := range c.reporters {
			r.ReportCollision(col)
		}
	}
	return collisions, nil
}

// resolve detects and then applies the response for one candidate pair.
func (c *Collider) resolve(p Pair) (Collision, bool, error) {
	a, b := p.A, p.B

	push, ok, err := MinimumPushVector(a, b, c.cfg.PushScale)
	if err != nil || !ok {
		return Collision{}, false, err
	}
	ApplyPush(a, b, push)

	contacts, err := Manifold(a, b, c.cfg.ContactTolerance)
	if err != nil {
		return Collision{}, false, err
	}

	col := Collision{Pair: p, Push: push, Contacts: contacts}
	if len(contacts) > 0 {
		if imp, ok := ComputeImpulse(a, b, contacts[0], c.cfg.Restitution); ok {
			ApplyImpulse(a, b, imp)
			col.Impulse = &imp
		}
	}
	return col, true, nil
}
