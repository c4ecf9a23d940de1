// Package loop drives a physics world: it ticks bodies on a fixed schedule,
// publishes snapshots for renderers and runs the terminal viewer.
package loop

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/logging"
	"github.com/tomz197/rigid2d/internal/object"
	"github.com/tomz197/rigid2d/internal/physics"
	"github.com/tomz197/rigid2d/internal/scene"
)

// Command is a request from a viewer, applied between ticks.
type Command int

const (
	CommandTogglePause Command = iota
	CommandStep                // advance a single tick while paused
	CommandSpawn               // add a random body
)

// Simulation owns a set of bodies and their collider.
// Run drives it from one goroutine; other goroutines only Submit commands and
// read snapshots.
type Simulation struct {
	cfg      config.Config
	collider *physics.Collider
	logger   *zap.Logger
	rng      *rand.Rand
	commands chan Command

	tick     uint64
	paused   bool
	contacts []physics.Contact

	snapshot atomic.Pointer[Snapshot]
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the simulation logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		s.logger = l
	}
}

// WithRand sets the source used for spawning bodies.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) {
		s.rng = rng
	}
}

// NewSimulation creates a running simulation over bodies.
func NewSimulation(bodies []*object.Body, cfg config.Config, opts ...Option) (*Simulation, error) {
	if len(bodies) > cfg.MaxBodies {
		return nil, fmt.Errorf("%w: %d > %d", scene.ErrTooManyBodies, len(bodies), cfg.MaxBodies)
	}
	s := &Simulation{
		cfg:      cfg,
		logger:   zap.NewNop(),
		commands: make(chan Command, commandBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	collider, err := physics.NewCollider(bodies, cfg,
		physics.WithLogger(s.logger.Named("collider")),
		physics.WithReporter(physics.ReporterFunc(s.collect)),
	)
	if err != nil {
		return nil, err
	}
	s.collider = collider
	s.publish()
	return s, nil
}

func (s *Simulation) collect(c physics.Collision) {
	s.contacts = append(s.contacts, c.Contacts...)
}

// Bodies returns the simulated bodies. Only the goroutine driving the
// simulation may touch them.
func (s *Simulation) Bodies() []*object.Body {
	return s.collider.Bodies()
}

// Paused reports whether Run is currently skipping ticks. Other goroutines
// read Snapshot().Paused instead.
func (s *Simulation) Paused() bool {
	return s.paused
}

// Tick advances the world by one step: every body is integrated, then
// collisions are detected and resolved, then a snapshot is published.
func (s *Simulation) Tick() error {
	s.contacts = s.contacts[:0]
	for _, b := range s.collider.Bodies() {
		Integrate(b, s.cfg.World)
	}
	if _, err := s.collider.Step(); err != nil {
		return fmt.Errorf("tick %d: %w", s.tick, err)
	}
	s.tick++
	s.publish()
	return nil
}

// Spawn adds a random body to the world.
func (s *Simulation) Spawn() error {
	if len(s.collider.Bodies()) >= s.cfg.MaxBodies {
		return scene.ErrTooManyBodies
	}
	b, err := s.place()
	if err != nil {
		return err
	}
	if err := s.collider.Add(b); err != nil {
		return err
	}
	s.logger.Debug("body spawned",
		logging.Body("id", b.ID),
		zap.Stringer("kind", b.Shape.Kind()),
		zap.Int("bodies", len(s.collider.Bodies())),
	)
	s.publish()
	return nil
}

// place draws random bodies until one lands clear of the others. In a crowded
// world the last candidate is used anyway and the collider pushes it free.
func (s *Simulation) place() (*object.Body, error) {
	bodies := s.collider.Bodies()
	maxRadius := 0.0
	for _, b := range bodies {
		maxRadius = max(maxRadius, b.Shape.BoundingRadius())
	}

	var b *object.Body
	for range spawnAttempts {
		var err error
		if b, err = scene.RandomBody(s.rng, s.cfg.World); err != nil {
			return nil, err
		}
		grid := physics.NewGrid(s.cfg.World, maxRadius+b.Shape.BoundingRadius())
		for _, o := range bodies {
			grid.Insert(o)
		}
		if !grid.Crowded(b) {
			return b, nil
		}
	}
	s.logger.Debug("no free spot for spawned body", zap.Int("attempts", spawnAttempts))
	return b, nil
}

// Submit queues a command for the next tick. It never blocks; commands
// beyond the buffer are dropped.
func (s *Simulation) Submit(cmd Command) bool {
	select {
	case s.commands <- cmd:
		return true
	default:
		return false
	}
}

// Snapshot returns the latest published world state.
func (s *Simulation) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Run ticks the simulation at TickRate until ctx is cancelled or a tick fails.
func (s *Simulation) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickTime)
	defer ticker.Stop()

	s.logger.Info("simulation started", zap.Int("bodies", len(s.collider.Bodies())))
	defer func() {
		s.logger.Info("simulation stopped", zap.Uint64("ticks", s.tick))
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		step := s.processCommands()
		if s.paused && !step {
			continue
		}
		if err := s.Tick(); err != nil {
			s.logger.Error("tick failed", zap.Error(err))
			return err
		}
	}
}

// processCommands applies queued commands and reports whether a single step
// was requested.
func (s *Simulation) processCommands() bool {
	step := false
	for {
		select {
		case cmd := <-s.commands:
			switch cmd {
			case CommandTogglePause:
				s.paused = !s.paused
				s.publish()
			case CommandStep:
				step = true
			case CommandSpawn:
				if err := s.Spawn(); err != nil {
					s.logger.Warn("spawn failed", zap.Error(err))
				}
			}
		default:
			return step
		}
	}
}

func (s *Simulation) publish() {
	colliding := make(map[*object.Body]bool)
	for _, p := range s.collider.Colliding() {
		colliding[p.A] = true
		colliding[p.B] = true
	}

	bodies := s.collider.Bodies()
	snap := &Snapshot{
		Tick:     s.tick,
		Paused:   s.paused,
		World:    s.cfg.World,
		Bodies:   make([]BodyState, len(bodies)),
		Contacts: slices.Clone(s.contacts),
	}
	for i, b := range bodies {
		snap.Bodies[i] = newBodyState(b, s.cfg.Padding, colliding[b])
	}
	s.snapshot.Store(snap)
}
