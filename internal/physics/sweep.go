package physics

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/logging"
	"github.com/tomz197/rigid2d/internal/object"
	"github.com/tomz197/rigid2d/internal/shape"
)

var (
	// ErrUnsupportedAxis is returned for sweep axes other than world X and Y.
	ErrUnsupportedAxis = errors.New("physics: projection onto non-orthogonal axis is not supported")
	// ErrOverlapDesync means the incremental overlap sets no longer match the endpoint order.
	ErrOverlapDesync = errors.New("physics: overlap set out of sync with endpoint order")
)

// World axes accepted by the sweep.
var (
	AxisX = geom.V(1, 0)
	AxisY = geom.V(0, 1)
)

// Pair is an unordered pair of bodies, stored with A's ID ordered before B's.
type Pair struct {
	A, B *object.Body
}

// NewPair returns the canonical pair for a and b.
func NewPair(a, b *object.Body) Pair {
	if bytes.Compare(b.ID[:], a.ID[:]) < 0 {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

func comparePairs(p, q Pair) int {
	if c := bytes.Compare(p.A.ID[:], q.A.ID[:]); c != 0 {
		return c
	}
	return bytes.Compare(p.B.ID[:], q.B.ID[:])
}

// Endpoint is one end of a body's bounding interval on a sweep axis.
type Endpoint struct {
	owner int
	IsMax bool
	Value float64
}

type sweepAxis struct {
	dir       geom.Vector2
	endpoints []Endpoint
	overlaps  map[Pair]struct{}
}

// SweepAndPrune is an incremental broad-phase. Each axis keeps its endpoints
// nearly sorted between ticks; every swap made while re-sorting is an
// interval start or end event that updates that axis' overlap set.
//
// Update must be called every tick. Skipping ticks is correct but makes the
// insertion sort do more swaps.
type SweepAndPrune struct {
	bodies []*object.Body
	rects  []shape.Rect // cached per body, refreshed by UpdateValues
	axes   []*sweepAxis

	padding shape.Padding
	strict  bool
	logger  *zap.Logger

	swaps int // swaps made by the last BroadPairs call
}

// SweepOption configures a SweepAndPrune.
type SweepOption func(*SweepAndPrune)

// WithSweepLogger sets the logger used for bookkeeping diagnostics.
func WithSweepLogger(l *zap.Logger) SweepOption {
	return func(s *SweepAndPrune) {
		s.logger = l
	}
}

// WithSweepAxes replaces the default X and Y axes.
// Only the world X and Y axes are supported.
func WithSweepAxes(axes ...geom.Vector2) SweepOption {
	return func(s *SweepAndPrune) {
		s.axes = s.axes[:0]
		for _, a := range axes {
			s.axes = append(s.axes, &sweepAxis{dir: a})
		}
	}
}

// NewSweepAndPrune creates a broad-phase over bodies and computes the initial overlaps.
func NewSweepAndPrune(bodies []*object.Body, cfg config.Config, opts ...SweepOption) (*SweepAndPrune, error) {
	s := &SweepAndPrune{
		bodies:  slices.Clone(bodies),
		axes:    []*sweepAxis{{dir: AxisX}, {dir: AxisY}},
		padding: cfg.Padding,
		strict:  cfg.StrictOverlaps,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, a := range s.axes {
		if !a.dir.Equal(AxisX) && !a.dir.Equal(AxisY) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedAxis, a.dir)
		}
	}
	if err := s.Rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// Bodies returns the tracked bodies.
func (s *SweepAndPrune) Bodies() []*object.Body {
	return s.bodies
}

// Add starts tracking b. The sweep is rebuilt from scratch.
func (s *SweepAndPrune) Add(b *object.Body) error {
	s.bodies = append(s.bodies, b)
	return s.Rebuild()
}

// Rebuild discards all incremental state and recomputes overlaps from scratch.
// Endpoints start grouped per body, which no body pairs interleave in, so the
// empty overlap sets are consistent before sorting.
func (s *SweepAndPrune) Rebuild() error {
	for _, a := range s.axes {
		a.endpoints = a.endpoints[:0]
		for i := range s.bodies {
			a.endpoints = append(a.endpoints, Endpoint{owner: i}, Endpoint{owner: i, IsMax: true})
		}
		a.overlaps = make(map[Pair]struct{})
	}
	s.UpdateValues()
	_, err := s.BroadPairs()
	s.logger.Debug("sweep rebuilt", zap.Int("bodies", len(s.bodies)), zap.Int("swaps", s.swaps))
	return err
}

// UpdateValues refreshes every endpoint from its body's current bounding rectangle.
func (s *SweepAndPrune) UpdateValues() {
	if cap(s.rects) < len(s.bodies) {
		s.rects = make([]shape.Rect, len(s.bodies))
	}
	s.rects = s.rects[:len(s.bodies)]
	for i, b := range s.bodies {
		s.rects[i] = b.BoundingRect(s.padding)
	}

	for _, a := range s.axes {
		for i := range a.endpoints {
			e := &a.endpoints[i]
			r := s.rects[e.owner]
			switch {
			case a.dir.Equal(AxisX) && e.IsMax:
				e.Value = r.MaxX
			case a.dir.Equal(AxisX):
				e.Value = r.MinX
			case e.IsMax:
				e.Value = r.MaxY
			default:
				e.Value = r.MinY
			}
		}
	}
}

// Update refreshes endpoint values and returns the current broad-phase pairs.
func (s *SweepAndPrune) Update() ([]Pair, error) {
	s.UpdateValues()
	return s.BroadPairs()
}

// BroadPairs re-sorts every axis and returns the pairs overlapping on all of them,
// ordered by body ID.
func (s *SweepAndPrune) BroadPairs() ([]Pair, error) {
	s.swaps = 0
	var errs []error
	for _, a := range s.axes {
		if err := s.detectOverlaps(a); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if len(s.axes) == 0 {
		return nil, nil
	}
	pairs := make([]Pair, 0, len(s.axes[0].overlaps))
	for p := range s.axes[0].overlaps {
		inAll := true
		for _, a := range s.axes[1:] {
			if _, ok := a.overlaps[p]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			pairs = append(pairs, p)
		}
	}
	slices.SortFunc(pairs, comparePairs)
	return pairs, nil
}

// AxisOverlaps returns the overlap set of axis i, ordered by body ID.
func (s *SweepAndPrune) AxisOverlaps(i int) []Pair {
	out := make([]Pair, 0, len(s.axes[i].overlaps))
	for p := range s.axes[i].overlaps {
		out = append(out, p)
	}
	slices.SortFunc(out, comparePairs)
	return out
}

// Swaps returns the number of endpoint swaps made by the last BroadPairs call.
func (s *SweepAndPrune) Swaps() int {
	return s.swaps
}

// before reports whether e sorts strictly before o. On equal values min
// endpoints come first, so touching intervals count as overlapping the same
// way Rect.Overlaps does.
func (e Endpoint) before(o Endpoint) bool {
	if e.Value != o.Value {
		return e.Value < o.Value
	}
	return !e.IsMax && o.IsMax
}

// detectOverlaps insertion-sorts the axis endpoints. A max endpoint moving
// right past another body's min starts an overlap; a max moving left past a
// min ends one. The sort always completes so the endpoint order stays valid
// even when a desync is reported.
func (s *SweepAndPrune) detectOverlaps(a *sweepAxis) error {
	var desync error
	eps := a.endpoints
	for i := 1; i < len(eps); i++ {
		for j := i; j > 0 && eps[j].before(eps[j-1]); j-- {
			left, right := eps[j-1], eps[j]
			if left.IsMax != right.IsMax && left.owner != right.owner {
				p := NewPair(s.bodies[left.owner], s.bodies[right.owner])
				if left.IsMax {
					a.overlaps[p] = struct{}{}
				} else if _, ok := a.overlaps[p]; ok {
					delete(a.overlaps, p)
				} else if err := s.desync(a, p); err != nil && desync == nil {
					desync = err
				}
			}
			eps[j-1], eps[j] = right, left
			s.swaps++
		}
	}
	return desync
}

func (s *SweepAndPrune) desync(a *sweepAxis, p Pair) error {
	fields := []zap.Field{
		zap.Stringer("axis", a.dir),
		logging.Body("a", p.A.ID),
		logging.Body("b", p.B.ID),
	}
	if !s.strict {
		s.logger.Warn("removing pair missing from overlap set", fields...)
		return nil
	}
	s.logger.Error("removing pair missing from overlap set", fields...)
	return fmt.Errorf("%w: axis %v, bodies %s and %s", ErrOverlapDesync, a.dir, p.A.ID, p.B.ID)
}
