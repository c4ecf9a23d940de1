package physics

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/object"
	"github.com/tomz197/rigid2d/internal/shape"
)

// bruteForcePairs is the O(n²) reference for the broad-phase.
func bruteForcePairs(bodies []*object.Body, pad shape.Padding) []Pair {
	pairs := []Pair{}
	for i := range bodies {
		ri := bodies[i].BoundingRect(pad)
		for j := i + 1; j < len(bodies); j++ {
			rj := bodies[j].BoundingRect(pad)
			if ri.Overlaps(rj) {
				pairs = append(pairs, NewPair(bodies[i], bodies[j]))
			}
		}
	}
	slices.SortFunc(pairs, comparePairs)
	return pairs
}

func randomBodies(t *testing.T, rng *rand.Rand, n int) []*object.Body {
	bodies := make([]*object.Body, n)
	for i := range bodies {
		pos := geom.V(rng.Float64()*500, rng.Float64()*500)
		if i%2 == 0 {
			bodies[i] = newCircle(t, 5+rng.Float64()*25, pos)
		} else {
			bodies[i] = newRegular(t, 3+rng.IntN(5), 5+rng.Float64()*25, pos, rng.Float64()*6)
		}
	}
	return bodies
}

func TestSweepMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	cfg := config.Default()
	bodies := randomBodies(t, rng, 60)

	s, err := NewSweepAndPrune(bodies, cfg)
	require.NoError(t, err)

	for step := range 150 {
		for _, b := range bodies {
			b.Position = b.Position.Add(geom.V(rng.Float64()*6-3, rng.Float64()*6-3))
			b.Orientation += rng.Float64()*0.2 - 0.1
		}
		got, err := s.Update()
		require.NoError(t, err)
		require.Equal(t, bruteForcePairs(bodies, cfg.Padding), got, "step %d", step)
	}
}

func TestSweepIncrementalMatchesRebuild(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	cfg := config.Default()
	bodies := randomBodies(t, rng, 40)

	s, err := NewSweepAndPrune(bodies, cfg)
	require.NoError(t, err)

	for range 100 {
		for _, b := range bodies {
			b.Position = b.Position.Add(geom.V(rng.Float64()*4-2, rng.Float64()*4-2))
		}
		_, err := s.Update()
		require.NoError(t, err)
	}

	fresh, err := NewSweepAndPrune(bodies, cfg)
	require.NoError(t, err)
	for axis := range 2 {
		assert.Equal(t, fresh.AxisOverlaps(axis), s.AxisOverlaps(axis), "axis %d", axis)
	}

	incremental, err := s.BroadPairs()
	require.NoError(t, err)
	rebuilt, err := fresh.BroadPairs()
	require.NoError(t, err)
	assert.Equal(t, rebuilt, incremental)

	require.NoError(t, s.Rebuild())
	assert.Equal(t, fresh.AxisOverlaps(0), s.AxisOverlaps(0))
}

func TestSweepTouchingCountsAsOverlap(t *testing.T) {
	cfg := config.Default()
	a := newCircle(t, 10, geom.V(100, 0))
	b := newCircle(t, 10, geom.V(115, 0))
	s, err := NewSweepAndPrune([]*object.Body{a, b}, cfg)
	require.NoError(t, err)

	pairs, err := s.Update()
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	// Overlapping, then exactly touching: the incremental answer must not
	// depend on how the bodies got there.
	b.Position = geom.V(120, 0)
	incremental, err := s.Update()
	require.NoError(t, err)

	fresh, err := NewSweepAndPrune([]*object.Body{a, b}, cfg)
	require.NoError(t, err)
	rebuilt, err := fresh.BroadPairs()
	require.NoError(t, err)

	assert.Equal(t, []Pair{NewPair(a, b)}, rebuilt)
	assert.Equal(t, rebuilt, incremental)

	// Apart, then touching from the other side.
	b.Position = geom.V(121, 0)
	pairs, err = s.Update()
	require.NoError(t, err)
	assert.Empty(t, pairs)

	b.Position = geom.V(120, 0)
	pairs, err = s.Update()
	require.NoError(t, err)
	assert.Equal(t, rebuilt, pairs)
}

func TestSweepMatchesBruteForceWithTies(t *testing.T) {
	// Integer radii and positions make touching rectangles common.
	rng := rand.New(rand.NewPCG(5, 9))
	cfg := config.Default()
	bodies := make([]*object.Body, 30)
	for i := range bodies {
		pos := geom.V(float64(rng.IntN(20)*5), float64(rng.IntN(20)*5))
		bodies[i] = newCircle(t, float64(5+rng.IntN(3)*5), pos)
	}

	s, err := NewSweepAndPrune(bodies, cfg)
	require.NoError(t, err)

	for step := range 200 {
		for _, b := range bodies {
			b.Position = b.Position.Add(geom.V(float64(rng.IntN(3)-1)*5, float64(rng.IntN(3)-1)*5))
		}
		got, err := s.Update()
		require.NoError(t, err)
		require.Equal(t, bruteForcePairs(bodies, cfg.Padding), got, "step %d", step)
	}

	fresh, err := NewSweepAndPrune(bodies, cfg)
	require.NoError(t, err)
	for axis := range 2 {
		assert.Equal(t, fresh.AxisOverlaps(axis), s.AxisOverlaps(axis), "axis %d", axis)
	}
}

func TestSweepNoMovementNoSwaps(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	s, err := NewSweepAndPrune(randomBodies(t, rng, 20), config.Default())
	require.NoError(t, err)

	_, err = s.Update()
	require.NoError(t, err)
	assert.Zero(t, s.Swaps())
}

func TestSweepAdd(t *testing.T) {
	a := newCircle(t, 10, geom.V(0, 0))
	s, err := NewSweepAndPrune([]*object.Body{a}, config.Default())
	require.NoError(t, err)

	pairs, err := s.Update()
	require.NoError(t, err)
	assert.Empty(t, pairs)

	b := newCircle(t, 10, geom.V(5, 5))
	require.NoError(t, s.Add(b))
	pairs, err = s.Update()
	require.NoError(t, err)
	assert.Equal(t, []Pair{NewPair(a, b)}, pairs)
	assert.Len(t, s.Bodies(), 2)
}

func TestSweepRequiresBothAxes(t *testing.T) {
	// Overlapping on X only.
	a := newCircle(t, 10, geom.V(0, 0))
	b := newCircle(t, 10, geom.V(5, 100))
	s, err := NewSweepAndPrune([]*object.Body{a, b}, config.Default())
	require.NoError(t, err)

	pairs, err := s.Update()
	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.Len(t, s.AxisOverlaps(0), 1)
	assert.Empty(t, s.AxisOverlaps(1))
}

func TestSweepRejectsNonOrthogonalAxis(t *testing.T) {
	_, err := NewSweepAndPrune(nil, config.Default(), WithSweepAxes(AxisX, geom.V(1, 1)))
	require.ErrorIs(t, err, ErrUnsupportedAxis)

	s, err := NewSweepAndPrune(nil, config.Default(), WithSweepAxes(AxisY))
	require.NoError(t, err)
	assert.Len(t, s.axes, 1)
}

func desyncedSweep(t *testing.T, cfg config.Config) (*SweepAndPrune, *object.Body) {
	a := newCircle(t, 10, geom.V(0, 0))
	b := newCircle(t, 10, geom.V(10, 0))
	s, err := NewSweepAndPrune([]*object.Body{a, b}, cfg)
	require.NoError(t, err)
	require.Len(t, s.AxisOverlaps(0), 1)

	delete(s.axes[0].overlaps, NewPair(a, b))
	b.Position = geom.V(100, 0)
	return s, b
}

func TestSweepDesyncIsFatalWhenStrict(t *testing.T) {
	s, _ := desyncedSweep(t, config.Default())
	_, err := s.Update()
	require.ErrorIs(t, err, ErrOverlapDesync)
}

func TestSweepDesyncToleratedWhenLenient(t *testing.T) {
	cfg := config.Default()
	cfg.StrictOverlaps = false
	s, _ := desyncedSweep(t, cfg)
	pairs, err := s.Update()
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestNewPairIsUnordered(t *testing.T) {
	a := newCircle(t, 1, geom.V(0, 0))
	b := newCircle(t, 1, geom.V(0, 0))
	assert.Equal(t, NewPair(a, b), NewPair(b, a))
}
