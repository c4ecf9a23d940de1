package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/object"
)

func TestColliderStepResolvesOverlappingCircles(t *testing.T) {
	left := newCircle(t, 10, geom.V(190.5, 100))
	right := newCircle(t, 10, geom.V(209.5, 100))
	left.LinearVelocity = geom.V(5, 0)
	right.LinearVelocity = geom.V(-5, 0)

	var reported []Collision
	c, err := NewCollider([]*object.Body{left, right}, config.Default(),
		WithLogger(zaptest.NewLogger(t)),
		WithReporter(ReporterFunc(func(col Collision) { reported = append(reported, col) })),
	)
	require.NoError(t, err)

	collisions, err := c.Step()
	require.NoError(t, err)
	require.Len(t, collisions, 1)
	assert.Equal(t, collisions, reported)
	assert.Equal(t, []Pair{NewPair(left, right)}, c.Colliding())
	require.NotNil(t, collisions[0].Impulse)

	// Pushed apart by depth * 1.05, half each.
	assert.InDelta(t, 190.5-0.525, left.Position.X, eps)
	assert.InDelta(t, 209.5+0.525, right.Position.X, eps)

	assert.InDelta(t, -5, left.LinearVelocity.X, 1e-9)
	assert.InDelta(t, 5, right.LinearVelocity.X, 1e-9)
}

func TestColliderStepResolvesTouchingCircles(t *testing.T) {
	left := newCircle(t, 10, geom.V(190, 100))
	right := newCircle(t, 10, geom.V(210, 100))
	left.LinearVelocity = geom.V(5, 0)
	right.LinearVelocity = geom.V(-5, 0)

	c, err := NewCollider([]*object.Body{left, right}, config.Default())
	require.NoError(t, err)

	collisions, err := c.Step()
	require.NoError(t, err)
	require.Len(t, collisions, 1)
	require.NotNil(t, collisions[0].Impulse)

	// Zero depth: nothing to push, only the bounce.
	assert.InDelta(t, 190, left.Position.X, eps)
	assert.InDelta(t, 210, right.Position.X, eps)
	assert.InDelta(t, -5, left.LinearVelocity.X, 1e-9)
	assert.InDelta(t, 5, right.LinearVelocity.X, 1e-9)
	assert.InDelta(t, 0, left.LinearVelocity.Y, 1e-9)
	assert.InDelta(t, 0, right.LinearVelocity.Y, 1e-9)
}

func TestColliderStepIgnoresDistantBodies(t *testing.T) {
	a := newBox(t, 10, 10, geom.V(0, 0))
	b := newBox(t, 10, 10, geom.V(100, 100))

	c, err := NewCollider([]*object.Body{a, b}, config.Default())
	require.NoError(t, err)

	collisions, err := c.Step()
	require.NoError(t, err)
	assert.Empty(t, collisions)
	assert.Empty(t, c.Colliding())
}

func TestColliderStepHighPriorityBodyStaysPut(t *testing.T) {
	wall := newBox(t, 10, 100, geom.V(0, 0))
	wall.SetHighPriority()
	box := newBox(t, 10, 10, geom.V(8, 0))
	box.LinearVelocity = geom.V(-1, 0)

	c, err := NewCollider([]*object.Body{wall, box}, config.Default())
	require.NoError(t, err)

	collisions, err := c.Step()
	require.NoError(t, err)
	require.Len(t, collisions, 1)
	assert.Equal(t, geom.V(0, 0), wall.Position)
	assert.InDelta(t, 8+2*1.05, box.Position.X, eps)
}

func TestColliderAddTracksNewBody(t *testing.T) {
	a := newCircle(t, 10, geom.V(0, 0))
	c, err := NewCollider([]*object.Body{a}, config.Default())
	require.NoError(t, err)

	b := newCircle(t, 10, geom.V(15, 0))
	require.NoError(t, c.Add(b))
	assert.Len(t, c.Bodies(), 2)

	collisions, err := c.Step()
	require.NoError(t, err)
	assert.Len(t, collisions, 1)
}

func TestColliderStepSurfacesDesync(t *testing.T) {
	a := newCircle(t, 10, geom.V(0, 0))
	b := newCircle(t, 10, geom.V(10, 0))
	c, err := NewCollider([]*object.Body{a, b}, config.Default())
	require.NoError(t, err)

	delete(c.sweep.axes[0].overlaps, NewPair(a, b))
	b.Position = geom.V(100, 0)

	_, err = c.Step()
	require.ErrorIs(t, err, ErrOverlapDesync)
}

func TestNewColliderValidatesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ContactTolerance = -1
	_, err := NewCollider(nil, cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
