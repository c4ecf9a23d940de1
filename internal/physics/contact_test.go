package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/rigid2d/internal/geom"
)

func TestCheckVertexVertex(t *testing.T) {
	_, ok := CheckVertexVertex(geom.V(0, 0), geom.V(4, 0), 4)
	assert.False(t, ok, "distance equal to tolerance is not a contact")

	n, ok := CheckVertexVertex(geom.V(0, 0), geom.V(4-1e-9, 0), 4)
	require.True(t, ok)
	assert.Equal(t, geom.V(-1, 0), n)

	_, ok = CheckVertexVertex(geom.V(1, 1), geom.V(1, 1), 4)
	assert.False(t, ok)
}

func TestCheckVertexEdge(t *testing.T) {
	e1, e2 := geom.V(0, 0), geom.V(10, 0)

	tests := []struct {
		name   string
		vertex geom.Vector2
		want   bool
	}{
		{"within tolerance", geom.V(5, 2), true},
		{"below edge", geom.V(5, -3.9), true},
		{"too far", geom.V(5, 5), false},
		{"at tolerance", geom.V(5, 4), false},
		{"before start", geom.V(-1, 1), false},
		{"past end", geom.V(11, 1), false},
		{"at start", geom.V(0, 1), false},
		{"at end", geom.V(10, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := CheckVertexEdge(tt.vertex, e1, e2, 4)
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, geom.V(0, 1), n)
			}
		})
	}
}

func TestManifoldBoxesCornerToCorner(t *testing.T) {
	a := newBox(t, 10, 10, geom.V(0, 0))
	b := newBox(t, 10, 10, geom.V(11, 0))

	contacts, err := Manifold(a, b, 4)
	require.NoError(t, err)
	require.NotEmpty(t, contacts)
	for _, c := range contacts {
		assert.InDelta(t, -1, c.Normal.X, eps)
		assert.InDelta(t, 0, c.Normal.Y, eps)
	}
}

func TestManifoldVertexOnEdge(t *testing.T) {
	a := newBox(t, 10, 10, geom.V(0, 0))
	b := newRegular(t, 4, 5, geom.V(11, 0), 0)

	contacts, err := Manifold(a, b, 4)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.InDelta(t, 6, contacts[0].Point.X, eps)
	assert.InDelta(t, 0, contacts[0].Point.Y, eps)
	assert.InDelta(t, -1, contacts[0].Normal.X, eps)
	assert.InDelta(t, 0, contacts[0].Normal.Y, eps)

	// Swapping the bodies flips the normal.
	contacts, err = Manifold(b, a, 4)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.InDelta(t, 1, contacts[0].Normal.X, eps)
}

func TestManifoldFarApart(t *testing.T) {
	a := newBox(t, 10, 10, geom.V(0, 0))
	b := newBox(t, 10, 10, geom.V(30, 0))

	contacts, err := Manifold(a, b, 4)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestManifoldCircles(t *testing.T) {
	a := newCircle(t, 10, geom.V(190, 100))
	b := newCircle(t, 10, geom.V(210, 100))

	contacts, err := Manifold(a, b, 4)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.InDelta(t, 200, contacts[0].Point.X, eps)
	assert.InDelta(t, 100, contacts[0].Point.Y, eps)
	assert.Equal(t, geom.V(-1, 0), contacts[0].Normal)

	b.Position = geom.V(224, 100)
	contacts, err = Manifold(a, b, 4)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	b.Position = a.Position
	_, err = Manifold(a, b, 4)
	require.ErrorIs(t, err, geom.ErrZeroVector)
}

func TestManifoldCirclePolygon(t *testing.T) {
	box := newBox(t, 10, 10, geom.V(0, 0))
	c := newCircle(t, 5, geom.V(0, 12))

	contacts, err := Manifold(c, box, 4)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.InDelta(t, 0, contacts[0].Point.X, eps)
	assert.InDelta(t, 5, contacts[0].Point.Y, eps)
	assert.InDelta(t, 0, contacts[0].Normal.X, eps)
	assert.InDelta(t, 1, contacts[0].Normal.Y, eps)

	contacts, err = Manifold(box, c, 4)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.InDelta(t, -1, contacts[0].Normal.Y, eps)

	c.Position = geom.V(0, 20)
	contacts, err = Manifold(c, box, 4)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
