package physics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/object"
	"github.com/tomz197/rigid2d/internal/shape"
)

const eps = 1e-9

func newCircle(t testing.TB, r float64, pos geom.Vector2) *object.Body {
	t.Helper()
	c, err := shape.NewCircle(r)
	require.NoError(t, err)
	b, err := object.NewBody(c, 1)
	require.NoError(t, err)
	b.Position = pos
	return b
}

func newBox(t testing.TB, w, h float64, pos geom.Vector2) *object.Body {
	t.Helper()
	p, err := shape.NewRect(w, h)
	require.NoError(t, err)
	b, err := object.NewBody(p, 1)
	require.NoError(t, err)
	b.Position = pos
	return b
}

func newRegular(t testing.TB, n int, r float64, pos geom.Vector2, angle float64) *object.Body {
	t.Helper()
	p, err := shape.NewRegular(n, r)
	require.NoError(t, err)
	b, err := object.NewBody(p, 1)
	require.NoError(t, err)
	b.Position = pos
	b.Orientation = angle
	return b
}
