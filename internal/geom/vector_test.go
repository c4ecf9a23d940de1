package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestVectorArithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(-1, 2)

	assert.Equal(t, V(2, 6), a.Add(b))
	assert.Equal(t, V(4, 2), a.Sub(b))
	assert.Equal(t, V(6, 8), a.Scale(2))
	assert.Equal(t, 5.0, a.Dot(b))
	assert.Equal(t, 3.0*2-(-1.0)*4, a.Cross(b))
	assert.Equal(t, 5.0, a.Len())
	assert.Equal(t, 25.0, a.LenSq())
	assert.Equal(t, V(-4, 3), a.Perp())
	assert.Equal(t, V(-3, -4), a.Neg())
}

func TestNormalize(t *testing.T) {
	u, err := V(3, 4).Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, u.Len(), eps)
	assert.InDelta(t, 0.6, u.X, eps)

	_, err = Vector2{}.Normalize()
	require.ErrorIs(t, err, ErrZeroVector)
}

func TestRotate(t *testing.T) {
	r := V(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0.0, r.X, eps)
	assert.InDelta(t, 1.0, r.Y, eps)

	p := r.Perp()
	q := r.Rotate(math.Pi / 2)
	assert.InDelta(t, p.X, q.X, eps)
	assert.InDelta(t, p.Y, q.Y, eps)
}

func TestOrderingComparesYOnly(t *testing.T) {
	a := V(100, 1)
	b := V(-100, 2)
	assert.True(t, a.Less(b))
	assert.True(t, b.Greater(a))
	assert.False(t, V(5, 1).Less(V(-5, 1)))
}

func TestSpaceRoundTrip(t *testing.T) {
	s := Space{Position: V(10, -3), Angle: 0.7}
	p := V(2.5, 4)

	w := s.Transform(p)
	back := s.Inverse(w)
	assert.InDelta(t, p.X, back.X, eps)
	assert.InDelta(t, p.Y, back.Y, eps)
}

func TestSpaceChain(t *testing.T) {
	body := Space{Position: V(5, 0), Angle: math.Pi / 2}
	camera := Space{Position: V(-1, -1)}

	w := Transform(V(1, 0), body, camera)
	assert.InDelta(t, 4.0, w.X, eps)
	assert.InDelta(t, 0.0, w.Y, eps)

	back := InverseTransform(w, body, camera)
	assert.InDelta(t, 1.0, back.X, eps)
	assert.InDelta(t, 0.0, back.Y, eps)
}

func TestSpaceAdjustments(t *testing.T) {
	s := Space{}.Translate(V(1, 2)).Rotate(0.5)
	assert.Equal(t, V(1, 2), s.Position)
	assert.Equal(t, 0.5, s.Angle)
	assert.Equal(t, Space{Position: V(-1, -2), Angle: -0.5}, s.Neg())
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(V(0, 0), V(3, 4)))
	assert.Equal(t, 25.0, DistanceSquared(V(0, 0), V(3, 4)))
}
