package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/rigid2d/internal/shape"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, shape.Padding{Lower: 3, Upper: 4}, c.Padding)
	assert.Equal(t, 4.0, c.ContactTolerance)
	assert.Equal(t, 1.0, c.Restitution)
	assert.Equal(t, 1.05, c.PushScale)
}

func TestLoadYAMLKeepsDefaults(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(`
restitution: 0.5
padding:
  lower: 1
  upper: 2
world:
  width: 400
  height: 300
`))
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.Restitution)
	assert.Equal(t, shape.Padding{Lower: 1, Upper: 2}, c.Padding)
	assert.Equal(t, World{Width: 400, Height: 300}, c.World)
	assert.Equal(t, 4.0, c.ContactTolerance)
	assert.True(t, c.StrictOverlaps)
}

func TestLoadYAMLEmpty(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadYAMLRejectsInvalid(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("contact_tolerance: -1\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadYAML(strings.NewReader("restitution: [1, 2]\n"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RIGID2D_RESTITUTION", "0.25")
	t.Setenv("RIGID2D_STRICT_OVERLAPS", "false")
	t.Setenv("RIGID2D_MAX_BODIES", "12")

	c := Default()
	require.NoError(t, c.ApplyEnv())
	assert.Equal(t, 0.25, c.Restitution)
	assert.False(t, c.StrictOverlaps)
	assert.Equal(t, 12, c.MaxBodies)
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("RIGID2D_PUSH_SCALE", "lots")
	c := Default()
	require.ErrorIs(t, c.ApplyEnv(), ErrInvalidConfig)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("RIGID2D_TEST_KEY", "x")
	assert.Equal(t, "x", GetEnv("RIGID2D_TEST_KEY", "y"))
	assert.Equal(t, "y", GetEnv("RIGID2D_MISSING_KEY", "y"))
}
