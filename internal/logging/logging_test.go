package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New("debug", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", false)
	require.Error(t, err)
}

func TestBodyField(t *testing.T) {
	id := uuid.New()
	f := Body("a", id)
	assert.Equal(t, "a", f.Key)
	assert.Equal(t, zapcore.StringerType, f.Type)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.log")
	l, err := NewFile("info", path)
	require.NoError(t, err)

	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
