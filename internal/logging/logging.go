// Package logging builds the zap loggers used across the simulation.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger at the given level ("debug", "info", "warn", "error").
// Development loggers write human-readable console output; production loggers write JSON.
func New(level string, development bool) (*zap.Logger, error) {
	return build(level, development, "stderr")
}

// NewFile builds a production logger writing JSON lines to path. Terminal
// front ends use it so log output does not tear the rendered frame.
func NewFile(level, path string) (*zap.Logger, error) {
	return build(level, false, path)
}

func build(level string, development bool, output string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(lvl),
		Development: development,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	if development {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		cfg.Sampling = nil
	}

	return cfg.Build()
}

// Body returns the standard field used to tag log lines with a body id.
func Body(key string, id fmt.Stringer) zap.Field {
	return zap.Stringer(key, id)
}
