// Package app wires configuration, scenes and logging into a ready
// simulation for the command-line front ends.
package app

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/loop"
	"github.com/tomz197/rigid2d/internal/object"
	"github.com/tomz197/rigid2d/internal/scene"
)

// DefaultBodies is how many random bodies are generated when no scene is given.
const DefaultBodies = 12

// Options selects where a simulation's bodies and tuning come from.
type Options struct {
	ConfigPath string // YAML tuning file; empty uses config.Default
	ScenePath  string // YAML scene file; empty generates random bodies
	Bodies     int    // random body count when ScenePath is empty
	Seed       uint64 // 0 seeds from the clock
}

// OptionsFromEnv reads RIGID2D_CONFIG and RIGID2D_SCENE.
func OptionsFromEnv() Options {
	return Options{
		ConfigPath: config.GetEnv("RIGID2D_CONFIG", ""),
		ScenePath:  config.GetEnv("RIGID2D_SCENE", ""),
		Bodies:     DefaultBodies,
	}
}

// LoadConfig reads the tuning file, if any, and applies RIGID2D_* overrides.
func LoadConfig(path string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// NewSimulation builds a simulation as described by opts.
func NewSimulation(opts Options, logger *zap.Logger) (*loop.Simulation, error) {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1))

	var bodies []*object.Body
	src := "random"
	if opts.ScenePath != "" {
		src = opts.ScenePath
		sc, err := scene.Load(opts.ScenePath)
		if err != nil {
			return nil, err
		}
		if bodies, err = sc.Build(cfg); err != nil {
			return nil, err
		}
	} else if bodies, err = scene.Random(rng, opts.Bodies, cfg); err != nil {
		return nil, err
	}

	logger.Info("scene loaded",
		zap.String("source", src),
		zap.Int("bodies", len(bodies)),
		zap.Uint64("seed", seed),
		zap.Float64("world_width", cfg.World.Width),
		zap.Float64("world_height", cfg.World.Height),
	)

	return loop.NewSimulation(bodies, cfg,
		loop.WithLogger(logger.Named("sim")),
		loop.WithRand(rng),
	)
}
