package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/rigid2d/internal/shape"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// World is the rectangle bodies bounce inside of.
type World struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Config holds the tuning knobs of one simulation. It is passed by value to
// component constructors so independent simulations can be tuned separately.
type Config struct {
	// Padding is the slack added around polygon bounding rectangles in the broad-phase.
	Padding shape.Padding `yaml:"padding"`
	// ContactTolerance is the distance under which vertices and edges count as touching.
	ContactTolerance float64 `yaml:"contact_tolerance"`
	// Restitution is the coefficient of restitution used for every contact.
	Restitution float64 `yaml:"restitution"`
	// PushScale over-scales the minimum push vector so bodies end up fully apart.
	PushScale float64 `yaml:"push_scale"`
	World     World   `yaml:"world"`
	// StrictOverlaps makes broad-phase bookkeeping errors abort the tick.
	StrictOverlaps bool `yaml:"strict_overlaps"`
	MaxBodies      int  `yaml:"max_bodies"`
}

// Default returns the stock tuning.
func Default() Config {
	return Config{
		Padding:          shape.Padding{Lower: 3, Upper: 4},
		ContactTolerance: 4,
		Restitution:      1,
		PushScale:        1.05,
		World:            World{Width: 800, Height: 800},
		StrictOverlaps:   true,
		MaxBodies:        50,
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return LoadYAML(f)
}

// LoadYAML decodes YAML on top of Default. Missing keys keep their defaults.
func LoadYAML(r io.Reader) (Config, error) {
	c := Default()
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, c.Validate()
}

// ApplyEnv overrides fields from RIGID2D_* environment variables.
func (c *Config) ApplyEnv() error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"RIGID2D_PADDING_LOWER", &c.Padding.Lower},
		{"RIGID2D_PADDING_UPPER", &c.Padding.Upper},
		{"RIGID2D_CONTACT_TOLERANCE", &c.ContactTolerance},
		{"RIGID2D_RESTITUTION", &c.Restitution},
		{"RIGID2D_PUSH_SCALE", &c.PushScale},
		{"RIGID2D_WORLD_WIDTH", &c.World.Width},
		{"RIGID2D_WORLD_HEIGHT", &c.World.Height},
	}
	for _, f := range floats {
		v := GetEnv(f.key, "")
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, f.key, err)
		}
		*f.dst = parsed
	}

	if v := GetEnv("RIGID2D_STRICT_OVERLAPS", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: RIGID2D_STRICT_OVERLAPS: %v", ErrInvalidConfig, err)
		}
		c.StrictOverlaps = b
	}
	if v := GetEnv("RIGID2D_MAX_BODIES", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: RIGID2D_MAX_BODIES: %v", ErrInvalidConfig, err)
		}
		c.MaxBodies = n
	}
	return c.Validate()
}

// Validate checks the knobs are usable.
func (c Config) Validate() error {
	switch {
	case c.ContactTolerance <= 0:
		return fmt.Errorf("%w: contact_tolerance must be positive", ErrInvalidConfig)
	case c.Restitution < 0:
		return fmt.Errorf("%w: restitution must not be negative", ErrInvalidConfig)
	case c.PushScale < 1:
		return fmt.Errorf("%w: push_scale must be at least 1", ErrInvalidConfig)
	case c.Padding.Lower < 0 || c.Padding.Upper < 0:
		return fmt.Errorf("%w: padding must not be negative", ErrInvalidConfig)
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalidConfig)
	case c.MaxBodies <= 0:
		return fmt.Errorf("%w: max_bodies must be positive", ErrInvalidConfig)
	}
	return nil
}
