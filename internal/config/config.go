// Package config handles spatialtool configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/spatial3d/pkg/math"
	"github.com/Faultbox/spatial3d/pkg/picking"
)

// Config holds all tool settings.
type Config struct {
	Math    MathConfig    `yaml:"math"`
	Picking PickingConfig `yaml:"picking"`
	Logging LoggingConfig `yaml:"logging"`
}

// MathConfig holds numeric settings.
type MathConfig struct {
	Epsilon float64 `yaml:"epsilon"` // Tolerance for zero and equality tests
}

// PickingConfig holds ray casting settings.
type PickingConfig struct {
	KDTreeDepth   int  `yaml:"kdtree_depth"`
	CullBackFaces bool `yaml:"cull_back_faces"`
	Workers       int  `yaml:"workers"` // 0 = one per CPU
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Math: MathConfig{
			Epsilon: float64(math.DefaultTolerance),
		},
		Picking: PickingConfig{
			KDTreeDepth:   picking.DefaultKDTreeDepth,
			CullBackFaces: false,
			Workers:       0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Math.Epsilon <= 0 {
		err = multierr.Append(err, fmt.Errorf("math.epsilon must be positive, got %g", c.Math.Epsilon))
	}
	if c.Picking.KDTreeDepth < 0 {
		err = multierr.Append(err, fmt.Errorf("picking.kdtree_depth must not be negative, got %d", c.Picking.KDTreeDepth))
	}
	if c.Picking.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("picking.workers must not be negative, got %d", c.Picking.Workers))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	return err
}

// Tolerance returns the configured epsilon.
func (c *Config) Tolerance() math.Tolerance {
	return math.Tolerance(c.Math.Epsilon)
}

// RayOptions returns the ray-triangle options for picking.
func (c *Config) RayOptions() picking.Options {
	return picking.Options{
		CullBackFaces: c.Picking.CullBackFaces,
		Tolerance:     c.Tolerance(),
	}
}
