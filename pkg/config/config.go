// Package config loads heapwalk settings from file, environment, and
// defaults.
package config

import (
	"errors"
	"fmt"
)

// Default configuration values.
const (
	DefaultSpeedLevel = 5
	DefaultRandomMin  = 0
	DefaultRandomMax  = 99
	DefaultNoColor    = false
	DefaultLegend     = true
)

// Speed level bounds mirrored from the playback package to keep config
// validation free of import cycles with future callers.
const (
	minSpeedLevel = 1
	maxSpeedLevel = 10
)

// Sentinel validation errors.
var (
	// ErrSpeedLevelRange indicates playback.speed_level is outside 1..10.
	ErrSpeedLevelRange = errors.New("playback.speed_level must be between 1 and 10")
	// ErrRandomRange indicates random.min exceeds random.max.
	ErrRandomRange = errors.New("random.min must not exceed random.max")
)

// Config is the top-level configuration struct for heapwalk.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Playback PlaybackConfig `mapstructure:"playback"`
	Random   RandomConfig   `mapstructure:"random"`
	Output   OutputConfig   `mapstructure:"output"`
}

// PlaybackConfig holds animation pacing knobs.
type PlaybackConfig struct {
	SpeedLevel int `mapstructure:"speed_level"`
}

// RandomConfig bounds the values drawn for insert-random operations.
type RandomConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// OutputConfig holds terminal rendering toggles.
type OutputConfig struct {
	NoColor bool `mapstructure:"no_color"`
	Legend  bool `mapstructure:"legend"`
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Playback.SpeedLevel < minSpeedLevel || c.Playback.SpeedLevel > maxSpeedLevel {
		return fmt.Errorf("%w: got %d", ErrSpeedLevelRange, c.Playback.SpeedLevel)
	}

	if c.Random.Min > c.Random.Max {
		return fmt.Errorf("%w: [%d, %d]", ErrRandomRange, c.Random.Min, c.Random.Max)
	}

	return nil
}
