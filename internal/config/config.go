// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidConfig is returned when a loaded configuration cannot be played.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// BlocksConfig contains all configuration for the block launcher games.
type BlocksConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Launcher   LauncherConfig   `yaml:"launcher"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig sizes the playfield in pixels. Width and height must be
// multiples of the tile edge.
type FieldConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TileSize int `yaml:"tile_size"`
}

// Cols returns the number of grid columns.
func (f FieldConfig) Cols() int {
	return f.Width / f.TileSize
}

// Rows returns the number of grid rows.
func (f FieldConfig) Rows() int {
	return f.Height / f.TileSize
}

// PhysicsConfig defines projectile motion in pixels per tick.
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`
	LaunchSpeed        float64 `yaml:"launch_speed"`         // Horizontal speed of aimed launches
	ClassicLaunchSpeed float64 `yaml:"classic_launch_speed"` // Upward speed in the classic launcher
}

// LauncherConfig anchors the launch point. Negative values count from the
// right or bottom edge of the field.
type LauncherConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SpawnConfig controls the values handed to the player.
type SpawnConfig struct {
	Values     []int   `yaml:"values"`      // First entry is the common value
	FourChance float64 `yaml:"four_chance"` // Chance of drawing from the rarer values
}

// Validate checks that the configuration describes a playable field.
func (c BlocksConfig) Validate() error {
	f := c.Field
	if f.TileSize <= 0 {
		return fmt.Errorf("%w: tile_size must be positive, got %d", ErrInvalidConfig, f.TileSize)
	}
	if f.Width < f.TileSize || f.Height < f.TileSize {
		return fmt.Errorf("%w: field %dx%d is smaller than one tile", ErrInvalidConfig, f.Width, f.Height)
	}
	if f.Width%f.TileSize != 0 || f.Height%f.TileSize != 0 {
		return fmt.Errorf("%w: field %dx%d is not a multiple of tile_size %d", ErrInvalidConfig, f.Width, f.Height, f.TileSize)
	}
	if c.Physics.LaunchSpeed <= 0 {
		return fmt.Errorf("%w: launch_speed must be positive, got %v", ErrInvalidConfig, c.Physics.LaunchSpeed)
	}
	if c.Physics.Gravity < 0 {
		return fmt.Errorf("%w: gravity must not be negative, got %v", ErrInvalidConfig, c.Physics.Gravity)
	}
	if len(c.Spawn.Values) == 0 {
		return fmt.Errorf("%w: spawn.values is empty", ErrInvalidConfig)
	}
	for _, v := range c.Spawn.Values {
		if v < 2 || bits.OnesCount(uint(v)) != 1 {
			return fmt.Errorf("%w: spawn value %d is not a power of two", ErrInvalidConfig, v)
		}
	}
	if c.Spawn.FourChance < 0 || c.Spawn.FourChance > 1 {
		return fmt.Errorf("%w: four_chance must be within [0, 1], got %v", ErrInvalidConfig, c.Spawn.FourChance)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"`  // Added to launch speed at max difficulty
	FourChanceBonus float64 `yaml:"four_chance_bonus"` // Added to four_chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. The empty string means
// "keep whatever the config file says".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
