package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the built-in configuration, used when no YAML
// source can be read.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Field: FieldConfig{
			Width:    600,
			Height:   800,
			TileSize: 40,
		},
		Physics: PhysicsConfig{
			Gravity:            0.6,
			LaunchSpeed:        12,
			ClassicLaunchSpeed: 15,
		},
		Launcher: LauncherConfig{
			X: 0,
			Y: 0,
		},
		Spawn: SpawnConfig{
			Values:     []int{2, 4},
			FourChance: 0.1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 4096,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				FourChanceBonus: 0.3,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultBlocksYAML
}
