package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, scores and logs.
const AppDir = ".blockdrop"

// LoadBlocks loads the block launcher configuration.
// Search order: customPath -> ~/.blockdrop/configs/blocks.yaml ->
// ./configs/blocks.yaml -> embedded default -> DefaultBlocksConfig.
//
// Files are decoded on top of the defaults, so a file only needs the keys it
// changes. A custom path that is missing, malformed or invalid is an error;
// the other sources are skipped silently when unusable.
func LoadBlocks(customPath string) (BlocksConfig, error) {
	if customPath != "" {
		cfg, err := readBlocks(customPath)
		if err != nil {
			return DefaultBlocksConfig(), err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("blocks.yaml"); userCfgPath != "" {
		if cfg, err := readBlocks(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := readBlocks(filepath.Join("configs", "blocks.yaml")); err == nil {
		return cfg, nil
	}

	if cfg, err := decodeBlocks(defaultBlocksYAML); err == nil {
		return cfg, nil
	}
	return DefaultBlocksConfig(), nil
}

func readBlocks(path string) (BlocksConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BlocksConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := decodeBlocks(data)
	if err != nil {
		return BlocksConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func decodeBlocks(data []byte) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlocksConfig{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BlocksConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// ApplyBlocksPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
