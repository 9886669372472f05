package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "flood.yaml"

// Variant identifies a named configuration preset.
type Variant string

const (
	VariantClassic Variant = "classic"
	VariantCompact Variant = "compact"
)

// Variants returns every known variant in display order.
func Variants() []Variant {
	return []Variant{VariantClassic, VariantCompact}
}

// LoadFlood loads the game configuration.
// Search order: customPath -> ~/.floodescape/configs/flood.yaml -> ./configs/flood.yaml -> embedded default
// Files override the hardcoded defaults field by field, so partial files are allowed.
func LoadFlood(customPath string) (FloodConfig, error) {
	cfg := DefaultFloodConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(configFile), filepath.Join("configs", configFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultFloodConfig()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil && fileCfg.Validate() == nil {
			return fileCfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultFloodYAML, &cfg); err != nil {
		return DefaultFloodConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".floodescape", "configs", filename)
}

// ApplyVariant modifies the config for a named variant.
// The compact variant shrinks the maze so it fits an 80x24 terminal.
func ApplyVariant(cfg *FloodConfig, v Variant) error {
	switch v {
	case VariantClassic:
		return nil
	case VariantCompact:
		cfg.Grid.Width = 10
		cfg.Grid.Height = 10
		cfg.Pickups.Count = 4
		cfg.Water.RiseRate /= 2 // same time to flood as classic
		cfg.Drains.Positions = nil
		return nil
	default:
		return fmt.Errorf("config: unknown variant %q", v)
	}
}
