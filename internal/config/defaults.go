package config

import (
	_ "embed"
)

//go:embed defaults/flood.yaml
var defaultFloodYAML []byte

// DefaultFloodConfig returns the classic configuration: a 20x20 maze of
// 20-pixel cells.
func DefaultFloodConfig() FloodConfig {
	return FloodConfig{
		Grid: GridConfig{
			Width:    20,
			Height:   20,
			CellSize: 20,
		},
		Player: PlayerConfig{
			Speed: 120, // 2 px per tick at 60 ticks/s
			Size:  12,  // 0.6 of a cell
		},
		Water: WaterConfig{
			RiseRate:        18,
			SlowedRise:      0.3,
			SlowDrain:       0.2,
			FastDrain:       1.5,
			OxygenDepletion: 9,
			OxygenRecovery:  4.5,
			LowOxygen:       30,
		},
		Pickups: PickupConfig{
			Count:       8,
			Radius:      10,
			OxygenBonus: 50,
		},
		Drains: DrainConfig{
			Radius: 20,
		},
		Exit: ExitConfig{
			Threshold: 10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFloodYAML
}
