// Package config provides YAML-based configuration loading and the named
// variants of the flood escape game.
package config

import (
	"errors"
	"fmt"
)

// FloodConfig contains all tunable parameters of one game variant.
// Rates are expressed per second of simulated time.
type FloodConfig struct {
	Grid    GridConfig   `yaml:"grid"`
	Player  PlayerConfig `yaml:"player"`
	Water   WaterConfig  `yaml:"water"`
	Pickups PickupConfig `yaml:"pickups"`
	Drains  DrainConfig  `yaml:"drains"`
	Exit    ExitConfig   `yaml:"exit"`
}

// GridConfig defines the maze dimensions.
type GridConfig struct {
	Width    int     `yaml:"width"`     // Cells per row
	Height   int     `yaml:"height"`    // Cells per column
	CellSize float64 `yaml:"cell_size"` // Pixels per cell side
}

// PlayerConfig defines the player body.
type PlayerConfig struct {
	Speed float64 `yaml:"speed"` // Pixels per second on each axis
	Size  float64 `yaml:"size"`  // Collision diameter in pixels
}

// WaterConfig defines the flood and oxygen rates.
type WaterConfig struct {
	RiseRate        float64 `yaml:"rise_rate"`          // Pixels per second with no drain active
	SlowedRise      float64 `yaml:"slowed_rise"`        // Rise multiplier with one drain active
	SlowDrain       float64 `yaml:"slow_drain"`         // Drain multiplier with some drains active
	FastDrain       float64 `yaml:"fast_drain"`         // Drain multiplier with every drain active
	OxygenDepletion float64 `yaml:"oxygen_depletion"`   // Oxygen lost per second underwater
	OxygenRecovery  float64 `yaml:"oxygen_recovery"`    // Oxygen regained per second above water
	LowOxygen       float64 `yaml:"low_oxygen_warning"` // Threshold for the warning banner
}

// PickupConfig defines the air bubbles.
type PickupConfig struct {
	Count       int     `yaml:"count"`
	Radius      float64 `yaml:"radius"`       // Pickup distance in pixels
	OxygenBonus float64 `yaml:"oxygen_bonus"` // Oxygen granted per bubble
}

// DrainConfig defines the drain switches.
type DrainConfig struct {
	Radius float64 `yaml:"radius"` // Activation distance in pixels
	// Positions in cell units. Empty means the strategic default layout.
	Positions []CellPoint `yaml:"positions"`
}

// CellPoint is a position measured in cells rather than pixels.
type CellPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ExitConfig defines the escape condition.
type ExitConfig struct {
	Threshold float64 `yaml:"threshold"` // Distance to the exit center that counts as escaped
}

// MaxWaterLevel returns the water height that floods the whole field.
func (c FloodConfig) MaxWaterLevel() float64 {
	return float64(c.Grid.Height) * c.Grid.CellSize
}

// DrainPositions returns the configured drain positions, or the strategic
// layout (near the start, near the exit, and the middle) when none are set.
func (c FloodConfig) DrainPositions() []CellPoint {
	if len(c.Drains.Positions) > 0 {
		out := make([]CellPoint, len(c.Drains.Positions))
		copy(out, c.Drains.Positions)
		return out
	}
	w, h := float64(c.Grid.Width), float64(c.Grid.Height)
	return []CellPoint{
		{X: 2.5, Y: 2.5},
		{X: w - 2.5, Y: h - 2.5},
		{X: float64(c.Grid.Width / 2), Y: float64(c.Grid.Height / 2)},
	}
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks the construction preconditions of the game.
func (c FloodConfig) Validate() error {
	switch {
	case c.Grid.Width <= 0 || c.Grid.Height <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Grid.Width, c.Grid.Height)
	case c.Grid.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive", ErrInvalidConfig)
	case c.Player.Size <= 0 || c.Player.Size >= c.Grid.CellSize:
		return fmt.Errorf("%w: player size must be in (0, cell_size)", ErrInvalidConfig)
	case c.Player.Speed <= 0:
		return fmt.Errorf("%w: player speed must be positive", ErrInvalidConfig)
	case c.Water.RiseRate < 0 || c.Water.SlowedRise < 0 || c.Water.SlowDrain < 0 || c.Water.FastDrain < 0:
		return fmt.Errorf("%w: water rates must not be negative", ErrInvalidConfig)
	case c.Water.OxygenDepletion <= 0:
		return fmt.Errorf("%w: oxygen_depletion must be positive", ErrInvalidConfig)
	case c.Water.OxygenRecovery < 0:
		return fmt.Errorf("%w: oxygen_recovery must not be negative", ErrInvalidConfig)
	case c.Pickups.Count < 0:
		return fmt.Errorf("%w: pickup count must not be negative", ErrInvalidConfig)
	case c.Pickups.Radius <= 0 || c.Drains.Radius <= 0 || c.Exit.Threshold <= 0:
		return fmt.Errorf("%w: pickup, drain and exit radii must be positive", ErrInvalidConfig)
	}
	return nil
}
