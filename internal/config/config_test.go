package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultFloodConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg := DefaultFloodConfig()
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	// The embedded file spells out an empty position list.
	cfg.Drains.Positions = nil

	if !reflect.DeepEqual(cfg, DefaultFloodConfig()) {
		t.Errorf("embedded YAML drifted from DefaultFloodConfig:\n got %+v\nwant %+v", cfg, DefaultFloodConfig())
	}
}

func TestLoadFloodCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flood.yaml")
	data := []byte("grid:\n  width: 8\nwater:\n  rise_rate: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlood(path)
	if err != nil {
		t.Fatalf("LoadFlood() failed: %v", err)
	}
	if cfg.Grid.Width != 8 {
		t.Errorf("Grid.Width = %d, expected 8", cfg.Grid.Width)
	}
	if cfg.Grid.Height != 20 {
		t.Errorf("Grid.Height = %d, expected default 20", cfg.Grid.Height)
	}
	if cfg.Water.RiseRate != 5 {
		t.Errorf("Water.RiseRate = %f, expected 5", cfg.Water.RiseRate)
	}
	if cfg.Player.Speed != 120 {
		t.Errorf("Player.Speed = %f, expected default 120", cfg.Player.Speed)
	}
}

func TestLoadFloodCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFlood(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFlood(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("grid:\n  width: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFlood(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FloodConfig)
	}{
		{"zero width", func(c *FloodConfig) { c.Grid.Width = 0 }},
		{"negative height", func(c *FloodConfig) { c.Grid.Height = -2 }},
		{"zero cell size", func(c *FloodConfig) { c.Grid.CellSize = 0 }},
		{"player wider than a cell", func(c *FloodConfig) { c.Player.Size = 20 }},
		{"zero speed", func(c *FloodConfig) { c.Player.Speed = 0 }},
		{"negative rise", func(c *FloodConfig) { c.Water.RiseRate = -1 }},
		{"no depletion", func(c *FloodConfig) { c.Water.OxygenDepletion = 0 }},
		{"negative recovery", func(c *FloodConfig) { c.Water.OxygenRecovery = -1 }},
		{"negative bubbles", func(c *FloodConfig) { c.Pickups.Count = -1 }},
		{"zero exit threshold", func(c *FloodConfig) { c.Exit.Threshold = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFloodConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestDrainPositions(t *testing.T) {
	cfg := DefaultFloodConfig()
	got := cfg.DrainPositions()
	want := []CellPoint{{2.5, 2.5}, {17.5, 17.5}, {10, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DrainPositions() = %v, expected %v", got, want)
	}

	cfg.Drains.Positions = []CellPoint{{1, 1}}
	got = cfg.DrainPositions()
	got[0].X = 99
	if cfg.Drains.Positions[0].X != 1 {
		t.Error("DrainPositions should return a copy")
	}
}

func TestMaxWaterLevel(t *testing.T) {
	if got := DefaultFloodConfig().MaxWaterLevel(); got != 400 {
		t.Errorf("MaxWaterLevel() = %f, expected 400", got)
	}
}

func TestApplyVariant(t *testing.T) {
	cfg := DefaultFloodConfig()
	if err := ApplyVariant(&cfg, VariantClassic); err != nil {
		t.Fatalf("classic: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFloodConfig()) {
		t.Error("classic variant should not change the config")
	}

	if err := ApplyVariant(&cfg, VariantCompact); err != nil {
		t.Fatalf("compact: %v", err)
	}
	if cfg.Grid.Width != 10 || cfg.Grid.Height != 10 {
		t.Errorf("compact grid = %dx%d, expected 10x10", cfg.Grid.Width, cfg.Grid.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("compact variant should validate: %v", err)
	}
	want := []CellPoint{{2.5, 2.5}, {7.5, 7.5}, {5, 5}}
	if got := cfg.DrainPositions(); !reflect.DeepEqual(got, want) {
		t.Errorf("compact drains = %v, expected %v", got, want)
	}

	if err := ApplyVariant(&cfg, Variant("hexagonal")); err == nil {
		t.Error("unknown variant should fail")
	}
}
