package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("missing file did not yield defaults: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levelite.toml")
	data := `
[leveling]
base_exp = 100
growth_factor = 2.0

[penalty]
health_damage = 30
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Leveling.BaseExp != 100 || cfg.Leveling.GrowthFactor != 2.0 {
		t.Fatalf("leveling not overridden: %+v", cfg.Leveling)
	}
	if cfg.Penalty.HealthDamage != 30 {
		t.Fatalf("penalty not overridden: %+v", cfg.Penalty)
	}
	// Untouched sections keep their defaults.
	if cfg.Rewards.PointsPerLevel != 3 || cfg.Rewards.DailyCoinBonus != 50 {
		t.Fatalf("defaults lost for rewards: %+v", cfg.Rewards)
	}
	if cfg.Leveling.PercentMedium != 0.25 {
		t.Fatalf("defaults lost for percent table: %+v", cfg.Leveling)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levelite.toml")
	if err := os.WriteFile(path, []byte("[leveling\nbase_exp ="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
