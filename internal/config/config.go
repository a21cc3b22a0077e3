package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Leveling   LevelingConfig   `toml:"leveling"`
	Rewards    RewardsConfig    `toml:"rewards"`
	Penalty    PenaltyConfig    `toml:"penalty"`
	Reconciler ReconcilerConfig `toml:"reconciler"`
}

type LevelingConfig struct {
	// BaseExp is the XP required to clear level 1.
	BaseExp int `toml:"base_exp"`
	// GrowthFactor multiplies the requirement per level.
	GrowthFactor float64 `toml:"growth_factor"`

	PercentDefault float64 `toml:"percent_default"`
	PercentLow     float64 `toml:"percent_low"`
	PercentMedium  float64 `toml:"percent_medium"`
	PercentHigh    float64 `toml:"percent_high"`
}

type RewardsConfig struct {
	PointsPerLevel int `toml:"points_per_level"`
	DailyCoinBonus int `toml:"daily_coin_bonus"`
}

type PenaltyConfig struct {
	HealthDamage int `toml:"health_damage"`
	// TaskXP is the fixed reward of each spawned penalty task. Penalty
	// rewards are deliberately flat instead of level-scaled.
	TaskXP int `toml:"task_xp"`
}

type ReconcilerConfig struct {
	// BoundaryHour is the local wall-clock hour at which the daemon fires.
	BoundaryHour int `toml:"boundary_hour"`
}

func Default() Config {
	return Config{
		Leveling: LevelingConfig{
			BaseExp:        234,
			GrowthFactor:   1.5,
			PercentDefault: 0.10,
			PercentLow:     0.15,
			PercentMedium:  0.25,
			PercentHigh:    0.40,
		},
		Rewards: RewardsConfig{
			PointsPerLevel: 3,
			DailyCoinBonus: 50,
		},
		Penalty: PenaltyConfig{
			HealthDamage: 20,
			TaskXP:       25,
		},
		Reconciler: ReconcilerConfig{
			BoundaryHour: 0,
		},
	}
}

// Load reads a TOML config file. A missing file yields the defaults so the
// CLI works out of the box.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
