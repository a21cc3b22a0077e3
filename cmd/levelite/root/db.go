package root

import (
	"context"
	"database/sql"

	"github.com/izumiishikawa/levelite-sub000/internal/config"
	"github.com/izumiishikawa/levelite-sub000/internal/engine"
	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	return config.Default(), nil
}

func settingsFrom(cfg config.Config) engine.Settings {
	return engine.Settings{
		Curve: engine.Curve{
			BaseExp:        cfg.Leveling.BaseExp,
			GrowthFactor:   cfg.Leveling.GrowthFactor,
			PercentDefault: cfg.Leveling.PercentDefault,
			PercentLow:     cfg.Leveling.PercentLow,
			PercentMedium:  cfg.Leveling.PercentMedium,
			PercentHigh:    cfg.Leveling.PercentHigh,
		},
		PointsPerLevel: cfg.Rewards.PointsPerLevel,
		DailyCoinBonus: cfg.Rewards.DailyCoinBonus,
		PenaltyDamage:  cfg.Penalty.HealthDamage,
		PenaltyTaskXP:  cfg.Penalty.TaskXP,
	}
}

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, *sql.DB, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	svc := engine.NewService(db, settingsFrom(cfg), engine.SystemClock())
	return svc, db, cleanup, nil
}
