package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"ltctrack/internal/config"
	"ltctrack/internal/infra"
)

var Module = fx.Provide(
	provideDB)

// provideDB hands out the pool and ties its lifetime to the app: tables are
// migrated on start and the pool is closed on stop.
func provideDB(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := infra.PingPostgresql(ctx, db); err != nil {
				return err
			}
			log.Info("Connected to PostgreSQL database")
			return infra.Migrate(ctx, db)
		},
		OnStop: func(ctx context.Context) error {
			return infra.ClosePostgresql(db, log)
		},
	})

	return db, nil
}
