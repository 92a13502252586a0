package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"ltctrack/internal/config"
	"ltctrack/pkg/logger"
)

var Module = fx.Provide(
	config.Load, provideLogger)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Dev: cfg.LogDev})
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
