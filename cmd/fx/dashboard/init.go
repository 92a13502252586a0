package dashboard

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"ltctrack/internal/repositories"
	"ltctrack/internal/services"
)

// Module provides the per-day aggregation behind the dashboard and stats pages.
var Module = fx.Provide(
	provideStatsService,
)

func provideStatsService(
	accountRepo repositories.AccountRepository,
	dailyStatRepo repositories.DailyStatRepository,
	prices services.PriceServiceInterface,
	log *zap.Logger,
) services.StatsServiceInterface {
	return services.NewStatsService(accountRepo, dailyStatRepo, prices, log)
}
