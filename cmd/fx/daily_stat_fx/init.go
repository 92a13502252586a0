package daily_stat_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"ltctrack/internal/repositories"
	"ltctrack/internal/services"
)

var Module = fx.Provide(
	provideDailyStatRepo, provideDailyStatService)

func provideDailyStatRepo(db *gorm.DB) repositories.DailyStatRepository {
	return repositories.NewDailyStatRepository(db)
}

func provideDailyStatService(dailyStatRepo repositories.DailyStatRepository, guard services.OwnershipGuard, log *zap.Logger) services.DailyStatServiceInterface {
	return services.NewDailyStatService(dailyStatRepo, guard, log)
}
