package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"ltctrack/internal/repositories"
	"ltctrack/internal/services"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideOwnershipGuard)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideOwnershipGuard(accountRepo repositories.AccountRepository, dailyStatRepo repositories.DailyStatRepository) services.OwnershipGuard {
	return services.NewOwnershipGuard(accountRepo, dailyStatRepo)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	guard services.OwnershipGuard,
	chain services.AddressLookup,
	log *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, guard, chain, log)
}
