package auth_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"ltctrack/internal/config"
	"ltctrack/internal/repositories"
	"ltctrack/internal/services"
	"ltctrack/pkg/middleware"
)

var Module = fx.Options(
	fx.Provide(
		provideUserRepo,
		provideSessionRepo,
		provideSessionService,
		services.NewBcryptHasher,
		provideAuthService,
		provideAuthenticator,
		provideSessionReaper,
	),
	fx.Invoke(runSessionReaper),
)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideSessionRepo(db *gorm.DB) repositories.SessionRepository {
	return repositories.NewSessionRepository(db)
}

func provideSessionService(sessionRepo repositories.SessionRepository, log *zap.Logger) services.SessionServiceInterface {
	return services.NewSessionService(sessionRepo, log)
}

func provideAuthService(
	userRepo repositories.UserRepository,
	sessions services.SessionServiceInterface,
	hasher services.PasswordHasher,
	log *zap.Logger,
) services.AuthServiceInterface {
	return services.NewAuthService(userRepo, sessions, hasher, log)
}

func provideAuthenticator(auth services.AuthServiceInterface, cfg *config.Config, log *zap.Logger) *middleware.Authenticator {
	return middleware.NewAuthenticator(auth, cfg.CookieSecure, log)
}

func provideSessionReaper(sessions services.SessionServiceInterface, cfg *config.Config, log *zap.Logger) *services.SessionReaper {
	return services.NewSessionReaper(sessions, cfg.SessionReapEvery, log)
}

func runSessionReaper(lc fx.Lifecycle, reaper *services.SessionReaper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			reaper.RunOnce(ctx)
			reaper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return reaper.Stop(ctx)
		},
	})
}
