package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"ltctrack/cmd/fx/account_fx"
	"ltctrack/cmd/fx/auth_fx"
	"ltctrack/cmd/fx/config_fx"
	"ltctrack/cmd/fx/controllers_fx"
	"ltctrack/cmd/fx/daily_stat_fx"
	"ltctrack/cmd/fx/dashboard"
	"ltctrack/cmd/fx/db_fx"
	"ltctrack/cmd/fx/memcache_fx"
	"ltctrack/cmd/fx/upstream_fx"
	"ltctrack/internal/api"
	"ltctrack/internal/config"
	"ltctrack/pkg/middleware"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		upstream_fx.Module,
		auth_fx.Module,
		account_fx.Module,
		daily_stat_fx.Module,
		dashboard.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(cfg *config.Config, log *zap.Logger, handlers api.Handlers) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(handlers.Authenticator.RestoreIdentity())
	r.Use(middleware.RequestLogger(log.Named("http")))

	api.RegisterRoutes(r, handlers)

	return r
}
