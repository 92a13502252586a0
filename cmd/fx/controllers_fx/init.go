package controllers_fx

import (
	"go.uber.org/fx"
	"ltctrack/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewDailyStatController),
	fx.Provide(controllers.NewStatsController),
	fx.Provide(controllers.NewPageController),
	fx.Provide(controllers.NewHealthController))
