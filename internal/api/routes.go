package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"ltctrack/internal/api/controllers"
	"ltctrack/pkg/middleware"
)

// Handlers is everything RegisterRoutes needs, filled in by fx.
type Handlers struct {
	fx.In

	Authenticator *middleware.Authenticator
	Auth          *controllers.AuthController
	Accounts      *controllers.AccountController
	DailyStats    *controllers.DailyStatController
	Stats         *controllers.StatsController
	Pages         *controllers.PageController
	Health        *controllers.HealthController
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	authn := h.Authenticator

	r.GET("/health", h.Health.Health)

	// browsable routes: anonymous traffic is sent to /login
	r.GET("/", h.Pages.Root)
	r.GET("/login", authn.RedirectIfAuthenticated("/dashboard"), h.Auth.LoginPage)
	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)

	pages := r.Group("/", authn.RequireAuthRedirect("/login"))
	pages.GET("/dashboard", h.Pages.Dashboard)
	pages.GET("/stats", h.Pages.Stats)
	pages.GET("/input-stats", h.Pages.InputStats)
	pages.GET("/accounts/:accountId", h.Pages.AccountDetail)

	r.POST("/api/register", h.Auth.Register)

	apiGroup := r.Group("/api", authn.RequireAuth())
	apiGroup.GET("/me", h.Auth.Me)

	userGroup := apiGroup.Group("/user")
	userGroup.PATCH("/update-info", h.Auth.UpdateInfo)
	userGroup.PATCH("/change-password", h.Auth.ChangePassword)

	accountGroup := apiGroup.Group("/accounts")
	accountGroup.GET("", h.Accounts.ListAccounts)
	accountGroup.POST("", h.Accounts.CreateAccount)
	accountGroup.GET("/:accountId", h.Accounts.GetAccount)
	accountGroup.PUT("/:accountId", h.Accounts.UpdateAccount)
	accountGroup.DELETE("/:accountId", h.Accounts.DeleteAccount)
	accountGroup.PATCH("/:accountId/verify", h.Accounts.VerifyAccount)
	accountGroup.PATCH("/:accountId/unverify", h.Accounts.UnverifyAccount)
	accountGroup.GET("/:accountId/verification-events", h.Accounts.VerificationEvents)
	accountGroup.GET("/:accountId/transactions", h.Accounts.Transactions)
	accountGroup.GET("/:accountId/daily-stats", h.Accounts.DailyStats)

	statsGroup := apiGroup.Group("/daily-stats")
	statsGroup.GET("", h.DailyStats.ListDailyStats)
	statsGroup.POST("", h.DailyStats.CreateDailyStat)
	statsGroup.PUT("", h.DailyStats.UpsertDailyStat)
	statsGroup.PUT("/:statId", h.DailyStats.UpdateDailyStat)
	statsGroup.DELETE("/:statId", h.DailyStats.DeleteDailyStat)

	apiGroup.GET("/account-stats", h.Stats.AccountStats)
}
