package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"ltctrack/internal/infra"
	"ltctrack/pkg/utils"
)

type HealthController struct {
	ping func(ctx context.Context) error
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{
		ping: func(ctx context.Context) error {
			return infra.PingPostgresql(ctx, db)
		},
	}
}

func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		zap.L().Error("health check failed", zap.Error(err))
		utils.RespondError(c, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	utils.RespondSuccess(c, gin.H{"database": "ok"}, "healthy")
}
