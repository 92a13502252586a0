package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ltctrack/internal/models/request_models"
	"ltctrack/internal/services"
	"ltctrack/pkg/utils"
)

type StatsController struct {
	statsService services.StatsServiceInterface
}

func NewStatsController(statsService services.StatsServiceInterface) *StatsController {
	return &StatsController{
		statsService: statsService,
	}
}

// AccountStats godoc
// @Summary Per-day totals across all of my accounts
// @Tags Stats
// @Produce json
// @Param start_date query string false "YYYY-MM-DD, inclusive"
// @Param end_date   query string false "YYYY-MM-DD, inclusive"
// @Param with_price query bool   false "Attach the LTC/USDT daily close and USD value"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/account-stats [get]
func (s *StatsController) AccountStats(c *gin.Context) {
	var query request_models.StatsRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	stats, err := s.statsService.AccountStats(c.Request.Context(), identity(c), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, stats, "")
}
