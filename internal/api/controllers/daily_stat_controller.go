package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ltctrack/internal/models/request_models"
	"ltctrack/internal/services"
	"ltctrack/pkg/utils"
)

type DailyStatController struct {
	dailyStatService services.DailyStatServiceInterface
}

func NewDailyStatController(dailyStatService services.DailyStatServiceInterface) *DailyStatController {
	return &DailyStatController{
		dailyStatService: dailyStatService,
	}
}

// ListDailyStats godoc
// @Summary List daily stats
// @Description Newest day first. account_id narrows the list to one account.
// @Tags DailyStats
// @Produce json
// @Param account_id query string false "Account ID"
// @Success 200 {object} utils.APIResponse
// @Router /api/daily-stats [get]
func (d *DailyStatController) ListDailyStats(c *gin.Context) {
	accountID, ok := optionalUUIDQuery(c, "account_id")
	if !ok {
		return
	}

	stats, err := d.dailyStatService.ListDailyStats(c.Request.Context(), identity(c), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, stats, "")
}

// CreateDailyStat godoc
// @Summary Record one day for an account
// @Description Fails with 409 when the account already has a row for that day
// @Tags DailyStats
// @Accept json
// @Produce json
// @Param request body request_models.DailyStatRequest true "Daily stat"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/daily-stats [post]
func (d *DailyStatController) CreateDailyStat(c *gin.Context) {
	var req request_models.DailyStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	stat, err := d.dailyStatService.CreateDailyStat(c.Request.Context(), identity(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, stat, "Daily stat created successfully")
}

// UpsertDailyStat godoc
// @Summary Create or overwrite one day for an account
// @Description Safe to retry: repeating the request leaves a single row with the same figures
// @Tags DailyStats
// @Accept json
// @Produce json
// @Param request body request_models.DailyStatRequest true "Daily stat"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/daily-stats [put]
func (d *DailyStatController) UpsertDailyStat(c *gin.Context) {
	var req request_models.DailyStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	stat, err := d.dailyStatService.UpsertDailyStat(c.Request.Context(), identity(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, stat, "Daily stat saved")
}

func (d *DailyStatController) UpdateDailyStat(c *gin.Context) {
	statID, ok := uuidParam(c, "statId")
	if !ok {
		return
	}

	var req request_models.UpdateDailyStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	stat, err := d.dailyStatService.UpdateDailyStat(c.Request.Context(), identity(c), statID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, stat, "Daily stat updated successfully")
}

func (d *DailyStatController) DeleteDailyStat(c *gin.Context) {
	statID, ok := uuidParam(c, "statId")
	if !ok {
		return
	}

	if err := d.dailyStatService.DeleteDailyStat(c.Request.Context(), identity(c), statID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Daily stat deleted successfully")
}
