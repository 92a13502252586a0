package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ltctrack/internal/models/request_models"
	"ltctrack/internal/services"
	"ltctrack/pkg/utils"
)

type AccountController struct {
	accountService   services.AccountServiceInterface
	dailyStatService services.DailyStatServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface, dailyStatService services.DailyStatServiceInterface) *AccountController {
	return &AccountController{
		accountService:   accountService,
		dailyStatService: dailyStatService,
	}
}

// ListAccounts godoc
// @Summary List my accounts
// @Description Newest first, with verification state and age in days
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/accounts [get]
func (a *AccountController) ListAccounts(c *gin.Context) {
	accounts, err := a.accountService.ListAccounts(c.Request.Context(), identity(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, accounts, "")
}

// CreateAccount godoc
// @Summary Create an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.CreateAccountRequest true "Account payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/accounts [post]
func (a *AccountController) CreateAccount(c *gin.Context) {
	var req request_models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.accountService.CreateAccount(c.Request.Context(), identity(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, account, "Account created successfully")
}

func (a *AccountController) GetAccount(c *gin.Context) {
	accountID, ok := uuidParam(c, "accountId")
	if !ok {
		return
	}

	account, err := a.accountService.GetAccount(c.Request.Context(), identity(c), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "")
}

func (a *AccountController) UpdateAccount(c *gin.Context) {
	accountID, ok := uuidParam(c, "accountId")
	if !ok {
		return
	}

	var req request_models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.accountService.UpdateAccount(c.Request.Context(), identity(c), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "Account updated successfully")
}

// DeleteAccount also removes every daily stat of the account.
func (a *AccountController) DeleteAccount(c *gin.Context) {
	accountID, ok := uuidParam(c, "accountId")
	if !ok {
		return
	}

	if err := a.accountService.DeleteAccount(c.Request.Context(), identity(c), accountID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Account deleted successfully")
}

func (a *AccountController) VerifyAccount(c *gin.Context) {
	accountID, ok := uuidParam(c, "accountId")
	if !ok {
		return
	}

	account, err := a.accountService.VerifyAccount(c.Request.Context(), identity(c), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "Account verified")
}

func (a *AccountController) UnverifyAccount(c *gin.Context) {
	accountID, ok := uuidParam(c, "accountId")
	if !ok {
		return
	}

	account, err := a.accountService.UnverifyAccount(c.Request.Context(), identity(c), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "Account unverified")
}

func (a *AccountController) VerificationEvents(c *gin.Context) {
	accountID, ok := uuidParam(c, "accountId")
	if !ok {
		return
	}

	events, err := a.accountService.ListVerificationEvents(c.Request.Context(), identity(c), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, events, "")
}

// Transactions godoc
// @Summary On-chain transactions of the account's address
// @Tags Accounts
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/accounts/{accountId}/transactions [get]
func (a *AccountController) Transactions(c *gin.Context) {
	accountID, ok := uuidParam(c, "accountId")
	if !ok {
		return
	}

	txs, err := a.accountService.GetTransactions(c.Request.Context(), identity(c), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, txs, "")
}

func (a *AccountController) DailyStats(c *gin.Context) {
	accountID, ok := uuidParam(c, "accountId")
	if !ok {
		return
	}

	stats, err := a.dailyStatService.ListDailyStats(c.Request.Context(), identity(c), &accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, stats, "")
}
