package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ltctrack/internal/models/response_models"
	"ltctrack/internal/services"
	"ltctrack/pkg/utils"
)

// PageController serves the browsable routes. Each answers with the
// view-model its template would be rendered from.
type PageController struct {
	accountService services.AccountServiceInterface
}

func NewPageController(accountService services.AccountServiceInterface) *PageController {
	return &PageController{
		accountService: accountService,
	}
}

func (p *PageController) Root(c *gin.Context) {
	if identity(c) != nil {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	c.Redirect(http.StatusFound, loginPath)
}

func (p *PageController) Dashboard(c *gin.Context) {
	p.withAccounts(c, "dashboard")
}

func (p *PageController) InputStats(c *gin.Context) {
	p.withAccounts(c, "input-stats")
}

func (p *PageController) Stats(c *gin.Context) {
	utils.RespondSuccess(c, response_models.PageView{
		Page: "stats",
		User: identity(c).Response(),
	}, "")
}

func (p *PageController) AccountDetail(c *gin.Context) {
	accountID, ok := uuidParam(c, "accountId")
	if !ok {
		return
	}

	account, err := p.accountService.GetAccount(c.Request.Context(), identity(c), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.PageView{
		Page:    "account-detail",
		User:    identity(c).Response(),
		Account: account,
	}, "")
}

func (p *PageController) withAccounts(c *gin.Context, page string) {
	accounts, err := p.accountService.ListAccounts(c.Request.Context(), identity(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.PageView{
		Page:     page,
		User:     identity(c).Response(),
		Accounts: accounts,
	}, "")
}
