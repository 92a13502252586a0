package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"ltctrack/internal/models/request_models"
	"ltctrack/internal/models/response_models"
	"ltctrack/internal/services"
	"ltctrack/pkg/middleware"
	"ltctrack/pkg/utils"
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

type AuthController struct {
	authService   services.AuthServiceInterface
	authenticator *middleware.Authenticator
}

func NewAuthController(authService services.AuthServiceInterface, authenticator *middleware.Authenticator) *AuthController {
	return &AuthController{
		authService:   authService,
		authenticator: authenticator,
	}
}

// LoginPage answers with the login view-model; ?error= is echoed back.
func (a *AuthController) LoginPage(c *gin.Context) {
	utils.RespondSuccess(c, response_models.PageView{
		Page:  "login",
		Error: c.Query("error"),
	}, "")
}

// Login godoc
// @Summary Sign in
// @Description Check credentials and open a session bound to this client. Accepts JSON or a form post.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		a.loginFailed(c, http.StatusBadRequest, "Invalid request format", "invalid_request")
		return
	}

	token, identity, err := a.authService.Login(c.Request.Context(), req, middleware.ClientInfoFrom(c))
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			a.loginFailed(c, http.StatusUnauthorized, "Invalid credentials", "invalid_credentials")
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	a.authenticator.SetSessionCookie(c, token)
	if !wantsJSON(c) {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	utils.RespondSuccess(c, identity.Response(), "Login successful")
}

func (a *AuthController) loginFailed(c *gin.Context, code int, message, reason string) {
	if !wantsJSON(c) {
		c.Redirect(http.StatusFound, loginPath+"?error="+url.QueryEscape(reason))
		return
	}
	utils.RespondError(c, code, message)
}

// Logout destroys the session whether or not it still exists.
func (a *AuthController) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookieName)
	if err := a.authService.Logout(c.Request.Context(), token); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	a.authenticator.ClearSessionCookie(c)
	if !wantsJSON(c) {
		c.Redirect(http.StatusFound, loginPath)
		return
	}
	utils.RespondSuccess(c, nil, "Logged out")
}

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/register [post]
func (a *AuthController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, user, "Account created successfully")
}

func (a *AuthController) Me(c *gin.Context) {
	utils.RespondSuccess(c, identity(c).Response(), "")
}

func (a *AuthController) UpdateInfo(c *gin.Context) {
	var req request_models.UpdateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.authService.UpdateInfo(c.Request.Context(), identity(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Profile updated")
}

// ChangePassword keeps the caller signed in and revokes every other session.
func (a *AuthController) ChangePassword(c *gin.Context) {
	var req request_models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := a.authService.ChangePassword(c.Request.Context(), identity(c), middleware.SessionTokenFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password changed")
}
