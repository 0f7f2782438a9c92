package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"mothwallet/internal/api/views"
	"mothwallet/internal/models/request_models"
	"mothwallet/internal/models/response_models"
	"mothwallet/internal/services"
	"mothwallet/pkg/metrics"
	"mothwallet/pkg/middleware"
	"mothwallet/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
	directory      services.AccountDirectory
	tokens         *utils.TokenManager
	metrics        *metrics.Metrics
	cookieSecure   bool
}

func NewAccountController(
	accountService services.AccountServiceInterface,
	directory services.AccountDirectory,
	tokens *utils.TokenManager,
	m *metrics.Metrics,
	cookieSecure bool,
) *AccountController {
	return &AccountController{
		accountService: accountService,
		directory:      directory,
		tokens:         tokens,
		metrics:        m,
		cookieSecure:   cookieSecure,
	}
}

func (a *AccountController) Index(c *gin.Context) {
	renderPage(c, http.StatusOK, views.Index, nil)
}

func (a *AccountController) LoginForm(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if _, err := a.tokens.ValidateToken(token); err == nil {
			c.Redirect(http.StatusFound, "/home")
			return
		}
	}
	renderPage(c, http.StatusOK, views.Login, gin.H{"title": "Log in"})
}

// Login rejects every failure with the same message so the page never tells
// a missing account apart from a wrong password.
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		renderPage(c, http.StatusBadRequest, views.Login, gin.H{
			"title": "Log in",
			"error": "Username and password are required.",
		})
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), req, c.ClientIP())
	a.record("login", err)
	if err != nil {
		renderError(c, views.Login, gin.H{"title": "Log in", "identifier": req.Identifier}, err)
		return
	}

	middleware.SetSessionCookie(c, token, int(a.tokens.TTL().Seconds()), a.cookieSecure)
	c.Redirect(http.StatusFound, "/home")
}

func (a *AccountController) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, a.cookieSecure)
	c.Redirect(http.StatusFound, "/")
}

func (a *AccountController) SignUpForm(c *gin.Context) {
	renderPage(c, http.StatusOK, views.SignUp, gin.H{"title": "Sign up"})
}

func (a *AccountController) SignUp(c *gin.Context) {
	var req request_models.SignUpRequest
	data := gin.H{"title": "Sign up"}
	if err := c.ShouldBind(&req); err != nil {
		data["email"] = req.Email
		data["signup_username"] = req.Username
		data["error"] = "Please provide a valid email, a username of 3 to 50 characters without '@' and a password of at least 6 characters."
		renderPage(c, http.StatusBadRequest, views.SignUp, data)
		return
	}

	_, err := a.accountService.CreateAccount(c.Request.Context(), req)
	a.record("signup", err)
	if err != nil {
		data["email"] = req.Email
		data["signup_username"] = req.Username
		renderError(c, views.SignUp, data, err)
		return
	}

	renderPage(c, http.StatusCreated, views.Login, gin.H{
		"title":      "Log in",
		"success":    "Account created. You can now log in.",
		"identifier": req.Username,
	})
}

func (a *AccountController) Home(c *gin.Context) {
	if _, err := a.directory.ResolveAccountID(c.Request.Context(), middleware.Principal(c)); err != nil {
		renderError(c, views.Home, gin.H{"title": "Home"}, err)
		return
	}
	renderPage(c, http.StatusOK, views.Home, gin.H{"title": "Home"})
}

func (a *AccountController) DeleteAccount(c *gin.Context) {
	ctx := c.Request.Context()
	accountID, err := a.directory.ResolveAccountID(ctx, middleware.Principal(c))
	if err == nil {
		err = a.accountService.DeleteAccount(ctx, accountID)
	}
	a.record("delete_account", err)
	if err != nil {
		renderError(c, views.Home, gin.H{"title": "Home"}, err)
		return
	}

	middleware.ClearSessionCookie(c, a.cookieSecure)
	c.Redirect(http.StatusFound, "/")
}

// Register godoc
// @Summary Register a new account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/v1/accounts/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.accountService.CreateAccount(c.Request.Context(), req)
	a.record("signup", err)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, response_models.NewAccountResponse(account), "Account created successfully")
}

// LoginAPI godoc
// @Summary Login to an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/v1/accounts/login [post]
func (a *AccountController) LoginAPI(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), req, c.ClientIP())
	a.record("login", err)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.AccountLoginResponse{
		Token:     token,
		ExpiresIn: int64(a.tokens.TTL().Seconds()),
	}, "Login successful")
}

func (a *AccountController) record(event string, err error) {
	if a.metrics != nil {
		a.metrics.RecordAuthEvent(event, err)
	}
}
