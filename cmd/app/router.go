package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"mothwallet/internal/api/controllers"
	"mothwallet/internal/api/views"
	"mothwallet/internal/config"
	"mothwallet/pkg/metrics"
	"mothwallet/pkg/middleware"
	"mothwallet/pkg/utils"
)

func ProvideRouter(
	cfg *config.Config,
	log *zap.Logger,
	m *metrics.Metrics,
	tokens *utils.TokenManager,
	accountController *controllers.AccountController,
	tagController *controllers.TagController,
	paymentMethodController *controllers.PaymentMethodController) (*gin.Engine, error) {

	if !strings.EqualFold(cfg.Log.Format, "console") {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := views.Load()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.MetricsMiddleware(m))
	r.Use(gin.Recovery())

	RegisterRoutes(r, m, tokens, accountController, tagController, paymentMethodController)

	return r, nil
}

func RegisterRoutes(r *gin.Engine,
	m *metrics.Metrics,
	tokens *utils.TokenManager,
	accountController *controllers.AccountController,
	tagController *controllers.TagController,
	paymentMethodController *controllers.PaymentMethodController) {

	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.GET("/", accountController.Index)
	r.GET("/login", accountController.LoginForm)
	r.POST("/login", accountController.Login)
	r.GET("/signup", accountController.SignUpForm)
	r.POST("/signup", accountController.SignUp)
	r.GET("/logout", accountController.Logout)
	r.POST("/logout", accountController.Logout)

	session := r.Group("/", middleware.SessionAuthMiddleware(tokens))
	session.GET("/home", accountController.Home)
	session.POST("/account/delete", accountController.DeleteAccount)

	tagsGroup := session.Group("/tag-manager")
	tagsGroup.GET("", tagController.List)
	tagsGroup.POST("", tagController.Create)
	tagsGroup.GET("/:id/edit", tagController.EditForm)
	tagsGroup.PATCH("/:id", tagController.Update)
	tagsGroup.DELETE("/:id", tagController.Delete)

	paymentGroup := session.Group("/payment-method")
	paymentGroup.GET("", paymentMethodController.List)
	paymentGroup.GET("/add", paymentMethodController.AddForm)
	paymentGroup.POST("/add", paymentMethodController.Create)
	paymentGroup.GET("/edit/:id", paymentMethodController.EditForm)
	paymentGroup.PATCH("/edit/:id", paymentMethodController.Update)
	paymentGroup.DELETE("/delete/:id", paymentMethodController.Delete)

	api := r.Group("/api/v1")
	api.POST("/accounts/register", accountController.Register)
	api.POST("/accounts/login", accountController.LoginAPI)

	protected := api.Group("", middleware.JWTAuthMiddleware(tokens))

	apiTags := protected.Group("/tags")
	apiTags.GET("", tagController.ListAPI)
	apiTags.POST("", tagController.CreateAPI)
	apiTags.GET("/:id", tagController.GetAPI)
	apiTags.PATCH("/:id", tagController.UpdateAPI)
	apiTags.DELETE("/:id", tagController.DeleteAPI)

	apiPayments := protected.Group("/payment-methods")
	apiPayments.GET("", paymentMethodController.ListAPI)
	apiPayments.POST("", paymentMethodController.CreateAPI)
	apiPayments.GET("/:id", paymentMethodController.GetAPI)
	apiPayments.PATCH("/:id", paymentMethodController.UpdateAPI)
	apiPayments.DELETE("/:id", paymentMethodController.DeleteAPI)
}
