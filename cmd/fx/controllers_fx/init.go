package controllers_fx

import (
	"go.uber.org/fx"
	"mothwallet/internal/api/controllers"
	"mothwallet/internal/config"
	"mothwallet/internal/services"
	"mothwallet/pkg/metrics"
	"mothwallet/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideAccountController),
	fx.Provide(controllers.NewTagController),
	fx.Provide(controllers.NewPaymentMethodController))

func provideAccountController(
	accountService services.AccountServiceInterface,
	directory services.AccountDirectory,
	tokens *utils.TokenManager,
	m *metrics.Metrics,
	cfg *config.Config,
) *controllers.AccountController {
	return controllers.NewAccountController(accountService, directory, tokens, m, cfg.Auth.CookieSecure)
}
