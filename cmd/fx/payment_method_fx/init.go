package payment_method_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"mothwallet/internal/repositories"
	"mothwallet/internal/services"
)

var Module = fx.Provide(
	providePaymentMethodRepo, providePaymentMethodService)

func providePaymentMethodRepo(db *gorm.DB) repositories.PaymentMethodRepositoryInterface {
	return repositories.NewPaymentMethodRepository(db)
}

func providePaymentMethodService(repo repositories.PaymentMethodRepositoryInterface, accountRepo repositories.AccountRepository, log *zap.Logger) services.PaymentMethodServiceInterface {
	return services.NewPaymentMethodService(repo, accountRepo, log)
}
