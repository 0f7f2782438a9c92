package services

import (
	"go.uber.org/zap"
	"mothwallet/internal/models/db_models"
	"mothwallet/internal/repositories"
)

type PaymentMethodServiceInterface = ResourceServiceInterface[db_models.PaymentMethod]

func NewPaymentMethodService(paymentRepo repositories.PaymentMethodRepositoryInterface, accountRepo repositories.AccountRepository, logger *zap.Logger) PaymentMethodServiceInterface {
	return NewResourceService[db_models.PaymentMethod](paymentRepo, accountRepo, logger)
}
