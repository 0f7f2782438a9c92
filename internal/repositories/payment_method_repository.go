package repositories

import (
	"gorm.io/gorm"
	"mothwallet/internal/models/db_models"
)

type PaymentMethodRepositoryInterface = OwnedRepositoryInterface[db_models.PaymentMethod]

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepositoryInterface {
	return NewOwnedRepository[db_models.PaymentMethod](db)
}
