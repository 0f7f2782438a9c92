package controllers

import (
	"mothwallet/internal/api/views"
	"mothwallet/internal/models/db_models"
	"mothwallet/internal/services"
	"mothwallet/pkg/metrics"
)

type PaymentMethodController = ResourceController[db_models.PaymentMethod, *db_models.PaymentMethod]

func NewPaymentMethodController(service services.PaymentMethodServiceInterface, directory services.AccountDirectory, m *metrics.Metrics) *PaymentMethodController {
	return NewResourceController[db_models.PaymentMethod, *db_models.PaymentMethod](service, directory, m, ResourcePages{
		Title: "Payment methods",
		List:  views.PaymentMethodList,
		Add:   views.PaymentMethodAdd,
		Edit:  views.PaymentMethodEdit,
	})
}
