package services

import (
	"go.uber.org/zap"
	"mothwallet/internal/models/db_models"
	"mothwallet/internal/repositories"
)

type TagServiceInterface = ResourceServiceInterface[db_models.Tag]

func NewTagService(tagRepo repositories.TagRepositoryInterface, accountRepo repositories.AccountRepository, logger *zap.Logger) TagServiceInterface {
	return NewResourceService[db_models.Tag](tagRepo, accountRepo, logger)
}
