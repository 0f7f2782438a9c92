package repositories

import (
	"gorm.io/gorm"
	"mothwallet/internal/models/db_models"
)

type TagRepositoryInterface = OwnedRepositoryInterface[db_models.Tag]

func NewTagRepository(db *gorm.DB) TagRepositoryInterface {
	return NewOwnedRepository[db_models.Tag](db)
}
